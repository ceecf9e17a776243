package importer

import (
	"context"
	"database/sql"
	"fmt"

	"go-hr/internal/features/member"

	_ "github.com/lib/pq"
)

// LegacySource pulls member records out of the legacy HR database.
type LegacySource interface {
	Pull(ctx context.Context, dsn, table string) ([]member.Member, error)
}

// PostgresLegacySource reads the legacy members table over lib/pq. A
// connection is opened per pull; legacy imports are rare, one-off
// operations.
type PostgresLegacySource struct{}

func NewPostgresLegacySource() LegacySource {
	return &PostgresLegacySource{}
}

const legacyColumns = `emp_id, chinese_name, name, division_no, division_name,
	job_title, email, cellphone, office_phone, birthday,
	is_member, is_manager, is_intern, is_consultant, is_outsourcing,
	is_employed, line_id, telegram_id, remark, budget_unit_code, budget_unit_name`

func (p *PostgresLegacySource) Pull(ctx context.Context, dsn, table string) ([]member.Member, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open legacy database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping legacy database: %w", err)
	}

	// table is validated as a bare identifier before it gets here.
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY emp_id", legacyColumns, table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query legacy table: %w", err)
	}
	defer rows.Close()

	var out []member.Member
	for rows.Next() {
		var m member.Member
		err := rows.Scan(
			&m.EmpID, &m.ChineseName, &m.Name, &m.DivisionNo, &m.DivisionName,
			&m.JobTitle, &m.Email, &m.Cellphone, &m.OfficePhone, &m.Birthday,
			&m.IsMember, &m.IsManager, &m.IsIntern, &m.IsConsultant, &m.IsOutsourcing,
			&m.IsEmployed, &m.LineID, &m.TelegramID, &m.Remark, &m.BudgetUnitCode, &m.BudgetUnitName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan legacy row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legacy rows: %w", err)
	}
	return out, nil
}
