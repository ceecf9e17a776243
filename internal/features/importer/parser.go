package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-hr/internal/common/models"
	"go-hr/internal/features/member"

	"github.com/xuri/excelize/v2"
)

// fieldSetters maps spreadsheet header names onto member fields. Headers
// are matched case-insensitively after trimming; unknown columns are
// ignored so exports round-trip even with extra columns.
var fieldSetters = map[string]func(*member.Member, string){
	"emp_id":           func(m *member.Member, v string) { m.EmpID = v },
	"chinese_name":     func(m *member.Member, v string) { m.ChineseName = v },
	"name":             func(m *member.Member, v string) { m.Name = v },
	"division_no":      func(m *member.Member, v string) { m.DivisionNo = v },
	"division_name":    func(m *member.Member, v string) { m.DivisionName = v },
	"job_title":        func(m *member.Member, v string) { m.JobTitle = v },
	"email":            func(m *member.Member, v string) { m.Email = v },
	"cellphone":        func(m *member.Member, v string) { m.Cellphone = v },
	"office_phone":     func(m *member.Member, v string) { m.OfficePhone = v },
	"birthday":         func(m *member.Member, v string) { m.Birthday = v },
	"is_member":        func(m *member.Member, v string) { m.IsMember = parseBool(v) },
	"is_manager":       func(m *member.Member, v string) { m.IsManager = parseBool(v) },
	"is_intern":        func(m *member.Member, v string) { m.IsIntern = parseBool(v) },
	"is_consultant":    func(m *member.Member, v string) { m.IsConsultant = parseBool(v) },
	"is_outsourcing":   func(m *member.Member, v string) { m.IsOutsourcing = parseBool(v) },
	"is_employed":      func(m *member.Member, v string) { m.IsEmployed = parseBool(v) },
	"line_id":          func(m *member.Member, v string) { m.LineID = v },
	"telegram_id":      func(m *member.Member, v string) { m.TelegramID = v },
	"remark":           func(m *member.Member, v string) { m.Remark = v },
	"budget_unit_code": func(m *member.Member, v string) { m.BudgetUnitCode = v },
	"budget_unit_name": func(m *member.Member, v string) { m.BudgetUnitName = v },
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "employed", "y", "yes":
		return true
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

// parseFile reads the uploaded spreadsheet into header-keyed rows. The
// format is picked by file extension, matching what the form accepts.
func parseFile(r io.Reader, filename string) ([]map[string]string, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".csv"):
		return parseCSV(r)
	case strings.HasSuffix(name, ".xlsx"):
		return parseXLSX(r)
	default:
		return nil, fmt.Errorf("unsupported file format %q: %w", filename, models.ErrInvalid)
	}
}

func parseCSV(r io.Reader) ([]map[string]string, error) {
	br := bufio.NewReader(r)
	// Our own CSV export writes a UTF-8 BOM for Excel.
	if peek, err := br.Peek(3); err == nil && peek[0] == 0xEF && peek[1] == 0xBB && peek[2] == 0xBF {
		br.Discard(3)
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", models.ErrInvalid)
	}

	var rows []map[string]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", models.ErrInvalid)
		}
		rows = append(rows, zipRow(header, rec))
	}
	return rows, nil
}

func parseXLSX(r io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", models.ErrInvalid)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets: %w", models.ErrInvalid)
	}
	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", models.ErrInvalid)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("xlsx sheet is empty: %w", models.ErrInvalid)
	}

	rows := make([]map[string]string, 0, len(raw)-1)
	for _, rec := range raw[1:] {
		rows = append(rows, zipRow(raw[0], rec))
	}
	return rows, nil
}

func zipRow(header, rec []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if i < len(rec) {
			row[key] = strings.TrimSpace(rec[i])
		}
	}
	return row
}

// toMember applies the known column setters; unmapped headers are
// dropped silently.
func toMember(row map[string]string) member.Member {
	var m member.Member
	for key, value := range row {
		if set, ok := fieldSetters[key]; ok {
			set(&m, value)
		}
	}
	return m
}
