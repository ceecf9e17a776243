package importer

import (
	"fmt"
	"regexp"

	"go-hr/internal/common/models"
)

// LegacyRequest points the importer at the legacy HR Postgres database.
// Table is restricted to a bare identifier so it can be interpolated
// into the pull query safely.
type LegacyRequest struct {
	DSN   string            `json:"dsn"`
	Table string            `json:"table"`
	Mode  models.ImportMode `json:"mode"`
}

var tablePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

func (r *LegacyRequest) validate() error {
	if r.DSN == "" {
		return fmt.Errorf("dsn is required: %w", models.ErrInvalid)
	}
	if r.Table == "" {
		r.Table = "members"
	}
	if !tablePattern.MatchString(r.Table) {
		return fmt.Errorf("table is not a valid identifier: %w", models.ErrInvalid)
	}
	return nil
}

// parseMode validates the mode selector, defaulting to upsert.
func parseMode(raw string) (models.ImportMode, error) {
	switch models.ImportMode(raw) {
	case "":
		return models.ImportUpsert, nil
	case models.ImportDeleteAll, models.ImportInsertOnly, models.ImportUpsert:
		return models.ImportMode(raw), nil
	default:
		return "", fmt.Errorf("mode must be delete_all, insert_only or upsert: %w", models.ErrInvalid)
	}
}
