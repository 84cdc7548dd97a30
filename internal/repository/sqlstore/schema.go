package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Tables in foreign-key order, parents first.
var tables = []string{"department", "doctor", "patient", "room", "appointment", "admission", "bill", "activity_log"}

// Statements returns the DDL for a driver split into single statements, so
// no multi-statement support is needed from the driver.
func Statements(driver string) ([]string, error) {
	content, err := schemaFS.ReadFile("schema/" + driver + ".sql")
	if err != nil {
		return nil, fmt.Errorf("no schema for driver %q: %w", driver, err)
	}

	var stmts []string
	for _, stmt := range strings.Split(string(content), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, nil
}

// InitSchema creates any missing tables. Safe to run repeatedly.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	stmts, err := Statements(db.DriverName())
	if err != nil {
		return err
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	log.Info().Str("driver", db.DriverName()).Int("statements", len(stmts)).Msg("schema applied")
	return nil
}

// ResetSchema drops every table and recreates the schema. Destroys all data.
func ResetSchema(ctx context.Context, db *sqlx.DB) error {
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+tables[i]); err != nil {
			return fmt.Errorf("failed to drop %s: %w", tables[i], err)
		}
	}

	log.Warn().Str("driver", db.DriverName()).Msg("schema dropped")
	return InitSchema(ctx, db)
}
