package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"equipment-rental-backend/internal/logger"
)

//go:embed schema.sql
var schema string

// EnsureSchema creates any missing tables. Statements are idempotent.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	logger.DatabaseCall("schema.ensure", "schema.sql")
	if _, err := db.ExecContext(ctx, schema); err != nil {
		logger.DatabaseResult("schema.ensure", 0, err)
		return fmt.Errorf("applying schema: %w", err)
	}
	logger.DatabaseResult("schema.ensure", 0, nil)
	return nil
}
