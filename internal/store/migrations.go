package store

import (
	"context"
	"database/sql"
	"strings"
)

// schema contains the DDL for all flowcraft tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS builds (
		id          TEXT PRIMARY KEY,
		recipe      TEXT NOT NULL DEFAULT '',
		pipeline    TEXT NOT NULL,
		output_file TEXT NOT NULL,
		components  TEXT NOT NULL DEFAULT '[]',
		params      TEXT NOT NULL DEFAULT '{}',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_builds_created_at ON builds(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_builds_recipe ON builds(recipe)`,
}

// alterStatements are column additions that need special handling since
// SQLite doesn't support IF NOT EXISTS for ALTER TABLE ADD COLUMN.
var alterStatements = []struct {
	table    string
	column   string
	alterSQL string
	indexSQL string // Optional index to create after column is added
}{
	{
		table:    "builds",
		column:   "config_file",
		alterSQL: "ALTER TABLE builds ADD COLUMN config_file TEXT NOT NULL DEFAULT ''",
	},
}

// migrate executes all schema DDL statements and alter migrations.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	// Execute ALTER TABLE statements idempotently.
	for _, alter := range alterStatements {
		if err := addColumnIfNotExists(ctx, db, alter.table, alter.column, alter.alterSQL); err != nil {
			return err
		}
		if alter.indexSQL != "" {
			if _, err := db.ExecContext(ctx, alter.indexSQL); err != nil {
				return err
			}
		}
	}

	return nil
}

// addColumnIfNotExists adds a column to a table if it doesn't already exist.
func addColumnIfNotExists(ctx context.Context, db *sql.DB, table, column, alterSQL string) error {
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+table+")")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue *string
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return err
		}
		if strings.EqualFold(name, column) {
			return nil // Column already exists
		}
	}

	_, err = db.ExecContext(ctx, alterSQL)
	return err
}
