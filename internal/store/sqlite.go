package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

func (s *SQLiteStore) CreateBuild(ctx context.Context, b *Build) error {
	s.logger.Debug("sql", "op", "insert", "table", "builds", "id", b.ID)

	componentsJSON, err := json.Marshal(b.Components)
	if err != nil {
		return fmt.Errorf("marshal components: %w", err)
	}
	paramsJSON, err := json.Marshal(b.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO builds (id, recipe, pipeline, output_file, config_file, components, params, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Recipe, b.Pipeline, b.OutputFile, b.ConfigFile,
		string(componentsJSON), string(paramsJSON),
		b.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (s *SQLiteStore) GetBuild(ctx context.Context, id string) (*Build, error) {
	s.logger.Debug("sql", "op", "select", "table", "builds", "id", id)
	return s.scanBuild(s.db.QueryRowContext(ctx,
		`SELECT id, recipe, pipeline, output_file, config_file, components, params, created_at
		 FROM builds WHERE id = ?`, id))
}

func (s *SQLiteStore) ListBuilds(ctx context.Context, opts ListOptions) ([]*Build, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "builds", "limit", opts.Limit, "offset", opts.Offset)
	opts.Clamp()

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM builds`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, recipe, pipeline, output_file, config_file, components, params, created_at
		 FROM builds ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var builds []*Build
	for rows.Next() {
		b, err := s.scanBuild(rows)
		if err != nil {
			return nil, 0, err
		}
		builds = append(builds, b)
	}
	return builds, total, rows.Err()
}

func (s *SQLiteStore) DeleteBuild(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "builds", "id", id)

	result, err := s.db.ExecContext(ctx, `DELETE FROM builds WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("build %s not found", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanBuild(row scanner) (*Build, error) {
	var b Build
	var componentsJSON, paramsJSON, createdAt string

	err := row.Scan(&b.ID, &b.Recipe, &b.Pipeline, &b.OutputFile, &b.ConfigFile,
		&componentsJSON, &paramsJSON, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(componentsJSON), &b.Components); err != nil {
		return nil, fmt.Errorf("unmarshal components: %w", err)
	}
	if err := json.Unmarshal([]byte(paramsJSON), &b.Params); err != nil {
		return nil, fmt.Errorf("unmarshal params: %w", err)
	}
	b.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	return &b, nil
}
