// Package sqlite provides a SQLite-backed store (modernc.org/sqlite, no cgo).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fundraiser-display/internal/apperrors"
	"fundraiser-display/internal/db"
	"fundraiser-display/internal/db/migrations"
	"fundraiser-display/internal/goals"
	"fundraiser-display/internal/percentage"
)

// Store persists goals and the percentage in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the database at path and applies the embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

	sqlDB, err := db.Connect(ctx, "sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One writer at a time keeps SQLITE_BUSY out of the request path.
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(ctx, sqlDB, db.SQLite, migrations.SQLite, "sqlite"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ListGoals(ctx context.Context) ([]goals.Goal, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, target_percentage FROM goals ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	list := []goals.Goal{}
	for rows.Next() {
		var g goals.Goal
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetPercentage); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		list = append(list, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return list, nil
}

func (s *Store) CreateGoal(ctx context.Context, g goals.NewGoal) (goals.Goal, error) {
	if err := g.Validate(); err != nil {
		return goals.Goal{}, err
	}
	name := strings.TrimSpace(g.Name)

	res, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO goals (name, target_percentage, created_at) VALUES (?, ?, ?)`,
		name, g.TargetPercentage, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return goals.Goal{}, fmt.Errorf("insert goal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return goals.Goal{}, fmt.Errorf("insert goal id: %w", err)
	}

	return goals.Goal{ID: id, Name: name, TargetPercentage: g.TargetPercentage}, nil
}

func (s *Store) DeleteGoal(ctx context.Context, id int64) error {
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete goal rows: %w", err)
	}
	if n == 0 {
		return apperrors.NewNotFoundError("goal", strconv.FormatInt(id, 10))
	}
	return nil
}

func (s *Store) GetPercentage(ctx context.Context) (int, error) {
	var v int
	err := s.sqlDB.QueryRowContext(ctx, `SELECT value FROM percentage WHERE id = 1`).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return percentage.Default, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query percentage: %w", err)
	}
	return v, nil
}

func (s *Store) SetPercentage(ctx context.Context, v int) (int, error) {
	if err := percentage.Validate(v); err != nil {
		return 0, err
	}
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO percentage (id, value, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, v, time.Now().UTC().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("upsert percentage: %w", err)
	}
	return v, nil
}
