// Package postgres provides the PostgreSQL store (lib/pq).
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fundraiser-display/internal/apperrors"
	"fundraiser-display/internal/db"
	"fundraiser-display/internal/db/migrations"
	"fundraiser-display/internal/goals"
	"fundraiser-display/internal/percentage"
)

type Store struct {
	dbx *sql.DB
}

// Open connects with a libpq connection string and applies migrations.
func Open(ctx context.Context, connString string) (*Store, error) {
	dbx, err := db.Connect(ctx, "postgres", connString)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, dbx, db.Postgres, migrations.Postgres, "postgres"); err != nil {
		_ = dbx.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{dbx: dbx}, nil
}

func (s *Store) Close() error {
	if s == nil || s.dbx == nil {
		return nil
	}
	return s.dbx.Close()
}

func (s *Store) ListGoals(ctx context.Context) ([]goals.Goal, error) {
	rows, err := s.dbx.QueryContext(ctx, `
		SELECT id, name, target_percentage
		FROM goals
		ORDER BY id ASC
	`)
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

	created := goals.Goal{
		Name:             strings.TrimSpace(g.Name),
		TargetPercentage: g.TargetPercentage,
	}
	err := s.dbx.QueryRowContext(ctx, `
		INSERT INTO goals (name, target_percentage)
		VALUES ($1, $2)
		RETURNING id
	`, created.Name, created.TargetPercentage).Scan(&created.ID)
	if err != nil {
		return goals.Goal{}, fmt.Errorf("insert goal: %w", err)
	}
	return created, nil
}

func (s *Store) DeleteGoal(ctx context.Context, id int64) error {
	res, err := s.dbx.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
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
	err := s.dbx.QueryRowContext(ctx, `SELECT value FROM percentage WHERE id = 1`).Scan(&v)
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

	var stored int
	err := s.dbx.QueryRowContext(ctx, `
		INSERT INTO percentage (id, value, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = now()
		RETURNING value
	`, v).Scan(&stored)
	if err != nil {
		return 0, fmt.Errorf("upsert percentage: %w", err)
	}
	return stored, nil
}
