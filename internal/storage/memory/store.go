// Package memory provides an in-process store, used for local development
// (STORAGE_DRIVER=memory) and handler tests.
package memory

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"

	"fundraiser-display/internal/apperrors"
	"fundraiser-display/internal/goals"
	"fundraiser-display/internal/percentage"
)

// Store keeps goals in insertion order and the percentage singleton.
type Store struct {
	mu         sync.RWMutex
	nextID     int64
	goals      []goals.Goal
	percentage int
}

func New() *Store {
	return &Store{percentage: percentage.Default}
}

// ListGoals returns a copy of the goals in insertion order.
func (s *Store) ListGoals(ctx context.Context) ([]goals.Goal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]goals.Goal, len(s.goals))
	copy(out, s.goals)
	return out, nil
}

func (s *Store) CreateGoal(ctx context.Context, g goals.NewGoal) (goals.Goal, error) {
	if err := ctx.Err(); err != nil {
		return goals.Goal{}, err
	}
	if err := g.Validate(); err != nil {
		return goals.Goal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	created := goals.Goal{
		ID:               s.nextID,
		Name:             strings.TrimSpace(g.Name),
		TargetPercentage: g.TargetPercentage,
	}
	s.goals = append(s.goals, created)
	return created, nil
}

func (s *Store) DeleteGoal(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.goals, func(g goals.Goal) bool { return g.ID == id })
	if i < 0 {
		return apperrors.NewNotFoundError("goal", strconv.FormatInt(id, 10))
	}
	s.goals = slices.Delete(s.goals, i, i+1)
	return nil
}

func (s *Store) GetPercentage(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.percentage, nil
}

func (s *Store) SetPercentage(ctx context.Context, v int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := percentage.Validate(v); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.percentage = v
	return v, nil
}

// Close is a no-op; it lets Store satisfy storage.Store.
func (s *Store) Close() error { return nil }
