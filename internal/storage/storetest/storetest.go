// Package storetest is a conformance suite every store implementation runs.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundraiser-display/internal/apperrors"
	"fundraiser-display/internal/goals"
	"fundraiser-display/internal/percentage"
)

// Store is what the suite exercises.
type Store interface {
	goals.Store
	percentage.Store
}

// Run executes the suite. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("EmptyListIsNotNil", func(t *testing.T) {
		list, err := newStore(t).ListGoals(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})

	t.Run("CreateAssignsIDs", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		a, err := s.CreateGoal(ctx, goals.NewGoal{Name: "A", TargetPercentage: 40})
		require.NoError(t, err)
		b, err := s.CreateGoal(ctx, goals.NewGoal{Name: "B", TargetPercentage: 60})
		require.NoError(t, err)

		assert.Positive(t, a.ID)
		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, "A", a.Name)
		assert.Equal(t, 60, b.TargetPercentage)
	})

	t.Run("ListReflectsSurvivorsInInsertionOrder", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		var ids []int64
		for i, name := range []string{"a", "b", "c", "d", "e"} {
			g, err := s.CreateGoal(ctx, goals.NewGoal{Name: name, TargetPercentage: i * 20})
			require.NoError(t, err)
			ids = append(ids, g.ID)
		}
		require.NoError(t, s.DeleteGoal(ctx, ids[1]))
		require.NoError(t, s.DeleteGoal(ctx, ids[3]))

		f, err := s.CreateGoal(ctx, goals.NewGoal{Name: "f", TargetPercentage: 100})
		require.NoError(t, err)
		assert.NotContains(t, ids, f.ID, "ids are never reused")

		list, err := s.ListGoals(ctx)
		require.NoError(t, err)

		var names []string
		for _, g := range list {
			names = append(names, g.Name)
		}
		assert.Equal(t, []string{"a", "c", "e", "f"}, names)
	})

	t.Run("DeleteUnknownIsNotFound", func(t *testing.T) {
		s := newStore(t)
		err := s.DeleteGoal(context.Background(), 9999)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("DeleteTwice", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		g, err := s.CreateGoal(ctx, goals.NewGoal{Name: "once", TargetPercentage: 1})
		require.NoError(t, err)

		require.NoError(t, s.DeleteGoal(ctx, g.ID))
		assert.ErrorIs(t, s.DeleteGoal(ctx, g.ID), apperrors.ErrNotFound)
	})

	t.Run("CreateRejectsInvalid", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateGoal(context.Background(), goals.NewGoal{Name: "x", TargetPercentage: 101})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		_, err = s.CreateGoal(context.Background(), goals.NewGoal{Name: " ", TargetPercentage: 5})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("PercentageDefaultsToZero", func(t *testing.T) {
		v, err := newStore(t).GetPercentage(context.Background())
		require.NoError(t, err)
		assert.Equal(t, percentage.Default, v)
	})

	t.Run("SetThenGet", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		for _, v := range []int{0, 1, 50, 99, 100, 37} {
			got, err := s.SetPercentage(ctx, v)
			require.NoError(t, err)
			assert.Equal(t, v, got)

			read, err := s.GetPercentage(ctx)
			require.NoError(t, err)
			assert.Equal(t, v, read)
		}
	})

	t.Run("SetRejectsOutOfRange", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		_, err := s.SetPercentage(ctx, 42)
		require.NoError(t, err)

		for _, v := range []int{-1, 101, 1000} {
			_, err := s.SetPercentage(ctx, v)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "value %d", v)
		}

		read, err := s.GetPercentage(ctx)
		require.NoError(t, err)
		assert.Equal(t, 42, read, "rejected writes leave the value untouched")
	})
}
