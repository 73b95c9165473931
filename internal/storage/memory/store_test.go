package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundraiser-display/internal/goals"
	"fundraiser-display/internal/storage/storetest"
)

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storetest.Store {
		return New()
	})
}

func TestConcurrentCreates(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateGoal(ctx, goals.NewGoal{Name: "g", TargetPercentage: 10})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := s.ListGoals(ctx)
	require.NoError(t, err)
	require.Len(t, list, 50)

	seen := map[int64]bool{}
	for _, g := range list {
		assert.False(t, seen[g.ID], "duplicate id %d", g.ID)
		seen[g.ID] = true
	}
}

func TestListReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, err := s.CreateGoal(ctx, goals.NewGoal{Name: "keep", TargetPercentage: 10})
	require.NoError(t, err)

	list, err := s.ListGoals(ctx)
	require.NoError(t, err)
	list[0].Name = "mutated"

	again, err := s.ListGoals(ctx)
	require.NoError(t, err)
	assert.Equal(t, "keep", again[0].Name)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().ListGoals(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
