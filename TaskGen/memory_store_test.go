package TaskGen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTaskStore(t *testing.T) {
	store := NewMemoryTaskStore()
	ctx := context.Background()

	exists, err := store.Exists(ctx, "2026-08-30")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Get(ctx, "2026-08-30")
	assert.ErrorIs(t, err, ErrNotFound)

	set := &DailyTaskSet{
		DateKey: "2026-08-30",
		Tasks: []DailyTask{
			{ID: "t1", Title: "One", TotalCount: 1, Points: 100},
		},
	}
	require.NoError(t, store.Create(ctx, set))

	exists, err = store.Exists(ctx, "2026-08-30")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := store.Get(ctx, "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", got.DateKey)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "One", got.Tasks[0].Title)
	// Store assigns the write timestamp
	assert.False(t, got.CreatedAt.IsZero())

	// Second create for the same day fails instead of overwriting
	err = store.Create(ctx, &DailyTaskSet{DateKey: "2026-08-30"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	got, err = store.Get(ctx, "2026-08-30")
	require.NoError(t, err)
	assert.Len(t, got.Tasks, 1)
}
