package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playperu/lovebird/internal/quiz"
)

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore(time.Hour)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Put(ctx, &quiz.Session{ID: "old", UpdatedAt: now.Add(-2 * time.Hour)}))
	require.NoError(t, m.Put(ctx, &quiz.Session{ID: "new", UpdatedAt: now.Add(-time.Minute)}))

	_, err := m.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(ctx, "new")
	assert.NoError(t, err)
	assert.ErrorIs(t, m.Delete(ctx, "old"), ErrNotFound)

	n, err := m.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.ErrorIs(t, m.Delete(ctx, "old"), ErrNotFound)
}
