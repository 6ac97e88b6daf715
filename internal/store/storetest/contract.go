// Package storetest holds the behaviour every store.SessionStore must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playperu/lovebird/internal/quiz"
	"github.com/playperu/lovebird/internal/store"
)

func session(id string) *quiz.Session {
	return &quiz.Session{
		ID:        id,
		Mode:      quiz.ModeScore,
		Index:     2,
		Total:     -1,
		Answers:   []int{1, -1, -1},
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Run exercises s against the SessionStore contract. s must start empty.
func Run(t *testing.T, s store.SessionStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		want := session("s1")
		require.NoError(t, s.Put(ctx, want))

		got, err := s.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Mode, got.Mode)
		assert.Equal(t, want.Index, got.Index)
		assert.Equal(t, want.Total, got.Total)
		assert.Equal(t, want.Answers, got.Answers)
		assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "UpdatedAt %s != %s", got.UpdatedAt, want.UpdatedAt)
	})

	t.Run("returned session is a copy", func(t *testing.T) {
		sess := session("s2")
		require.NoError(t, s.Put(ctx, sess))
		sess.Answers[0] = 99

		got, err := s.Get(ctx, "s2")
		require.NoError(t, err)
		assert.Equal(t, 1, got.Answers[0])

		got.Total = 42
		again, err := s.Get(ctx, "s2")
		require.NoError(t, err)
		assert.Equal(t, -1, again.Total)
	})

	t.Run("put overwrites", func(t *testing.T) {
		sess := session("s3")
		require.NoError(t, s.Put(ctx, sess))
		sess.Index = 3
		sess.Answers = append(sess.Answers, 1)
		require.NoError(t, s.Put(ctx, sess))

		got, err := s.Get(ctx, "s3")
		require.NoError(t, err)
		assert.Equal(t, 3, got.Index)
		assert.Len(t, got.Answers, 4)
	})

	t.Run("graph session", func(t *testing.T) {
		sess := &quiz.Session{
			ID: "g1", Mode: quiz.ModeGraph, NodeID: "q2a", Path: []string{"q2a"},
			UpdatedAt: time.Now().UTC(),
		}
		require.NoError(t, s.Put(ctx, sess))

		got, err := s.Get(ctx, "g1")
		require.NoError(t, err)
		assert.Equal(t, quiz.ModeGraph, got.Mode)
		assert.Equal(t, "q2a", got.NodeID)
		assert.Equal(t, []string{"q2a"}, got.Path)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, session("s4")))
		require.NoError(t, s.Delete(ctx, "s4"))

		_, err := s.Get(ctx, "s4")
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.ErrorIs(t, s.Delete(ctx, "s4"), store.ErrNotFound)
	})
}
