package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playperu/lovebird/internal/config"
	"github.com/playperu/lovebird/internal/store"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mr := miniredis.RunT(t)

	tests := []struct {
		name      string
		cfg       config.Config
		wantCheck string
	}{
		{name: "memory", cfg: config.Config{SessionStore: "memory", SessionTTL: time.Hour}},
		{
			name:      "sqlite",
			cfg:       config.Config{SessionStore: "sqlite", SessionTTL: time.Hour, DBPath: filepath.Join(t.TempDir(), "db", "lovebird.db")},
			wantCheck: "sqlite",
		},
		{
			name:      "redis",
			cfg:       config.Config{SessionStore: "redis", SessionTTL: time.Hour, RedisURL: "redis://" + mr.Addr() + "/0"},
			wantCheck: "redis",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, checks, closeStore, err := openStore(ctx, &tt.cfg, logger)
			require.NoError(t, err)
			defer closeStore()

			if tt.wantCheck == "" {
				assert.Empty(t, checks)
			} else {
				require.Contains(t, checks, tt.wantCheck)
				assert.NoError(t, checks[tt.wantCheck].Check(ctx))
			}

			_, err = s.Get(ctx, "missing")
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestOpenStoreRedisDown(t *testing.T) {
	cfg := config.Config{SessionStore: "redis", SessionTTL: time.Hour, RedisURL: "redis://localhost:1/0"}
	_, _, _, err := openStore(context.Background(), &cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

type countingPruner struct{ calls chan struct{} }

func (p countingPruner) Prune(context.Context) (int64, error) {
	select {
	case p.calls <- struct{}{}:
	default:
	}
	return 1, nil
}

func TestPruneLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := countingPruner{calls: make(chan struct{}, 1)}

	done := make(chan struct{})
	go func() {
		pruneLoop(ctx, p, 4*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
		close(done)
	}()

	select {
	case <-p.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("prune was never called")
	}
	cancel()
	<-done
}
