package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/playperu/lovebird/internal/database"
	"github.com/playperu/lovebird/internal/store"
	"github.com/playperu/lovebird/internal/store/storetest"
)

func TestMemoryStoreContract(t *testing.T) {
	storetest.Run(t, store.NewMemoryStore(time.Hour))
}

func TestSQLiteStoreContract(t *testing.T) {
	db, err := database.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := store.NewSQLiteStore(db, time.Hour)
	require.NoError(t, err)
	storetest.Run(t, s)
}

func TestRedisStoreContract(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	storetest.Run(t, store.NewRedisStore(client, time.Hour))
}
