package favorites

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/archplans/plan-portal/migrations"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, ttl)
	tick := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return mr, store
}

// setupPostgresStore connects to TEST_DB_DSN and applies the migrations.
// Skips the test if TEST_DB_DSN is not set.
func setupPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping PostgreSQL integration test")
	}

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("postgres"))
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, goose.Up(sqlDB, "."))
	require.NoError(t, sqlDB.Close())

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewPostgresStore(pool)
}

func exerciseStore(t *testing.T, store Store, owner string) {
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, owner, "b"))
	require.NoError(t, store.Add(ctx, owner, "a"))
	require.NoError(t, store.Add(ctx, owner, "b"))

	ids, err := store.List(ctx, owner)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, ids)

	ok, err := store.Contains(ctx, owner, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Remove(ctx, owner, "a"))
	require.NoError(t, store.Remove(ctx, owner, "never-added"))

	ok, err = store.Contains(ctx, owner, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err = store.List(ctx, owner+"-other")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisStore(t *testing.T) {
	_, store := setupRedisStore(t, time.Hour)
	exerciseStore(t, store, "session:abc")
}

func TestRedisStore_OrderAndExpiry(t *testing.T) {
	mr, store := setupRedisStore(t, time.Hour)
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.Add(ctx, "o", id))
	}
	ids, err := store.List(ctx, "o")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, ids)

	mr.FastForward(2 * time.Hour)
	ids, err = store.List(ctx, "o")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestPostgresStore(t *testing.T) {
	store := setupPostgresStore(t)
	exerciseStore(t, store, "user:"+uuid.NewString())
}
