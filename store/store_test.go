package store_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabinet-advisory/core/store"
)

func testStores(t *testing.T) map[string]store.Store {
	t.Helper()

	mr := miniredis.RunT(t)
	redisStore, err := store.NewRedisStore(&redis.Options{Addr: mr.Addr()}, "test")
	require.NoError(t, err)

	return map[string]store.Store{
		"file":  store.NewFileStore(t.TempDir()),
		"redis": redisStore,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, s.Save(ctx,
				store.Entry{Key: "journal/session-1.json", Value: []byte(`[]`)},
				store.Entry{Key: "datasets/ca.json", Value: []byte(`[{"client":"Martin"}]`)},
			))

			keys, err := s.List(ctx)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"journal/session-1.json", "datasets/ca.json"}, keys)

			entries, err := s.Load(ctx, "datasets/ca.json")
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, []byte(`[{"client":"Martin"}]`), entries[0].Value)
		})
	}
}

func TestStoreOverwrite(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, s.Save(ctx, store.Entry{Key: "insights/export.json", Value: []byte("v1")}))
			require.NoError(t, s.Save(ctx, store.Entry{Key: "insights/export.json", Value: []byte("v2")}))

			entries, err := s.Load(ctx, "insights/export.json")
			require.NoError(t, err)
			assert.Equal(t, []byte("v2"), entries[0].Value)
		})
	}
}

func TestStoreMissingKey(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Load(context.Background(), "absent")
			assert.ErrorIs(t, err, store.ErrKeyNotFound)
		})
	}
}

func TestStoreDeleteIgnoresMissing(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, s.Save(ctx, store.Entry{Key: "journal/x.json", Value: []byte("x")}))
			require.NoError(t, s.Delete(ctx, "journal/x.json", "absent"))

			keys, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestConfigSelectsBackend(t *testing.T) {
	s, err := store.New(store.Config{})
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = store.New(store.Config{Path: t.TempDir()})
	require.NoError(t, err)
	assert.NotNil(t, s)

	mr := miniredis.RunT(t)
	s, err = store.New(store.Config{RedisAddr: mr.Addr()})
	require.NoError(t, err)
	assert.NotNil(t, s)
}
