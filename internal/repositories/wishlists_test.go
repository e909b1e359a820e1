package repositories

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/example/luxe/internal/database/dbtest"
)

type wishlistStore interface {
	Add(ctx context.Context, userID uuid.UUID, productID string) error
	Remove(ctx context.Context, userID uuid.UUID, productID string) error
	ProductIDs(ctx context.Context, userID uuid.UUID) ([]string, error)
}

func newRedisStore(t *testing.T) *RedisWishlistStore {
	t.Helper()
	s, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(s.Close)

	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisWishlistStore(rdb)
}

func TestWishlistStores(t *testing.T) {
	stores := map[string]func(t *testing.T) wishlistStore{
		"gorm":  func(t *testing.T) wishlistStore { return NewWishlistRepository(dbtest.New(t)) },
		"redis": func(t *testing.T) wishlistStore { return newRedisStore(t) },
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			store := open(t)
			ctx := context.Background()
			userID := uuid.New()

			ids, err := store.ProductIDs(ctx, userID)
			require.NoError(t, err)
			require.NotNil(t, ids)
			require.Empty(t, ids)

			require.NoError(t, store.Remove(ctx, userID, "p1"))

			require.NoError(t, store.Add(ctx, userID, "p1"))
			require.NoError(t, store.Add(ctx, userID, "p1"))
			require.NoError(t, store.Add(ctx, userID, "p2"))

			ids, err = store.ProductIDs(ctx, userID)
			require.NoError(t, err)
			require.Equal(t, []string{"p1", "p2"}, ids)

			require.NoError(t, store.Remove(ctx, userID, "p1"))
			require.NoError(t, store.Remove(ctx, userID, "p1"))

			ids, err = store.ProductIDs(ctx, userID)
			require.NoError(t, err)
			require.Equal(t, []string{"p2"}, ids)

			other, err := store.ProductIDs(ctx, uuid.New())
			require.NoError(t, err)
			require.Empty(t, other)
		})
	}
}

func TestRedisWishlistStore_KeyLayout(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer rdb.Close()

	store := NewRedisWishlistStore(rdb)
	userID := uuid.New()
	require.NoError(t, store.Add(context.Background(), userID, "p9"))

	members, err := s.Members("luxe:wishlist:" + userID.String())
	require.NoError(t, err)
	require.Equal(t, []string{"p9"}, members)
}
