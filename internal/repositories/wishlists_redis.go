package repositories

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const wishlistKeyPrefix = "luxe:wishlist:"

// RedisWishlistStore keeps each wishlist as a Redis set, so add and remove
// are single atomic SADD/SREM commands.
type RedisWishlistStore struct {
	rdb *redis.Client
}

// NewRedisWishlistStore creates a RedisWishlistStore.
func NewRedisWishlistStore(rdb *redis.Client) *RedisWishlistStore {
	return &RedisWishlistStore{rdb: rdb}
}

// Add inserts productID into the user's set.
func (s *RedisWishlistStore) Add(ctx context.Context, userID uuid.UUID, productID string) error {
	if err := s.rdb.SAdd(ctx, wishlistKey(userID), productID).Err(); err != nil {
		return fmt.Errorf("wishlist sadd: %w", err)
	}
	return nil
}

// Remove deletes productID from the user's set if present.
func (s *RedisWishlistStore) Remove(ctx context.Context, userID uuid.UUID, productID string) error {
	if err := s.rdb.SRem(ctx, wishlistKey(userID), productID).Err(); err != nil {
		return fmt.Errorf("wishlist srem: %w", err)
	}
	return nil
}

// ProductIDs returns the user's set sorted lexically.
func (s *RedisWishlistStore) ProductIDs(ctx context.Context, userID uuid.UUID) ([]string, error) {
	ids, err := s.rdb.SMembers(ctx, wishlistKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("wishlist smembers: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	sort.Strings(ids)
	return ids, nil
}

func wishlistKey(userID uuid.UUID) string {
	return wishlistKeyPrefix + userID.String()
}
