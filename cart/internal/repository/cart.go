package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// cartKeyFormat is the per-user cart key; the value is a redis hash mapping
// product id to quantity.
const cartKeyFormat = "cart-%s"

type CartStore struct {
	cache *redis.Client
}

func NewCartStore(cache *redis.Client) *CartStore {
	return &CartStore{cache: cache}
}

func cartKey(userId uuid.UUID) string {
	return fmt.Sprintf(cartKeyFormat, userId.String())
}

// GetCart returns the stored quantities for the user. A user that never
// added an item yields an empty map, not an error.
func (s *CartStore) GetCart(c context.Context, userId uuid.UUID) (map[uuid.UUID]int64, error) {
	fields, err := s.cache.HGetAll(c, cartKey(userId)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed getting cart with error=%w", err)
	}

	items := make(map[uuid.UUID]int64, len(fields))
	for field, value := range fields {
		productId, err := uuid.Parse(field)
		if err != nil {
			return nil, fmt.Errorf("failed parsing cart field=%s with error=%w", field, err)
		}
		quantity, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed parsing cart quantity=%s with error=%w", value, err)
		}
		items[productId] = quantity
	}
	return items, nil
}

// IncrementItem adds quantity to the product's hash field with a single
// HINCRBY, so concurrent adds for one user never lose an increment. A result
// that falls to zero or below removes the field, keeping the stored
// quantities >= 1.
func (s *CartStore) IncrementItem(
	c context.Context,
	userId uuid.UUID,
	productId uuid.UUID,
	quantity int64,
) (int64, error) {
	updated, err := s.cache.HIncrBy(c, cartKey(userId), productId.String(), quantity).Result()
	if err != nil {
		return 0, fmt.Errorf("failed incrementing cart item with error=%w", err)
	}
	if updated <= 0 {
		if err := s.cache.HDel(c, cartKey(userId), productId.String()).Err(); err != nil {
			return 0, fmt.Errorf("failed removing emptied cart item with error=%w", err)
		}
		return 0, nil
	}
	return updated, nil
}

func (s *CartStore) RemoveItem(
	c context.Context,
	userId uuid.UUID,
	productId uuid.UUID,
) error {
	if err := s.cache.HDel(c, cartKey(userId), productId.String()).Err(); err != nil {
		return fmt.Errorf("failed removing cart item with error=%w", err)
	}
	return nil
}

func (s *CartStore) ClearCart(c context.Context, userId uuid.UUID) error {
	if err := s.cache.Del(c, cartKey(userId)).Err(); err != nil {
		return fmt.Errorf("failed clearing cart with error=%w", err)
	}
	return nil
}
