// Package cache кеширование каталога площадок в Redis
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/areninha/booking-service/internal/domain"
)

const (
	fieldsListKey   = "arena:fields:all"
	fieldKeyPattern = "arena:fields:%s"
)

// FieldCache кеш списка площадок и отдельных площадок
type FieldCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewFieldCache создает кеш площадок
func NewFieldCache(client redis.Cmdable, ttl time.Duration) *FieldCache {
	return &FieldCache{client: client, ttl: ttl}
}

// GetFields возвращает закешированный список площадок
// Второй результат false означает промах кеша
func (c *FieldCache) GetFields(ctx context.Context) ([]*domain.Field, bool, error) {
	var fields []*domain.Field
	ok, err := c.get(ctx, fieldsListKey, &fields)
	if err != nil || !ok {
		return nil, ok, err
	}
	return fields, true, nil
}

// SetFields кеширует список площадок
func (c *FieldCache) SetFields(ctx context.Context, fields []*domain.Field) error {
	return c.set(ctx, fieldsListKey, fields)
}

// GetField возвращает закешированную площадку
func (c *FieldCache) GetField(ctx context.Context, id string) (*domain.Field, bool, error) {
	var field domain.Field
	ok, err := c.get(ctx, fieldKey(id), &field)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &field, true, nil
}

// SetField кеширует площадку
func (c *FieldCache) SetField(ctx context.Context, field *domain.Field) error {
	return c.set(ctx, fieldKey(field.ID), field)
}

// Invalidate удаляет список площадок и перечисленные площадки
func (c *FieldCache) Invalidate(ctx context.Context, ids ...string) error {
	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, fieldsListKey)
	for _, id := range ids {
		keys = append(keys, fieldKey(id))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCacheWrite, err)
	}
	return nil
}

func (c *FieldCache) get(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: get %s: %v", ErrCacheRead, key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrDecode, key, err)
	}
	return true, nil
}

func (c *FieldCache) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrCacheWrite, key, err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCacheWrite, key, err)
	}
	return nil
}

func fieldKey(id string) string {
	return fmt.Sprintf(fieldKeyPattern, id)
}
