// Package cache holds the rendered-form cache. Rendering a form is pure
// given the stored definition, so the result can be cached per listing,
// version and language; a version bump naturally changes the key and the
// stale entry just expires.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	id "oppform/pkg/domain"
	"oppform/pkg/transstring"
)

// ErrMiss is returned when the cache has no entry for the key.
var ErrMiss = errors.New("cache miss")

// RenderCache stores rendered forms as serialized JSON payloads.
type RenderCache interface {
	Get(ctx context.Context, oppID id.OpportunityID, version int, lang transstring.Language) ([]byte, error)
	Set(ctx context.Context, oppID id.OpportunityID, version int, lang transstring.Language, payload []byte) error
	Invalidate(ctx context.Context, oppID id.OpportunityID) error
}

// RedisCache is a Redis-backed RenderCache.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func key(oppID id.OpportunityID, version int, lang transstring.Language) string {
	return fmt.Sprintf("form:render:%s:%d:%s", oppID, version, lang)
}

func (c *RedisCache) Get(ctx context.Context, oppID id.OpportunityID, version int, lang transstring.Language) ([]byte, error) {
	payload, err := c.client.Get(ctx, key(oppID, version, lang)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("render cache get: %w", err)
	}
	return payload, nil
}

func (c *RedisCache) Set(ctx context.Context, oppID id.OpportunityID, version int, lang transstring.Language, payload []byte) error {
	if err := c.client.Set(ctx, key(oppID, version, lang), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("render cache set: %w", err)
	}
	return nil
}

// Invalidate drops every cached rendering of a listing's form. Used on
// delete; updates rely on the version in the key instead.
func (c *RedisCache) Invalidate(ctx context.Context, oppID id.OpportunityID) error {
	pattern := fmt.Sprintf("form:render:%s:*", oppID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	pipe := c.client.Pipeline()
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("render cache scan: %w", err)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("render cache invalidate: %w", err)
	}
	return nil
}

// NopCache is used when Redis is not configured. Every Get is a miss.
type NopCache struct{}

func NewNop() NopCache { return NopCache{} }

func (NopCache) Get(context.Context, id.OpportunityID, int, transstring.Language) ([]byte, error) {
	return nil, ErrMiss
}

func (NopCache) Set(context.Context, id.OpportunityID, int, transstring.Language, []byte) error {
	return nil
}

func (NopCache) Invalidate(context.Context, id.OpportunityID) error { return nil }
