package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist records revoked access tokens. Presence means revoked.
type TokenBlacklist interface {
	Add(ctx context.Context, token string) error
	Contains(ctx context.Context, token string) (bool, error)
}

// RedisTokenBlacklist stores each revoked token under its own key with a TTL
// equal to the access-token lifetime. A token revoked near expiry does not
// need to be remembered past the point its signature check would reject it
// anyway, so entries age out instead of accumulating forever.
type RedisTokenBlacklist struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisTokenBlacklist(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisTokenBlacklist {
	if prefix == "" {
		prefix = "revoked"
	}
	return &RedisTokenBlacklist{client: client, prefix: prefix, ttl: ttl}
}

func (b *RedisTokenBlacklist) key(token string) string {
	return fmt.Sprintf("%s:%s", b.prefix, token)
}

func (b *RedisTokenBlacklist) Add(ctx context.Context, token string) error {
	if err := b.client.Set(ctx, b.key(token), token, b.ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, b.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}
	return n > 0, nil
}
