package blocklist

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/book_service/internal/tokens"
)

// Blocklist records revoked token IDs. An entry only has to outlive the
// access token it refers to, so entries expire on their own and no sweep
// process is needed.
type Blocklist interface {
	Add(ctx context.Context, jti string) error
	Contains(ctx context.Context, jti string) (bool, error)
}

type RedisBlocklist struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisBlocklist(client *redis.Client) *RedisBlocklist {
	return &RedisBlocklist{Client: client, TTL: tokens.AccessTokenTTL}
}

func (b *RedisBlocklist) Add(ctx context.Context, jti string) error {
	return b.Client.Set(ctx, blockKey(jti), "", b.TTL).Err()
}

func (b *RedisBlocklist) Contains(ctx context.Context, jti string) (bool, error) {
	if err := b.Client.Get(ctx, blockKey(jti)).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func blockKey(jti string) string { return "blocklist:" + jti }
