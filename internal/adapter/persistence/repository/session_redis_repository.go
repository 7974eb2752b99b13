package repository

import (
	"context"
	"errors"
	"time"

	"monitoring_tunggakan/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "tunggakan:session:"

// SessionRedisRepository keeps sessions in Redis with the session TTL as key expiry.
type SessionRedisRepository struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ interfaces.ISessionStore = (*SessionRedisRepository)(nil)

func NewSessionRedisRepository(client redis.Cmdable, ttl time.Duration) *SessionRedisRepository {
	return &SessionRedisRepository{client: client, ttl: ttl}
}

func (r *SessionRedisRepository) Get(ctx context.Context, key string) (string, error) {
	token, err := r.client.Get(ctx, sessionKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return token, err
}

func (r *SessionRedisRepository) Set(ctx context.Context, key, token string) error {
	return r.client.Set(ctx, sessionKeyPrefix+key, token, r.ttl).Err()
}

func (r *SessionRedisRepository) Clear(ctx context.Context, key string) error {
	return r.client.Del(ctx, sessionKeyPrefix+key).Err()
}
