package adapter

import (
	"context"
	"errors"
	"fmt"

	"eduquiz-web/internal/cache"
	"eduquiz-web/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore implements domain.SessionStore with one redis hash per
// browser profile. Both fields are written by a single HSET so a reader never
// sees a token without a user.
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a new instance of RedisSessionStore.
// It expects a connected *redis.Client.
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// GetSession reads the hash; an empty hash means no session.
func (r *RedisSessionStore) GetSession(ctx context.Context, sid string) (*domain.SessionRecord, error) {
	fields, err := r.client.HGetAll(ctx, cache.SessionKey(sid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis session get: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrSessionNotFound
	}
	return &domain.SessionRecord{
		AccessToken: fields[domain.SessionKeyAccessToken],
		User:        fields[domain.SessionKeyUser],
	}, nil
}

// SetSession writes both fields in one command. Sessions do not expire.
func (r *RedisSessionStore) SetSession(ctx context.Context, sid string, record domain.SessionRecord) error {
	err := r.client.HSet(ctx, cache.SessionKey(sid),
		domain.SessionKeyAccessToken, record.AccessToken,
		domain.SessionKeyUser, record.User,
	).Err()
	if err != nil {
		return fmt.Errorf("redis session set: %w", err)
	}
	return nil
}

// ClearSession removes the whole hash.
func (r *RedisSessionStore) ClearSession(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, cache.SessionKey(sid)).Err(); err != nil {
		return fmt.Errorf("redis session clear: %w", err)
	}
	return nil
}

// Ping checks the health of the Redis server.
func (r *RedisSessionStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

var (
	_ domain.SessionStore = (*RedisSessionStore)(nil)
	_ domain.Pinger       = (*RedisSessionStore)(nil)
)
