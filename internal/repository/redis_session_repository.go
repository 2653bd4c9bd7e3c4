package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mightcoding/ISSAConnect/internal/domain"
	"github.com/mightcoding/ISSAConnect/internal/redis"
)

const (
	sessionKeyPrefix      = "session:"
	sessionTokenKeyPrefix = "session:token:"
	sessionUserKeyPrefix  = "session:user:"
)

// RedisSessionRepository implements SessionRepository using Redis. Sessions
// are stored as JSON with a TTL matching their expiry, so expired refresh
// tokens vanish without a cleanup job.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a new RedisSessionRepository
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// Create stores a new session under its ID, indexes it by refresh token, and
// tracks it in the owner's session set.
func (r *RedisSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	rdb := r.client.Client()
	pipe := rdb.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+session.ID, data, ttl)
	pipe.Set(ctx, sessionTokenKeyPrefix+session.RefreshToken, session.ID, ttl)
	pipe.SAdd(ctx, sessionUserKeyPrefix+session.UserID, session.ID)
	pipe.Expire(ctx, sessionUserKeyPrefix+session.UserID, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// GetByRefreshToken retrieves a session; (nil, nil) when absent or expired.
func (r *RedisSessionRepository) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	rdb := r.client.Client()

	id, err := rdb.Get(ctx, sessionTokenKeyPrefix+refreshToken).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	data, err := rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	session := &domain.Session{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return session, nil
}

// Delete removes a session by ID
func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	rdb := r.client.Client()

	data, err := rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil // already gone
		}
		return err
	}

	session := &domain.Session{}
	if err := json.Unmarshal(data, session); err != nil {
		return fmt.Errorf("unmarshal session: %w", err)
	}

	pipe := rdb.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+id)
	pipe.Del(ctx, sessionTokenKeyPrefix+session.RefreshToken)
	pipe.SRem(ctx, sessionUserKeyPrefix+session.UserID, id)
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteByUserID removes all sessions of a user
func (r *RedisSessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	rdb := r.client.Client()

	ids, err := rdb.SMembers(ctx, sessionUserKeyPrefix+userID).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil
		}
		return err
	}

	for _, id := range ids {
		if err := r.Delete(ctx, id); err != nil {
			return err
		}
	}
	return rdb.Del(ctx, sessionUserKeyPrefix+userID).Err()
}
