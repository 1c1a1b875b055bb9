package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// sessionKeyPrefix is the key prefix for session identity hashes
	sessionKeyPrefix = "sess:"

	// flashSuffix separates the flash hash from the identity hash
	flashSuffix = ":flash"
)

// RedisStore implements Store using Redis hashes. Each session uses two keys:
// sess:<sid> holds the identity, sess:<sid>:flash holds pending flash
// messages. Both carry the session TTL so abandoned sessions expire on
// their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Store backed by Redis.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(sid string) string {
	return sessionKeyPrefix + sid
}

func flashKey(sid string) string {
	return sessionKeyPrefix + sid + flashSuffix
}

func (s *RedisStore) GetUser(ctx context.Context, sid string) (int64, string, error) {
	fields, err := s.client.HGetAll(ctx, sessionKey(sid)).Result()
	if err != nil {
		return 0, "", fmt.Errorf("get session: %w", err)
	}
	if len(fields) == 0 {
		return 0, "", ErrNoSession
	}

	userID, err := strconv.ParseInt(fields["user_id"], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parse session user_id: %w", err)
	}

	return userID, fields["username"], nil
}

func (s *RedisStore) SetUser(ctx context.Context, sid string, userID int64, username string) error {
	key := sessionKey(sid)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, "user_id", userID, "username", username)
	pipe.Expire(ctx, key, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("set session user: %w", err)
	}
	return nil
}

func (s *RedisStore) ClearUser(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, sessionKey(sid)).Err(); err != nil {
		return fmt.Errorf("clear session user: %w", err)
	}
	return nil
}

func (s *RedisStore) PushFlash(ctx context.Context, sid, key, message string) error {
	fk := flashKey(sid)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, fk, key, message)
	pipe.Expire(ctx, fk, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push flash: %w", err)
	}
	return nil
}

// DrainFlash reads and deletes the flash hash in one transaction so a message
// is observed exactly once.
func (s *RedisStore) DrainFlash(ctx context.Context, sid string) (map[string]string, error) {
	fk := flashKey(sid)

	pipe := s.client.TxPipeline()
	getAll := pipe.HGetAll(ctx, fk)
	pipe.Del(ctx, fk)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("drain flash: %w", err)
	}

	return getAll.Val(), nil
}
