package passcode

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client      *redis.Client
	ttl         time.Duration
	maxAttempts int
}

func newRedisStore(url string, ttl time.Duration, maxAttempts int) (*redisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	return &redisStore{
		client:      redis.NewClient(opts),
		ttl:         ttl,
		maxAttempts: maxAttempts,
	}, nil
}

func codeKey(key string) string     { return "passcode:" + key }
func attemptsKey(key string) string { return "passcode:attempts:" + key }

func (s *redisStore) Put(ctx context.Context, key, code string) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, codeKey(key), code, s.ttl)
	pipe.Del(ctx, attemptsKey(key))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store passcode: %w", err)
	}
	return nil
}

func (s *redisStore) Verify(ctx context.Context, key, code string) error {
	stored, err := s.client.Get(ctx, codeKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load passcode: %w", err)
	}

	attempts, err := s.client.Incr(ctx, attemptsKey(key)).Result()
	if err != nil {
		return fmt.Errorf("count passcode attempt: %w", err)
	}
	// Attempt counter expires alongside the passcode.
	s.client.Expire(ctx, attemptsKey(key), s.ttl)

	if attempts > int64(s.maxAttempts) {
		s.invalidate(ctx, key)
		return ErrTooManyAttempts
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return ErrMismatch
	}

	s.invalidate(ctx, key)
	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, codeKey(key), attemptsKey(key)).Err(); err != nil {
		return fmt.Errorf("delete passcode: %w", err)
	}
	return nil
}

func (s *redisStore) invalidate(ctx context.Context, key string) {
	s.client.Del(ctx, codeKey(key), attemptsKey(key))
}
