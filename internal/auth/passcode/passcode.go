// Package passcode stores short-lived one-time passcodes keyed by
// identity, enforcing expiry and a bounded number of verification
// attempts.
package passcode

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// Sentinel errors for passcode verification.
var (
	ErrNotFound        = errors.New("passcode expired or not issued")
	ErrMismatch        = errors.New("passcode mismatch")
	ErrTooManyAttempts = errors.New("too many passcode attempts")
)

// Store persists one-time passcodes.
type Store interface {
	// Put stores code under key, replacing any previous passcode and
	// resetting the attempt counter.
	Put(ctx context.Context, key, code string) error

	// Verify checks code against the passcode stored under key. A
	// successful verification consumes the passcode. Each failed
	// attempt counts toward the attempt cap; exceeding it invalidates
	// the passcode.
	Verify(ctx context.Context, key, code string) error

	// Delete removes any passcode stored under key. Deleting an absent
	// key is not an error.
	Delete(ctx context.Context, key string) error
}

// New creates a store from configuration. A configured redis URL
// selects the redis backend; otherwise passcodes are held in memory.
func New(config *Config) (Store, error) {
	ttl, err := time.ParseDuration(config.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid passcode ttl: %w", err)
	}

	if config.RedisURL != "" {
		return newRedisStore(config.RedisURL, ttl, config.MaxAttempts)
	}
	return newMemoryStore(ttl, config.MaxAttempts), nil
}

// Generate returns a random numeric passcode of the given length.
func Generate(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("generate passcode: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
