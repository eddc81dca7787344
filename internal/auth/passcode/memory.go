package passcode

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"
)

type memoryEntry struct {
	code      string
	expiresAt time.Time
	attempts  int
}

type memoryStore struct {
	mu          sync.Mutex
	entries     map[string]*memoryEntry
	ttl         time.Duration
	maxAttempts int
	now         func() time.Time
}

func newMemoryStore(ttl time.Duration, maxAttempts int) *memoryStore {
	return &memoryStore{
		entries:     make(map[string]*memoryEntry),
		ttl:         ttl,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

func (s *memoryStore) Put(ctx context.Context, key, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &memoryEntry{
		code:      code,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *memoryStore) Verify(ctx context.Context, key, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return ErrNotFound
	}

	entry.attempts++
	if entry.attempts > s.maxAttempts {
		delete(s.entries, key)
		return ErrTooManyAttempts
	}

	if subtle.ConstantTimeCompare([]byte(entry.code), []byte(code)) != 1 {
		return ErrMismatch
	}

	delete(s.entries, key)
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
