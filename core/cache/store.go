package cache

import (
	"bytes"
	"context"
	"time"
)

// Store is a key/value cache with per-entry time-to-live.
// A ttl of zero means the entry does not expire.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is an in-process Store backed by LRUCache.
type MemoryStore struct {
	lru *LRUCache[string, memoryEntry]
	now func() time.Time
}

// NewMemoryStore creates a store keeping at most capacity entries.
func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{
		lru: NewLRUCache[string, memoryEntry](capacity),
		now: time.Now,
	}
}

// Get returns a copy of the value stored under key. Expired entries are dropped.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	e, ok := s.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.lru.Remove(key)
		return nil, false, nil
	}
	return bytes.Clone(e.value), true, nil
}

// Set stores a copy of value under key.
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := memoryEntry{value: bytes.Clone(value)}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.lru.Put(key, e)
	return nil
}

// Remove deletes key. Missing keys are not an error.
func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.lru.Remove(key)
	return nil
}

// Len returns the number of entries, including expired ones not yet dropped.
func (s *MemoryStore) Len() int {
	return s.lru.Len()
}
