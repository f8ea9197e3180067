package undo

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local snapshot store. Sufficient for a
// single-instance deployment only: an undo request served by another
// instance will not see tokens created here.
type MemoryStore struct {
	mu    sync.Mutex
	snaps map[string]Snapshot
	now   func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snaps: make(map[string]Snapshot),
		now:   time.Now,
	}
}

// Put stores a snapshot under the token with the given TTL
func (s *MemoryStore) Put(ctx context.Context, token string, snap Snapshot, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	snap.ExpiresAt = s.now().Add(ttl)
	s.snaps[token] = snap
	return nil
}

// Get returns the snapshot for a token, or ErrTokenNotFound when it is
// absent or expired
func (s *MemoryStore) Get(ctx context.Context, token string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	snap, ok := s.snaps[token]
	if !ok {
		return Snapshot{}, ErrTokenNotFound
	}
	return snap, nil
}

// Delete removes a token. Deleting an absent token is not an error.
func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snaps, token)
	s.sweep()
	return nil
}

// sweep drops expired entries. Called on every access instead of a
// background timer; the map stays tiny because TTLs are short.
// Caller must hold the lock.
func (s *MemoryStore) sweep() {
	now := s.now()
	for token, snap := range s.snaps {
		if now.After(snap.ExpiresAt) {
			delete(s.snaps, token)
		}
	}
}
