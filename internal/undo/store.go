// Package undo holds short-lived deduction snapshots so a cook can be
// reversed within a small window.
package undo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/calloway/larder/internal/engine"
)

// ErrTokenNotFound is returned for any unusable token: absent, expired,
// already redeemed, or owned by another user. One signal for all cases
// so callers cannot probe for token existence.
var ErrTokenNotFound = errors.New("undo token not found")

// DefaultTTL is how long a deduction stays reversible
const DefaultTTL = 60 * time.Second

// Snapshot is the stored pre-deduction state for one cook call
type Snapshot struct {
	UserID    int                    `json:"user_id"`
	Entries   []engine.SnapshotEntry `json:"entries"`
	ExpiresAt time.Time              `json:"expires_at"`
}

// Store is the key-value contract behind the ledger. The in-memory
// implementation suits a single instance; the Redis implementation is
// for horizontally scaled deployments. Both expire entries after the
// given TTL.
type Store interface {
	Put(ctx context.Context, token string, snap Snapshot, ttl time.Duration) error
	Get(ctx context.Context, token string) (Snapshot, error)
	Delete(ctx context.Context, token string) error
}

// Ledger issues and redeems undo tokens on top of a Store
type Ledger struct {
	store Store
	ttl   time.Duration
}

// NewLedger creates a ledger with the default TTL
func NewLedger(store Store) *Ledger {
	return &Ledger{store: store, ttl: DefaultTTL}
}

// Create stores a snapshot under a fresh opaque token and returns it
func (l *Ledger) Create(ctx context.Context, userID int, entries []engine.SnapshotEntry) (string, error) {
	token := uuid.NewString()
	snap := Snapshot{
		UserID:    userID,
		Entries:   entries,
		ExpiresAt: time.Now().Add(l.ttl),
	}
	if err := l.store.Put(ctx, token, snap, l.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Redeem looks up a token for the given user and deletes it. A token is
// redeemable at most once; a token owned by another user is reported
// not found and left in place.
func (l *Ledger) Redeem(ctx context.Context, token string, userID int) ([]engine.SnapshotEntry, error) {
	snap, err := l.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if snap.UserID != userID {
		return nil, ErrTokenNotFound
	}
	if err := l.store.Delete(ctx, token); err != nil {
		return nil, err
	}
	return snap.Entries, nil
}
