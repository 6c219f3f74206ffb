package otp

import (
	"context"
	"time"
)

// Record is the stored state of an issued code.
type Record struct {
	Hash      []byte    `json:"hash"`
	Attempts  int       `json:"attempts"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store persists records until their ExpiresAt.
type Store interface {
	// Put creates or replaces the record for key.
	Put(ctx context.Context, key string, rec Record) error
	// Attempt atomically increments the attempt counter of an existing
	// record and returns it as updated. Missing or expired records yield
	// ErrNotFound; Attempt never creates one.
	Attempt(ctx context.Context, key string) (Record, error)
	// Delete reports whether a record was removed. Only one of several
	// concurrent callers observes true.
	Delete(ctx context.Context, key string) (bool, error)
}
