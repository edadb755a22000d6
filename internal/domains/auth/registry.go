package auth

import (
	"context"
	"time"
)

// OTPRegistry holds pending one-time codes keyed by email.
// Put overwrites any existing entry for the same email.
type OTPRegistry interface {
	Put(ctx context.Context, entry OTPEntry) error

	// Get returns the pending entry for email, or ErrNoPendingRequest.
	// Expiry is NOT checked here; that stays with the caller so
	// "expired" and "missing" remain distinguishable.
	Get(ctx context.Context, email string) (*OTPEntry, error)

	Delete(ctx context.Context, email string) error

	// Sweep removes entries expired at the given time and returns how
	// many were dropped. Expiry is otherwise only checked lazily on
	// verification.
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// SessionRegistry holds issued sessions keyed by token.
type SessionRegistry interface {
	Put(ctx context.Context, session Session) error

	// Get returns the session for token, or ErrSessionNotFound.
	Get(ctx context.Context, token string) (*Session, error)
}
