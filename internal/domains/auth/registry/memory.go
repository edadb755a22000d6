package registry

import (
	"context"
	"sync"
	"time"

	"microblog-backend/internal/domains/auth"
)

// memoryOTPRegistry is the default process-local OTP store: a plain map
// behind a mutex, lost on restart. Expired entries linger until they are
// hit by verification or by the sweeper.
type memoryOTPRegistry struct {
	mu      sync.Mutex
	entries map[string]auth.OTPEntry
}

func NewMemoryOTPRegistry() auth.OTPRegistry {
	return &memoryOTPRegistry{entries: map[string]auth.OTPEntry{}}
}

func (r *memoryOTPRegistry) Put(ctx context.Context, entry auth.OTPEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.Email] = entry
	return nil
}

func (r *memoryOTPRegistry) Get(ctx context.Context, email string) (*auth.OTPEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[email]
	if !ok {
		return nil, auth.ErrNoPendingRequest
	}
	return &entry, nil
}

func (r *memoryOTPRegistry) Delete(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, email)
	return nil
}

func (r *memoryOTPRegistry) Sweep(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for email, entry := range r.entries {
		if entry.Expired(now) {
			delete(r.entries, email)
			removed++
		}
	}
	return removed, nil
}

// memorySessionRegistry holds sessions for the lifetime of the process.
// There is no expiry and no revocation.
type memorySessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]auth.Session
}

func NewMemorySessionRegistry() auth.SessionRegistry {
	return &memorySessionRegistry{sessions: map[string]auth.Session{}}
}

func (r *memorySessionRegistry) Put(ctx context.Context, session auth.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Token] = session
	return nil
}

func (r *memorySessionRegistry) Get(ctx context.Context, token string) (*auth.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[token]
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	return &session, nil
}
