package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog-backend/internal/domains/auth"
)

func TestMemoryOTPRegistry(t *testing.T) {
	reg := NewMemoryOTPRegistry()
	ctx := context.Background()

	_, err := reg.Get(ctx, "a@b.com")
	require.ErrorIs(t, err, auth.ErrNoPendingRequest)

	entry := auth.OTPEntry{
		Email:     "a@b.com",
		Code:      "123456",
		Purpose:   auth.PurposeLogin,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	require.NoError(t, reg.Put(ctx, entry))

	got, err := reg.Get(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", got.Code)

	// Put overwrites any pending entry for the same email
	entry.Code = "654321"
	require.NoError(t, reg.Put(ctx, entry))

	got, err = reg.Get(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "654321", got.Code)

	require.NoError(t, reg.Delete(ctx, "a@b.com"))
	_, err = reg.Get(ctx, "a@b.com")
	require.ErrorIs(t, err, auth.ErrNoPendingRequest)
}

func TestMemoryOTPRegistrySweep(t *testing.T) {
	reg := NewMemoryOTPRegistry()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, reg.Put(ctx, auth.OTPEntry{
		Email: "stale@b.com", Code: "111111",
		Purpose: auth.PurposeLogin, ExpiresAt: now.Add(-time.Minute),
	}))
	require.NoError(t, reg.Put(ctx, auth.OTPEntry{
		Email: "fresh@b.com", Code: "222222",
		Purpose: auth.PurposeLogin, ExpiresAt: now.Add(time.Minute),
	}))

	removed, err := reg.Sweep(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = reg.Get(ctx, "stale@b.com")
	require.ErrorIs(t, err, auth.ErrNoPendingRequest)

	_, err = reg.Get(ctx, "fresh@b.com")
	require.NoError(t, err)
}

func TestMemorySessionRegistry(t *testing.T) {
	reg := NewMemorySessionRegistry()
	ctx := context.Background()

	_, err := reg.Get(ctx, "nope")
	require.ErrorIs(t, err, auth.ErrSessionNotFound)

	session := auth.Session{Token: "tok", Email: "a@b.com", Username: "alice"}
	require.NoError(t, reg.Put(ctx, session))

	got, err := reg.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "a@b.com", got.Email)
}
