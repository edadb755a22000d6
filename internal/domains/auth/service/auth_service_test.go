package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog-backend/internal/domains/auth"
	"microblog-backend/internal/domains/auth/registry"
	"microblog-backend/internal/domains/user"
	userRepo "microblog-backend/internal/domains/user/repository"
	"microblog-backend/internal/infrastructure/email"
)

// captureMailer records the last message instead of delivering it.
type captureMailer struct {
	last *email.OTPMessage
	fail bool
}

func (m *captureMailer) SendOTP(ctx context.Context, msg email.OTPMessage) error {
	m.last = &msg
	if m.fail {
		return errors.New("relay unreachable")
	}
	return nil
}

type testDeps struct {
	service  auth.Service
	users    user.Repository
	otps     auth.OTPRegistry
	sessions auth.SessionRegistry
	mailer   *captureMailer
}

func newTestService(t *testing.T) *testDeps {
	t.Helper()

	deps := &testDeps{
		users:    userRepo.NewJSONFileRepository(t.TempDir()),
		otps:     registry.NewMemoryOTPRegistry(),
		sessions: registry.NewMemorySessionRegistry(),
		mailer:   &captureMailer{},
	}
	deps.service = NewAuthService(deps.users, deps.otps, deps.sessions, deps.mailer, 10*time.Minute)
	return deps
}

func signup(t *testing.T, deps *testDeps, address, username string) *auth.AuthResponse {
	t.Helper()

	err := deps.service.SendSignupOTP(context.Background(), auth.SignupOTPRequest{
		Email:    address,
		Username: username,
	})
	require.NoError(t, err)
	require.NotNil(t, deps.mailer.last)

	res, err := deps.service.VerifySignup(context.Background(), auth.VerifyOTPRequest{
		Email: address,
		OTP:   deps.mailer.last.Code,
	})
	require.NoError(t, err)
	return res
}

func TestSignupFlow(t *testing.T) {
	deps := newTestService(t)
	ctx := context.Background()

	avail, err := deps.service.CheckUsername(ctx, auth.CheckUsernameRequest{Username: "alice"})
	require.NoError(t, err)
	assert.True(t, avail.Available)

	err = deps.service.SendSignupOTP(ctx, auth.SignupOTPRequest{Email: "a@b.com", Username: "alice"})
	require.NoError(t, err)
	require.NotNil(t, deps.mailer.last)
	assert.Equal(t, "a@b.com", deps.mailer.last.Email)
	assert.Equal(t, auth.PurposeSignup, deps.mailer.last.Purpose)
	assert.Regexp(t, `^[0-9]{6}$`, deps.mailer.last.Code)

	// Wrong code first
	_, err = deps.service.VerifySignup(ctx, auth.VerifyOTPRequest{Email: "a@b.com", OTP: "000000"})
	require.ErrorIs(t, err, auth.ErrOTPMismatch)

	// Correct code succeeds and opens a session
	res, err := deps.service.VerifySignup(ctx, auth.VerifyOTPRequest{Email: "a@b.com", OTP: deps.mailer.last.Code})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)
	assert.Len(t, res.Token, 64) // 256-bit hex

	session, err := deps.sessions.Get(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", session.Email)
	assert.Equal(t, "alice", session.Username)

	// The code is consumed: a replay finds no pending entry
	_, err = deps.service.VerifySignup(ctx, auth.VerifyOTPRequest{Email: "a@b.com", OTP: deps.mailer.last.Code})
	require.ErrorIs(t, err, auth.ErrNoPendingRequest)

	// The username is claimed now
	avail, err = deps.service.CheckUsername(ctx, auth.CheckUsernameRequest{Username: "alice"})
	require.NoError(t, err)
	assert.False(t, avail.Available)
}

func TestSignupConflicts(t *testing.T) {
	deps := newTestService(t)
	ctx := context.Background()

	signup(t, deps, "a@b.com", "alice")

	err := deps.service.SendSignupOTP(ctx, auth.SignupOTPRequest{Email: "a@b.com", Username: "other"})
	require.ErrorIs(t, err, auth.ErrEmailAlreadyRegistered)

	// Username taken, any email
	err = deps.service.SendSignupOTP(ctx, auth.SignupOTPRequest{Email: "x@y.com", Username: "alice"})
	require.ErrorIs(t, err, auth.ErrUsernameTaken)
}

func TestExpiredCodeFailsEvenIfItMatches(t *testing.T) {
	deps := newTestService(t)
	ctx := context.Background()

	require.NoError(t, deps.otps.Put(ctx, auth.OTPEntry{
		Email:           "a@b.com",
		Code:            "123456",
		Purpose:         auth.PurposeSignup,
		ExpiresAt:       time.Now().Add(-time.Minute),
		PendingUsername: "alice",
	}))

	_, err := deps.service.VerifySignup(ctx, auth.VerifyOTPRequest{Email: "a@b.com", OTP: "123456"})
	require.ErrorIs(t, err, auth.ErrOTPExpired)

	// Expiry detection deletes the entry
	_, err = deps.service.VerifySignup(ctx, auth.VerifyOTPRequest{Email: "a@b.com", OTP: "123456"})
	require.ErrorIs(t, err, auth.ErrNoPendingRequest)
}

func TestReRequestInvalidatesPreviousCode(t *testing.T) {
	deps := newTestService(t)
	ctx := context.Background()

	require.NoError(t, deps.service.SendSignupOTP(ctx, auth.SignupOTPRequest{Email: "a@b.com", Username: "alice"}))
	firstCode := deps.mailer.last.Code

	require.NoError(t, deps.service.SendSignupOTP(ctx, auth.SignupOTPRequest{Email: "a@b.com", Username: "alice"}))
	secondCode := deps.mailer.last.Code

	if firstCode != secondCode {
		_, err := deps.service.VerifySignup(ctx, auth.VerifyOTPRequest{Email: "a@b.com", OTP: firstCode})
		require.ErrorIs(t, err, auth.ErrOTPMismatch)
	}

	_, err := deps.service.VerifySignup(ctx, auth.VerifyOTPRequest{Email: "a@b.com", OTP: secondCode})
	require.NoError(t, err)
}

func TestLoginFlow(t *testing.T) {
	deps := newTestService(t)
	ctx := context.Background()

	// Unregistered email cannot request a login code
	err := deps.service.SendLoginOTP(ctx, auth.LoginOTPRequest{Email: "a@b.com"})
	require.ErrorIs(t, err, auth.ErrNotRegistered)

	signup(t, deps, "a@b.com", "alice")

	require.NoError(t, deps.service.SendLoginOTP(ctx, auth.LoginOTPRequest{Email: "a@b.com"}))
	assert.Equal(t, auth.PurposeLogin, deps.mailer.last.Purpose)

	res, err := deps.service.VerifyLogin(ctx, auth.VerifyOTPRequest{Email: "a@b.com", OTP: deps.mailer.last.Code})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)
	assert.NotEmpty(t, res.Token)
}

func TestPurposeMismatch(t *testing.T) {
	deps := newTestService(t)
	ctx := context.Background()

	signup(t, deps, "a@b.com", "alice")

	// A fresh signup code for another email cannot be spent on login
	require.NoError(t, deps.service.SendSignupOTP(ctx, auth.SignupOTPRequest{Email: "x@y.com", Username: "bob"}))

	_, err := deps.service.VerifyLogin(ctx, auth.VerifyOTPRequest{Email: "x@y.com", OTP: deps.mailer.last.Code})
	require.ErrorIs(t, err, auth.ErrNoPendingRequest)
}

func TestDeliveryFailureKeepsEntryStored(t *testing.T) {
	deps := newTestService(t)
	ctx := context.Background()

	signup(t, deps, "a@b.com", "alice")

	deps.mailer.fail = true
	err := deps.service.SendLoginOTP(ctx, auth.LoginOTPRequest{Email: "a@b.com"})
	require.ErrorIs(t, err, auth.ErrDeliveryFailed)

	// The entry was stored before delivery was attempted, so the code
	// that never arrived still verifies.
	res, err := deps.service.VerifyLogin(ctx, auth.VerifyOTPRequest{Email: "a@b.com", OTP: deps.mailer.last.Code})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)
}

func TestValidationRejectsBeforeStoreAccess(t *testing.T) {
	deps := newTestService(t)
	ctx := context.Background()

	err := deps.service.SendSignupOTP(ctx, auth.SignupOTPRequest{Email: "not-an-email", Username: "alice"})
	require.Error(t, err)

	err = deps.service.SendSignupOTP(ctx, auth.SignupOTPRequest{Email: "a@b.com", Username: "a!"})
	require.Error(t, err)

	_, err = deps.service.CheckUsername(ctx, auth.CheckUsernameRequest{Username: "ab"})
	require.Error(t, err)

	// Nothing was stored for any of those
	_, err = deps.otps.Get(ctx, "a@b.com")
	require.ErrorIs(t, err, auth.ErrNoPendingRequest)
}
