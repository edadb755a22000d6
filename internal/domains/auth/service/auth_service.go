package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"microblog-backend/internal/domains/auth"
	"microblog-backend/internal/domains/user"
	"microblog-backend/internal/infrastructure/email"
	"microblog-backend/pkg/logger"
)

// authService implements auth.Service: OTP issuance and verification,
// and session minting on success.
type authService struct {
	users    user.Repository
	otps     auth.OTPRegistry
	sessions auth.SessionRegistry
	mailer   email.Mailer
	otpTTL   time.Duration
}

func NewAuthService(
	users user.Repository,
	otps auth.OTPRegistry,
	sessions auth.SessionRegistry,
	mailer email.Mailer,
	otpTTL time.Duration,
) auth.Service {
	return &authService{
		users:    users,
		otps:     otps,
		sessions: sessions,
		mailer:   mailer,
		otpTTL:   otpTTL,
	}
}

func (s *authService) CheckUsername(ctx context.Context, req auth.CheckUsernameRequest) (*auth.CheckUsernameResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}

	return &auth.CheckUsernameResponse{Available: !taken}, nil
}

func (s *authService) SendSignupOTP(ctx context.Context, req auth.SignupOTPRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	registered, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if registered {
		return auth.ErrEmailAlreadyRegistered
	}

	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if taken {
		return auth.ErrUsernameTaken
	}

	return s.issueOTP(ctx, req.Email, auth.PurposeSignup, req.Username)
}

func (s *authService) VerifySignup(ctx context.Context, req auth.VerifyOTPRequest) (*auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry, err := s.consumeOTP(ctx, req, auth.PurposeSignup)
	if err != nil {
		return nil, err
	}

	newUser := &user.User{
		Email:     entry.Email,
		Username:  entry.PendingUsername,
		CreatedAt: time.Now(),
		PostCount: 0,
	}
	// Uniqueness is checked again at commit time; the gap between the
	// availability check and here is not guarded.
	if err := s.users.Create(ctx, newUser); err != nil {
		return nil, err
	}

	return s.openSession(ctx, entry.Email, newUser.Username)
}

func (s *authService) SendLoginOTP(ctx context.Context, req auth.LoginOTPRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	registered, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if !registered {
		return auth.ErrNotRegistered
	}

	return s.issueOTP(ctx, req.Email, auth.PurposeLogin, "")
}

func (s *authService) VerifyLogin(ctx context.Context, req auth.VerifyOTPRequest) (*auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry, err := s.consumeOTP(ctx, req, auth.PurposeLogin)
	if err != nil {
		return nil, err
	}

	u, err := s.users.FindByEmail(ctx, entry.Email)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	return s.openSession(ctx, u.Email, u.Username)
}

// issueOTP stores a fresh code (overwriting any pending entry for the
// email) and hands it to the mailer. A delivery failure is surfaced but
// the stored entry is kept.
func (s *authService) issueOTP(ctx context.Context, address string, purpose auth.Purpose, pendingUsername string) error {
	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	entry := auth.OTPEntry{
		Email:           address,
		Code:            code,
		Purpose:         purpose,
		ExpiresAt:       time.Now().Add(s.otpTTL),
		PendingUsername: pendingUsername,
	}
	if err := s.otps.Put(ctx, entry); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	msg := email.OTPMessage{
		Email:     address,
		Code:      code,
		Purpose:   purpose,
		ExpiresIn: s.otpTTL,
	}
	if err := s.mailer.SendOTP(ctx, msg); err != nil {
		logger.Error("otp delivery failed", err)
		return fmt.Errorf("%w: %v", auth.ErrDeliveryFailed, err)
	}

	return nil
}

// consumeOTP validates and removes the pending entry for the request.
// Exactly one entry is consumed per success; a replayed code finds no
// entry and fails with ErrNoPendingRequest.
func (s *authService) consumeOTP(ctx context.Context, req auth.VerifyOTPRequest, purpose auth.Purpose) (*auth.OTPEntry, error) {
	entry, err := s.otps.Get(ctx, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrNoPendingRequest) {
			return nil, auth.ErrNoPendingRequest
		}
		return nil, fmt.Errorf("load otp: %w", err)
	}

	if entry.Purpose != purpose {
		return nil, auth.ErrNoPendingRequest
	}

	if entry.Expired(time.Now()) {
		if err := s.otps.Delete(ctx, req.Email); err != nil {
			logger.Error("delete expired otp", err)
		}
		return nil, auth.ErrOTPExpired
	}

	if entry.Code != req.OTP {
		return nil, auth.ErrOTPMismatch
	}

	if err := s.otps.Delete(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("consume otp: %w", err)
	}

	return entry, nil
}

func (s *authService) openSession(ctx context.Context, address, username string) (*auth.AuthResponse, error) {
	token, err := generateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	session := auth.Session{
		Token:    token,
		Email:    address,
		Username: username,
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &auth.AuthResponse{Token: token, Username: username}, nil
}

// generateOTPCode returns a 6-digit code uniform over 100000-999999.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// generateSessionToken returns a random 256-bit hex token.
func generateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
