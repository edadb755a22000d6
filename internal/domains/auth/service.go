package auth

import "context"

// Service is the OTP-gated authentication flow: issuance, verification,
// and session minting.
type Service interface {
	// CheckUsername reports whether username is free to claim.
	CheckUsername(ctx context.Context, req CheckUsernameRequest) (*CheckUsernameResponse, error)

	// SendSignupOTP stores a pending signup code for the email and
	// delivers it. The entry stays stored even if delivery fails.
	SendSignupOTP(ctx context.Context, req SignupOTPRequest) error

	// VerifySignup consumes the pending signup code, creates the user,
	// and issues a session.
	VerifySignup(ctx context.Context, req VerifyOTPRequest) (*AuthResponse, error)

	// SendLoginOTP stores a pending login code for a registered email
	// and delivers it.
	SendLoginOTP(ctx context.Context, req LoginOTPRequest) error

	// VerifyLogin consumes the pending login code and issues a session
	// for the existing user.
	VerifyLogin(ctx context.Context, req VerifyOTPRequest) (*AuthResponse, error)
}
