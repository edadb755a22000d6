package auth

import "errors"

var (
	// OTP issuance
	ErrEmailAlreadyRegistered = errors.New("email is already registered")
	ErrUsernameTaken          = errors.New("username is already taken")
	ErrNotRegistered          = errors.New("email is not registered")
	ErrDeliveryFailed         = errors.New("failed to deliver verification code")

	// OTP verification
	ErrNoPendingRequest = errors.New("no pending verification request")
	ErrOTPExpired       = errors.New("verification code has expired")
	ErrOTPMismatch      = errors.New("invalid verification code")

	// Session validation
	ErrSessionNotFound = errors.New("session not found")
)
