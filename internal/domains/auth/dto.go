package auth

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// Deliberately loose: local@domain.tld, no RFC 5322 ambitions.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)
)

// CheckUsernameRequest - POST /auth/check-username
type CheckUsernameRequest struct {
	Username string `json:"username"`
}

func (r CheckUsernameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Match(usernamePattern).Error("username must be 3-20 characters: letters, numbers, _ or -"),
		),
	)
}

// CheckUsernameResponse reports availability.
type CheckUsernameResponse struct {
	Available bool `json:"available"`
}

// SignupOTPRequest - POST /auth/signup/send-otp
type SignupOTPRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

func (r SignupOTPRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			validation.Match(emailPattern).Error("invalid email format"),
		),
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Match(usernamePattern).Error("username must be 3-20 characters: letters, numbers, _ or -"),
		),
	)
}

// LoginOTPRequest - POST /auth/login/send-otp
type LoginOTPRequest struct {
	Email string `json:"email"`
}

func (r LoginOTPRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			validation.Match(emailPattern).Error("invalid email format"),
		),
	)
}

// VerifyOTPRequest - POST /auth/signup/verify and /auth/login/verify.
// The purpose is implied by the endpoint, not the body.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (r VerifyOTPRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			validation.Match(emailPattern).Error("invalid email format"),
		),
		validation.Field(&r.OTP,
			validation.Required.Error("otp is required"),
			validation.Match(regexp.MustCompile(`^[0-9]{6}$`)).Error("otp must be 6 digits"),
		),
	)
}

// AuthResponse is returned on successful verification of either flow.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// MessageResponse acknowledges an OTP send.
type MessageResponse struct {
	Message string `json:"message"`
}
