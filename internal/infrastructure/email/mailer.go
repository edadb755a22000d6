package email

import (
	"context"
	"time"

	"microblog-backend/internal/domains/auth"
)

// OTPMessage carries everything needed to deliver a one-time code.
type OTPMessage struct {
	Email     string
	Code      string
	Purpose   auth.Purpose
	ExpiresIn time.Duration
}

// Mailer delivers OTP codes. Two implementations: a real SMTP relay and
// a console sink that logs the code instead (diagnostic mode).
type Mailer interface {
	SendOTP(ctx context.Context, msg OTPMessage) error
}
