package email

import (
	"context"

	"github.com/rs/zerolog/log"
)

type consoleMailer struct{}

// NewConsoleMailer returns the diagnostic-mode mailer: instead of
// sending mail it writes the code to the operational log.
func NewConsoleMailer() Mailer {
	return &consoleMailer{}
}

func (m *consoleMailer) SendOTP(ctx context.Context, msg OTPMessage) error {
	log.Info().
		Str("to", msg.Email).
		Str("purpose", string(msg.Purpose)).
		Str("code", msg.Code).
		Dur("expires_in", msg.ExpiresIn).
		Msg("OTP delivery (console mode)")
	return nil
}
