package email

import (
	"context"
	"fmt"
	"net/smtp"

	"microblog-backend/internal/domains/auth"
	"microblog-backend/pkg/logger"
)

type smtpMailer struct {
	smtpAddr string
	smtpFrom string
}

// NewSMTPMailer sends codes through a plain SMTP relay (a local
// mailcatcher in development).
func NewSMTPMailer(smtpHost, smtpPort, from string) Mailer {
	return &smtpMailer{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpMailer) SendOTP(ctx context.Context, msg OTPMessage) error {
	subject := "Your login code"
	if msg.Purpose == auth.PurposeSignup {
		subject = "Your signup code"
	}

	body := fmt.Sprintf(`Hi,

Your verification code is:

    %s

It expires in %s.

If you did not request this code, you can ignore this email.`,
		msg.Code, msg.ExpiresIn)

	raw := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, msg.Email, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{msg.Email}, raw); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        msg.Email,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("send otp email: %w", err)
	}

	return nil
}
