package email

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// Service defines the mail-sending collaborator. A single instance is
// constructed at startup and shared by all requests.
type Service interface {
	SendOTPEmail(toEmail, otp string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

type smtpService struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewService creates a new mail service
func NewService(config SMTPConfig, logger zerolog.Logger) Service {
	return &smtpService{config: config, logger: logger}
}

// SendOTPEmail sends a one-time password to the recipient. When SMTP
// credentials are not configured the code is logged instead, so the flow
// remains testable in development.
func (s *smtpService) SendOTPEmail(toEmail, otp string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("otp", otp).
			Msg("SMTP credentials not configured - OTP email not sent. Use the code above for testing.")
		return nil
	}

	subject := "Your OTP Code"
	body := fmt.Sprintf("Your One-Time Password is: %s. It is valid for 5 minutes.", otp)

	msg := []byte(fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.config.FromName, s.config.FromEmail, toEmail, subject, body))

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{toEmail}, msg); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send OTP email")
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	s.logger.Info().Str("toEmail", toEmail).Msg("OTP email sent")
	return nil
}
