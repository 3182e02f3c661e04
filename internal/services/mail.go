package services

import (
	"fmt"
	"net/smtp"

	"github.com/CHH01/runipet/internal/config"
)

// SendVerificationEmail delivers a 6-digit verification code over SMTP.
// Uses STARTTLS via the standard library; the code itself lives in Redis
// with a TTL, so delivery failure leaves no state behind.
func SendVerificationEmail(to, code string) error {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" {
		return fmt.Errorf("smtp not configured")
	}

	addr := fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort)
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)

	msg := []byte("From: " + cfg.SMTPUser + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: Runipet email verification\r\n" +
		"\r\n" +
		"Your Runipet verification code: " + code + "\r\n")

	return smtp.SendMail(addr, auth, cfg.SMTPUser, []string{to}, msg)
}
