package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"court-watcher/core/config"
)

// SendHTMLEmail delivers a single HTML email over SMTP.
func SendHTMLEmail(cfg config.SMTPConfig, to string, subject string, bodyHTML string) error {
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", to))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(bodyHTML)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(sb.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
