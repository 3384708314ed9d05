package notification

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/sharath018/secret-santa-backend/config"
)

// Channel delivers one rendered message to a set of recipients.
type Channel interface {
	Send(to []string, subject string, body string) error
}

// EmailSender implements Channel interface using SMTP
type EmailSender struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
	FromAddr string
}

func NewEmailSender(cfg *config.Config) *EmailSender {
	from := cfg.SMTPFromEmail
	if from == "" {
		from = cfg.SMTPUsername
	}
	return &EmailSender{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		FromName: cfg.SMTPFromName,
		FromAddr: from,
	}
}

// Configured reports whether an SMTP host and credentials are set.
func (e *EmailSender) Configured() bool {
	return e.Host != "" && e.Username != "" && e.Password != ""
}

// Send sends an HTML email. Without SMTP configuration it only logs.
func (e *EmailSender) Send(to []string, subject string, body string) error {
	if !e.Configured() {
		log.Printf("⚠️ SMTP not configured. Email %q to %v not sent.", subject, to)
		return nil
	}

	headers := []string{
		"From: " + fmt.Sprintf("%s <%s>", e.FromName, e.FromAddr),
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
	}
	message := []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + body)

	addr := fmt.Sprintf("%s:%s", e.Host, e.Port)
	log.Printf("📤 Sending email to %v via %s", to, addr)

	if err := e.sendMailWithTLS(addr, to, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// sendMailWithTLS dials plain SMTP and upgrades with STARTTLS before auth.
func (e *EmailSender) sendMailWithTLS(addr string, to []string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	if err = client.StartTLS(&tls.Config{ServerName: e.Host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", e.Username, e.Password, e.Host)
	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err = client.Mail(e.FromAddr); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, recipient := range to {
		if err = client.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", recipient, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = writer.Write(message); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = writer.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	return client.Quit()
}
