// Package mailer delivers transactional email. The smtp transport
// sends through a configured relay; the log transport writes messages
// to the service log for development environments.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer sends plain-text email messages.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// New creates a mailer from configuration.
func New(config *Config, logger *slog.Logger) (Mailer, error) {
	log := logger.With("system", "mailer")

	switch config.Transport {
	case TransportSMTP:
		return &smtpMailer{config: config, logger: log}, nil
	case TransportLog:
		log.Info("mailer started", "transport", TransportLog)
		return &logMailer{logger: log}, nil
	default:
		return nil, fmt.Errorf("unknown mailer transport: %s", config.Transport)
	}
}

type smtpMailer struct {
	config *Config
	logger *slog.Logger
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", m.config.From),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	m.logger.Debug("mail sent", "to", to, "subject", subject)
	return nil
}

type logMailer struct {
	logger *slog.Logger
}

func (m *logMailer) Send(ctx context.Context, to, subject, body string) error {
	m.logger.Info("mail delivered to log",
		"to", to,
		"subject", subject,
		"body", body,
	)
	return nil
}
