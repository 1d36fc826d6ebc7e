package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/oyLeonardo/2025.1-T01-LFBagYourDreams/config"
)

// Mailer sends buyer notifications. Sending is best-effort everywhere it is
// used: a failed email never fails the operation that triggered it.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTP sends plain text mail through a single SMTP relay.
type SMTP struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTP(cfg config.SMTPConfig) *SMTP {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTP{
		addr: cfg.Host + ":" + cfg.Port,
		from: cfg.From,
		auth: auth,
	}
}

func (m *SMTP) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)
	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
}

// Disabled is used when no SMTP relay is configured.
type Disabled struct{}

func (Disabled) Send(string, string, string) error { return nil }

// FromConfig picks the SMTP sender when configured, otherwise a no-op.
func FromConfig(cfg config.SMTPConfig) Mailer {
	if cfg.Host == "" {
		return Disabled{}
	}
	return NewSMTP(cfg)
}
