// Package mailer is the outbound-mail side channel. The client is built
// once at startup and injected; there is no lazily-initialized global
// transport, so there is nothing to race on first use.
package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/google/uuid"
)

// Mailer sends plain-text mail over SMTP.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	host string
	port string
	from string
	auth smtp.Auth
}

// New creates an SMTP-backed Mailer. user may be empty for unauthenticated
// relays (local development).
func New(host, port, user, password, from string) Mailer {
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, password, host)
	}
	return &smtpMailer{host: host, port: port, from: from, auth: auth}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("Message-ID: <%s@memoryhub>\r\nFrom: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		uuid.NewString(), m.from, to, subject, body)
	if err := smtp.SendMail(m.host+":"+m.port, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}

// Noop returns a Mailer that discards everything. Used when SMTP is not
// configured so callers never branch on a nil client.
func Noop() Mailer {
	return noopMailer{}
}

type noopMailer struct{}

func (noopMailer) Send(string, string, string) error { return nil }
