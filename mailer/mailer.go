// boatd/mailer/mailer.go

// Package mailer delivers repair-request notifications over SMTP. It
// implements models.Notifier; the handlers dispatch it in the background and
// swallow failures, so nothing here may panic or block forever.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/christianErichsen/Baatkompany/models"
)

// Mailer sends plain-text mail through a single SMTP endpoint.
type Mailer struct {
	addr     string // host:port
	username string
	password string
	from     string
	to       string
}

// New returns a configured Mailer, or nil when the SMTP address or the
// recipient is missing, in which case the notification feature is disabled.
func New(addr, username, password, from, to string) *Mailer {
	if addr == "" || to == "" {
		return nil
	}
	if from == "" {
		from = to
	}
	return &Mailer{addr: addr, username: username, password: password, from: from, to: to}
}

// RepairRequestReceived emails the workshop about a new service inquiry.
func (m *Mailer) RepairRequestReceived(ctx context.Context, req models.RepairRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.username != "" {
		host := m.addr
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", m.username, m.password, host)
	}

	// net/smtp has no context support; race the send against the deadline.
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(m.addr, auth, m.from, []string{m.to}, m.buildMessage(req))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Mailer) buildMessage(req models.RepairRequest) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", m.to)
	fmt.Fprintf(&b, "Subject: Ny serviceforespørsel – %s\r\n", req.Name)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Navn: %s\nTelefon: %s\nBåt: %s\n\nProblem:\n%s\n", req.Name, req.Phone, req.Boat, req.Issue)
	return []byte(b.String())
}
