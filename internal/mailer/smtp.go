package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// SMTPMailer delivers emails over a plain SMTP transport.
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// NewSMTP creates an SMTPMailer. Username may be empty for transports
// that accept unauthenticated mail (e.g. a local relay in development).
func NewSMTP(addr, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, authHost(addr))
	}

	return &SMTPMailer{
		addr: addr,
		auth: auth,
		from: from,
	}
}

// authHost derives the bare host PlainAuth expects from a host:port
// address, including IPv6 literals like [::1]:587.
func authHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

// SendVerificationLink emails the verification URL to a new user.
func (m *SMTPMailer) SendVerificationLink(ctx context.Context, to string, data VerificationData) error {
	return m.send(ctx, kindVerificationLink, to, data)
}

// SendTipSent emails the "tip sent" notice to the sender.
func (m *SMTPMailer) SendTipSent(ctx context.Context, to string, data TipData) error {
	return m.send(ctx, kindTipSent, to, data)
}

// SendTipReceived emails the "tip received" notice to the recipient.
func (m *SMTPMailer) SendTipReceived(ctx context.Context, to string, data TipData) error {
	return m.send(ctx, kindTipReceived, to, data)
}

func (m *SMTPMailer) send(ctx context.Context, kind, to string, data any) error {
	subject, body, err := render(kind, data)
	if err != nil {
		return err
	}

	msg := buildMessage(m.from, to, subject, body)

	// net/smtp has no context support; run the send in a goroutine so the
	// caller's deadline is still honored.
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(m.addr, m.auth, m.from, []string{to}, msg)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send %s to %s: %w", kind, to, err)
		}
		return nil
	}
}

// buildMessage assembles an RFC 5322 plain-text message.
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
