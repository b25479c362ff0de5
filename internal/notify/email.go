package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
)

// EmailConfig holds SMTP delivery settings. The transport is implicit TLS
// (SMTPS), the way Gmail's port 465 works.
type EmailConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Recipients []string
}

// EmailChannel delivers alerts as multipart text+HTML email over SMTPS.
type EmailChannel struct {
	cfg EmailConfig
}

// NewEmailChannel validates the config and creates the channel. Missing
// credentials or recipients are configuration errors and fail construction.
func NewEmailChannel(cfg EmailConfig) (*EmailChannel, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("email channel requires username and password")
	}
	if len(cfg.Recipients) == 0 {
		return nil, errors.New("email channel requires at least one recipient")
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &EmailChannel{cfg: cfg}, nil
}

// Name implements Channel.
func (c *EmailChannel) Name() string { return "email" }

// Send implements Channel. Any failure before the server accepts the full
// message is returned so the caller can leave the ledger untouched.
func (c *EmailChannel) Send(ctx context.Context, msg Message) error {
	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: c.cfg.Host}}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial smtp %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, c.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(c.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range c.cfg.Recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(c.buildMIME(msg)); err != nil {
		return fmt.Errorf("smtp write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close body: %w", err)
	}

	return client.Quit()
}

// buildMIME assembles a multipart/alternative message: plain-text fallback
// first, HTML second, both UTF-8. The subject is Q-encoded because it
// carries non-ASCII glyphs.
func (c *EmailChannel) buildMIME(msg Message) []byte {
	const boundary = "aurorawatch-boundary"

	var b strings.Builder
	b.WriteString("From: " + c.cfg.From + "\r\n")
	b.WriteString("To: " + strings.Join(c.cfg.Recipients, ", ") + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: multipart/alternative; boundary=" + boundary + "\r\n")
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	b.WriteString(msg.TextBody)
	b.WriteString("\r\n")

	if msg.HTMLBody != "" {
		b.WriteString("--" + boundary + "\r\n")
		b.WriteString("Content-Type: text/html; charset=utf-8\r\n")
		b.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
		b.WriteString(msg.HTMLBody)
		b.WriteString("\r\n")
	}

	b.WriteString("--" + boundary + "--\r\n")
	return []byte(b.String())
}

// ParseRecipients splits a comma-separated recipient list, trimming blanks.
func ParseRecipients(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
