package mail

import (
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// ErrSMTPHostPortRequired is returned when Host or Port is missing.
var ErrSMTPHostPortRequired = errors.New("mail: smtp host and port are required")

// SMTPConfig configures the SMTP sender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the default sender address.
	From string
	// Timeout bounds dialing when the context has no deadline.
	Timeout time.Duration
}

// SMTP sends mail over net/smtp, upgrading with STARTTLS when offered.
type SMTP struct {
	addr        string
	host        string
	defaultFrom string
	auth        smtp.Auth
	dialer      *net.Dialer
}

// NewSMTP validates cfg and returns a sender.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrSMTPHostPortRequired
	}

	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &SMTP{
		addr:        net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		host:        cfg.Host,
		defaultFrom: cfg.From,
		auth:        auth,
		dialer:      &net.Dialer{Timeout: timeout},
	}, nil
}

// Send delivers msg. The context deadline, if any, bounds the whole session.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	from, err := resolveSender(msg, s.defaultFrom)
	if err != nil {
		return err
	}

	raw := compose(from, msg, boundary())

	conn, err := s.dialer.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("mail: dial %s: %w", s.addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("mail: handshake: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("mail: starttls: %w", err)
		}
	}

	if s.auth != nil {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(s.auth); err != nil {
				return fmt.Errorf("mail: auth: %w", err)
			}
		}
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("mail: MAIL FROM: %w", err)
	}
	for _, rcpt := range msg.Recipients() {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("mail: RCPT TO %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("mail: DATA: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("mail: write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("mail: close body: %w", err)
	}

	return client.Quit()
}

// Close is a no-op; every Send opens its own connection.
func (*SMTP) Close() error {
	return nil
}

func compose(from string, msg Message, boundary string) []byte {
	var sb strings.Builder

	header := func(k, v string) {
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(v)
		sb.WriteString("\r\n")
	}

	header("From", from)
	header("To", strings.Join(msg.To, ", "))
	if len(msg.Cc) > 0 {
		header("Cc", strings.Join(msg.Cc, ", "))
	}
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("MIME-Version", "1.0")

	switch {
	case msg.HTMLBody != "" && msg.TextBody != "":
		header("Content-Type", "multipart/alternative; boundary="+boundary)
		sb.WriteString("\r\n")
		part := func(contentType, body string) {
			fmt.Fprintf(&sb, "--%s\r\nContent-Type: %s; charset=UTF-8\r\n\r\n%s\r\n", boundary, contentType, body)
		}
		part("text/plain", msg.TextBody)
		part("text/html", msg.HTMLBody)
		fmt.Fprintf(&sb, "--%s--\r\n", boundary)
	case msg.HTMLBody != "":
		header("Content-Type", "text/html; charset=UTF-8")
		sb.WriteString("\r\n")
		sb.WriteString(msg.HTMLBody)
	default:
		header("Content-Type", "text/plain; charset=UTF-8")
		sb.WriteString("\r\n")
		sb.WriteString(msg.TextBody)
	}

	return []byte(sb.String())
}

func boundary() string {
	var b [12]byte
	_, _ = rand.Read(b[:])
	return "passcode-" + hex.EncodeToString(b[:])
}
