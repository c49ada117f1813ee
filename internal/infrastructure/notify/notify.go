// Package notify tells the site owner about new contact messages and hire
// requests.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/portfolio/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when mail is enabled without a host or recipient
var ErrNotConfigured = errors.New("mail notifier is not configured")

// sendFunc matches smtp.SendMail
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier sends plain text mail through an SMTP relay
type SMTPNotifier struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	send sendFunc
	now  func() time.Time
}

// NewSMTPNotifier creates a notifier from the mail config
func NewSMTPNotifier(cfg config.MailConfig) (*SMTPNotifier, error) {
	if cfg.Host == "" || cfg.To == "" {
		return nil, ErrNotConfigured
	}
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTPNotifier{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		auth: auth,
		from: from,
		to:   splitRecipients(cfg.To),
		send: smtp.SendMail,
		now:  time.Now,
	}, nil
}

// Notify sends one message. smtp.SendMail takes no context, so a cancelled
// ctx is only honoured before sending starts.
func (n *SMTPNotifier) Notify(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.send(n.addr, n.auth, n.from, n.to, n.message(subject, body)); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

func (n *SMTPNotifier) message(subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + n.from + "\r\n")
	b.WriteString("To: " + strings.Join(n.to, ", ") + "\r\n")
	b.WriteString("Subject: " + headerSafe(subject) + "\r\n")
	b.WriteString("Date: " + n.now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

// headerSafe drops line breaks so visitor input cannot inject headers
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

func splitRecipients(s string) []string {
	var out []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// LogNotifier writes notifications to the log. Used when mail is disabled.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-only notifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs the subject
func (n *LogNotifier) Notify(_ context.Context, subject, _ string) error {
	n.logger.Info("New inbox entry", zap.String("subject", subject))
	return nil
}

// Notifier is implemented by SMTPNotifier and LogNotifier
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

// New picks SMTP when mail is enabled and configured, and logging otherwise
func New(cfg config.MailConfig, logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		return NewLogNotifier(logger)
	}
	n, err := NewSMTPNotifier(cfg)
	if err != nil {
		logger.Warn("Mail notifications disabled", zap.Error(err))
		return NewLogNotifier(logger)
	}
	logger.Info("Mail notifications enabled", zap.String("smtp", n.addr))
	return n
}
