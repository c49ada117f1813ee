package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestNotifier(t *testing.T, sendErr error) (*SMTPNotifier, *[]sentMail) {
	t.Helper()
	n, err := NewSMTPNotifier(config.MailConfig{
		Enabled:  true,
		Host:     "smtp.example.com",
		Username: "site@example.com",
		Password: "secret",
		To:       "owner@example.com, ops@example.com",
	})
	require.NoError(t, err)

	var sent []sentMail
	n.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
		return sendErr
	}
	n.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return n, &sent
}

func TestSMTPNotifier_Notify(t *testing.T) {
	n, sent := newTestNotifier(t, nil)

	err := n.Notify(context.Background(), "New contact message from Ana", "From: Ana\nHello")
	require.NoError(t, err)
	require.Len(t, *sent, 1)

	mail := (*sent)[0]
	assert.Equal(t, "smtp.example.com:587", mail.addr)
	assert.Equal(t, "site@example.com", mail.from)
	assert.Equal(t, []string{"owner@example.com", "ops@example.com"}, mail.to)
	assert.Contains(t, mail.msg, "Subject: New contact message from Ana\r\n")
	assert.True(t, strings.HasSuffix(mail.msg, "\r\n\r\nFrom: Ana\r\nHello"))
}

func TestSMTPNotifier_SubjectCannotInjectHeaders(t *testing.T) {
	n, sent := newTestNotifier(t, nil)

	require.NoError(t, n.Notify(context.Background(), "Hi\r\nBcc: evil@example.com", "body"))
	assert.NotContains(t, (*sent)[0].msg, "\r\nBcc:")
}

func TestSMTPNotifier_Errors(t *testing.T) {
	n, _ := newTestNotifier(t, errors.New("relay refused"))
	err := n.Notify(context.Background(), "s", "b")
	assert.ErrorContains(t, err, "relay refused")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, sent := newTestNotifier(t, nil)
	assert.ErrorIs(t, n.Notify(ctx, "s", "b"), context.Canceled)
	assert.Empty(t, *sent)
}

func TestNewSMTPNotifier_RequiresHostAndRecipient(t *testing.T) {
	_, err := NewSMTPNotifier(config.MailConfig{Host: "smtp.example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNew(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	assert.IsType(t, &LogNotifier{}, New(config.MailConfig{}, logger))
	assert.IsType(t, &LogNotifier{}, New(config.MailConfig{Enabled: true}, logger))
	assert.Equal(t, 1, logs.FilterMessage("Mail notifications disabled").Len())
	assert.IsType(t, &SMTPNotifier{}, New(config.MailConfig{Enabled: true, Host: "h", To: "o@example.com"}, logger))
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	require.NoError(t, n.Notify(context.Background(), "New hire request from Bo", "details"))
	entries := logs.FilterMessage("New inbox entry").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "New hire request from Bo", entries[0].ContextMap()["subject"])
}
