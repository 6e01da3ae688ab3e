package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jzmart/account/internal/pkg/instrument"
	"github.com/jzmart/account/internal/pkg/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMail struct {
	msgs []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	f.msgs = append(f.msgs, msg)
	return f.err
}

func (f *fakeMail) Close() error { return nil }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestMail_SendOTP(t *testing.T) {
	// Arrange
	client := &fakeMail{}
	m := New(client, instrument.NewNoop(), fixedClock{now: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}, Config{TTL: 10 * time.Minute})

	// Act
	err := m.SendOTP(context.Background(), "a@x.com", "012345")

	// Assert
	require.NoError(t, err)
	require.Len(t, client.msgs, 1)
	msg := client.msgs[0]
	assert.Equal(t, []string{"a@x.com"}, msg.To)
	assert.Equal(t, "Your JZ Mart OTP Code", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "012345")
	assert.Contains(t, msg.HTMLBody, "This OTP will expire in 10 minutes.")
	assert.Contains(t, msg.HTMLBody, "mailto:support@jzmart.com")
	assert.Contains(t, msg.HTMLBody, "2026 JZ Mart")
	assert.Contains(t, msg.TextBody, "012345")
}

func TestMail_SendOTP_Error(t *testing.T) {
	client := &fakeMail{err: errors.New("smtp: 421")}
	m := New(client, instrument.NewNoop(), fixedClock{now: time.Now()}, Config{TTL: 5 * time.Minute, SupportAddress: "help@x.com"})

	err := m.SendOTP(context.Background(), "a@x.com", "999999")

	require.Error(t, err)
	assert.Contains(t, client.msgs[0].HTMLBody, "help@x.com")
	assert.Contains(t, client.msgs[0].HTMLBody, "5 minutes")
}
