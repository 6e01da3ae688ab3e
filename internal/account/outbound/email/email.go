package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/jzmart/account/internal/pkg/instrument"
	"github.com/jzmart/account/internal/pkg/mail"
	"go.opentelemetry.io/otel/codes"
)

const otpSubject = "Your JZ Mart OTP Code"

var otpTemplate = template.Must(template.New("otp").Parse(`<div style="max-width: 600px; margin: auto; font-family: 'Poppins', sans-serif; color: #333; background: #f7f7f7; padding: 20px; border-radius: 10px;">
  <div style="background: #fff; padding: 20px; border-radius: 10px; text-align: center;">
    <h2 style="color: #C9AF2F; font-family: 'Inter', sans-serif;">Your OTP Code</h2>
    <p style="font-size: 16px;">Use the following OTP to complete your authentication:</p>
    <h1 style="background: #C9AF2F; color: #fff; padding: 10px 20px; display: inline-block; border-radius: 5px; font-family: 'Inter', sans-serif;">{{.Code}}</h1>
    <p style="font-size: 14px; color: #777;">This OTP will expire in {{.Minutes}} minutes.</p>
    <hr style="margin: 20px 0; border: 1px solid #C9AF2F;">
    <p style="font-size: 14px;">If you did not request this OTP, please ignore this email.</p>
    <p style="font-size: 14px;">Need help? Contact us at
      <a href="mailto:{{.Support}}" style="color: #C9AF2F; text-decoration: none;">{{.Support}}</a>
    </p>
  </div>
  <p style="text-align: center; font-size: 12px; color: #999;">&copy; {{.Year}} JZ Mart. All rights reserved.</p>
</div>`))

type clocker interface {
	Now() time.Time
}

type Config struct {
	// TTL is shown to the user as the code lifetime.
	TTL time.Duration
	// SupportAddress is the contact address in the footer.
	SupportAddress string
}

type Mail struct {
	client  mail.Mail
	ins     instrument.Instrumentation
	clock   clocker
	minutes int
	support string
}

func New(client mail.Mail, ins instrument.Instrumentation, clock clocker, cfg Config) *Mail {
	support := cfg.SupportAddress
	if support == "" {
		support = "support@jzmart.com"
	}

	return &Mail{
		client:  client,
		ins:     ins,
		clock:   clock,
		minutes: int(cfg.TTL / time.Minute),
		support: support,
	}
}

// SendOTP mails the plaintext code to email.
func (m *Mail) SendOTP(ctx context.Context, email, code string) error {
	ctx, span := m.ins.Tracer("account.outbound.email").Start(ctx, "SendOTP")
	defer span.End()

	var body bytes.Buffer
	err := otpTemplate.Execute(&body, map[string]any{
		"Code":    code,
		"Minutes": m.minutes,
		"Support": m.support,
		"Year":    m.clock.Now().Year(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("render otp email: %w", err)
	}

	err = m.client.Send(ctx, mail.Message{
		To:       []string{email},
		Subject:  otpSubject,
		TextBody: fmt.Sprintf("Your JZ Mart OTP code is %s. It expires in %d minutes.", code, m.minutes),
		HTMLBody: body.String(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
