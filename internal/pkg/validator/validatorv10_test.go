package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupPayload struct {
	FullName string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
	OTP      string `validate:"required,otp"`
	Purpose  string `validate:"required,oneof=REGISTER FORGOT_PASSWORD"`
}

func validPayload() signupPayload {
	return signupPayload{
		FullName: "Jane",
		Email:    "jane@example.com",
		Password: "secret123",
		OTP:      "042917",
		Purpose:  "REGISTER",
	}
}

func TestV10Validator_Validate(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(p *signupPayload)
		wantKey string
		wantMsg string
	}{
		{name: "valid", mutate: func(*signupPayload) {}},
		{
			name:    "missing name uses snake case key",
			mutate:  func(p *signupPayload) { p.FullName = "" },
			wantKey: "full_name",
			wantMsg: "FullName is a required field",
		},
		{
			name:    "bad email",
			mutate:  func(p *signupPayload) { p.Email = "not-an-email" },
			wantKey: "email",
			wantMsg: "Email must be a valid email address",
		},
		{
			name:    "short password",
			mutate:  func(p *signupPayload) { p.Password = "abc" },
			wantKey: "password",
			wantMsg: "Password must be 6-72 characters long",
		},
		{
			name:    "password over 72 bytes",
			mutate:  func(p *signupPayload) { p.Password = strings.Repeat("a", 73) },
			wantKey: "password",
			wantMsg: "Password must be 6-72 characters long",
		},
		{
			name:    "otp with letters",
			mutate:  func(p *signupPayload) { p.OTP = "12a456" },
			wantKey: "otp",
			wantMsg: "OTP must be a 6 digit code",
		},
		{
			name:    "otp too short",
			mutate:  func(p *signupPayload) { p.OTP = "12345" },
			wantKey: "otp",
			wantMsg: "OTP must be a 6 digit code",
		},
		{
			name:    "unknown purpose",
			mutate:  func(p *signupPayload) { p.Purpose = "LOGIN" },
			wantKey: "purpose",
			wantMsg: "Purpose must be one of [REGISTER FORGOT_PASSWORD]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(&p)

			err := v.Validate(p)

			if tt.wantKey == "" {
				assert.NoError(t, err)
				return
			}

			var verr V10ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Len(t, verr.Values(), 1)
			assert.Equal(t, tt.wantMsg, verr.Values()[tt.wantKey])
		})
	}
}

func TestV10ValidationError_Error(t *testing.T) {
	assert.Equal(t, "validation error", V10ValidationError{}.Error())
	assert.JSONEq(t, `{"email":"Email is a required field"}`, V10ValidationError{"email": "Email is a required field"}.Error())
}
