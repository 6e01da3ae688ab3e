package strcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToLowerSnake(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"Email":       "email",
		"OTP":         "otp",
		"OldPassword": "old_password",
		"AvatarURL":   "avatar_url",
		"HTTPServer":  "http_server",
		"UserID":      "user_id",
		"Address2":    "address2",
		"Line2Name":   "line2_name",
	}

	for in, want := range tests {
		assert.Equal(t, want, ToLowerSnake(in), in)
	}
}
