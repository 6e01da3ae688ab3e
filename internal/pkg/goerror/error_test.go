package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid input", err: NewInvalidInput(nil, "email", "email is required"), want: http.StatusBadRequest},
		{name: "invalid format", err: NewInvalidFormat(), want: http.StatusBadRequest},
		{name: "not found", err: NewBusiness("User not found.", CodeNotFound), want: http.StatusNotFound},
		{name: "conflict", err: NewBusiness("User already exists.", CodeConflict), want: http.StatusConflict},
		{name: "unauthorized", err: NewBusiness("Invalid OTP", CodeUnauthorized), want: http.StatusUnauthorized},
		{name: "too many", err: NewBusiness("busy", CodeTooManyRequest), want: http.StatusTooManyRequests},
		{name: "server", err: NewServer(errors.New("boom")), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gerr *Error
			require.ErrorAs(t, tt.err, &gerr)
			assert.Equal(t, tt.want, gerr.StatusCode())
		})
	}
}

func TestNewServer(t *testing.T) {
	cause := errors.New("db down")
	err := NewServer(cause)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error", gerr.Msg())
	assert.Equal(t, "db down", gerr.Error())
	assert.Equal(t, TypeServer, gerr.Type())
	assert.NotEmpty(t, gerr.Stack())
}

func TestNewInvalidInput(t *testing.T) {
	t.Run("fields", func(t *testing.T) {
		var gerr *Error
		require.ErrorAs(t, NewInvalidInput(nil, "avatar", "avatar file is required"), &gerr)
		assert.Equal(t, map[string]string{"avatar": "avatar file is required"}, gerr.Fields())
		assert.Equal(t, CodeInvalidInput, gerr.Code())
	})

	t.Run("odd pairs become format error", func(t *testing.T) {
		var gerr *Error
		require.ErrorAs(t, NewInvalidInput(nil, "avatar"), &gerr)
		assert.Equal(t, CodeInvalidFormat, gerr.Code())
	})
}
