package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_MasksAndTags(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, &Config{
		ServiceName: "account",
		MaskFields:  []string{"password", " OTP "},
	}, nil))

	ctx := SetCorrelationID(context.Background(), "cid-1")
	logger.InfoContext(ctx, "signup",
		"password", "secret",
		"body", `{"email":"a@x.com","otp":"123456"}`,
		"headers", map[string][]string{"Cookie": {"token=abc"}, "Otp": {"1"}},
	)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "***", line["password"])
	assert.JSONEq(t, `{"email":"a@x.com","otp":"***"}`, line["body"].(string))
	assert.Equal(t, map[string]any{"Cookie": "token=abc", "Otp": "***"}, line["headers"])
	assert.Equal(t, "cid-1", line["_cID"])
	assert.Equal(t, "account", line["service"])
	assert.Equal(t, "INFO", line["severity"])
	assert.Contains(t, line, "ts")
}

func TestHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, &Config{LogLevel: "warn"}, nil))

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.NotContains(t, buf.String(), `"service"`)
}

func TestNew_Disabled(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	ins, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)
	assert.NotNil(t, ins.Tracer("x"))
	assert.NoError(t, ins.Shutdown(context.Background()))
	assert.Empty(t, GetCorrelationID(context.Background()))
}
