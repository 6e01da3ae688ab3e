package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
app:
  env: development
  server:
    cors: "http://localhost:3000, ,https://jzmart.com"
modules:
  account:
    otp:
      ttl_minutes: 10
    session:
      ttl_days: 30
    avatar:
      max_size_bytes: 2097152
otp:
  secret: "c2VjcmV0"
`

func TestNewViperFromBytes(t *testing.T) {
	cfg, err := NewViperFromBytes("yaml", []byte(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.GetString("app.env"))
	assert.Equal(t, 10*time.Minute, cfg.GetMinute("modules.account.otp.ttl_minutes"))
	assert.Equal(t, 30*24*time.Hour, cfg.GetDay("modules.account.session.ttl_days"))
	assert.Equal(t, int64(2097152), cfg.GetInt64("modules.account.avatar.max_size_bytes"))
	assert.Equal(t, []string{"http://localhost:3000", "https://jzmart.com"}, cfg.GetArray("app.server.cors"))
	assert.Equal(t, []byte("secret"), cfg.GetBinary("otp.secret"))
	assert.Empty(t, cfg.GetArray("missing.key"))
	assert.NoError(t, cfg.Close())
}

func TestNewViperFromBytes_TypeRequired(t *testing.T) {
	_, err := NewViperFromBytes(" ", []byte(sampleYAML))
	assert.ErrorIs(t, err, ErrConfigTypeRequired)
}

func TestNewViper_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(sampleYAML), 0o600))

	t.Setenv("APP_ENV", "production")

	cfg, err := NewViper(file)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.GetString("app.env"))
	assert.Equal(t, 10*time.Minute, cfg.GetMinute("modules.account.otp.ttl_minutes"))
}
