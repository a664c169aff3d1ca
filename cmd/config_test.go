package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for key := range defaults {
		if value, ok := os.LookupEnv(key); ok {
			require.NoError(t, os.Unsetenv(key))
			t.Cleanup(func() { _ = os.Setenv(key, value) })
		} else {
			t.Cleanup(func() { _ = os.Unsetenv(key) })
		}
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "disable", cfg.DBSslMode)
	assert.Equal(t, "*/5 * * * * *", cfg.OutboxRelaySchedule)
	assert.Equal(t, 100, cfg.OutboxBatchSize)
	assert.Equal(t, 5, cfg.IdentifierMaxAttempts)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"DB_HOST=db.internal\nOUTBOX_BATCH_SIZE=25\nSHUTDOWN_TIMEOUT=1m30s\nHTTP_PORT=9000\n"), 0o600))
	t.Setenv("HTTP_PORT", "7000")

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, 25, cfg.OutboxBatchSize)
	assert.Equal(t, 90*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "7000", cfg.HTTPPort)
}

func TestLoadConfig_RejectsNonPositiveLimits(t *testing.T) {
	clearEnv(t)
	t.Setenv("OUTBOX_BATCH_SIZE", "0")
	t.Setenv("IDENTIFIER_MAX_ATTEMPTS", "-1")

	_, err := LoadConfig("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "OUTBOX_BATCH_SIZE")
	assert.Contains(t, err.Error(), "IDENTIFIER_MAX_ATTEMPTS")
}

func TestConfig_DSN(t *testing.T) {
	cfg := Config{DBHost: "h", DBPort: "5433", DBUser: "u", DBPassword: "p", DBName: "n", DBSslMode: "require"}

	assert.Equal(t, "host=h port=5433 user=u password=p dbname=n sslmode=require", cfg.DSN())
}

func TestNewLogger(t *testing.T) {
	_, err := NewLogger(os.Stdout, "debug")
	require.NoError(t, err)

	_, err = NewLogger(os.Stdout, "loud")
	assert.Error(t, err)
}
