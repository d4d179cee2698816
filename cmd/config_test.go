package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ordering/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("GRACE_PERIOD", "30s")

	cfg, err := cmd.LoadConfig[cmd.Config](filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.GracePeriod)
	assert.Equal(t, 168*time.Hour, cfg.IdempotencyRetention)
	assert.Equal(t, uint64(50), cfg.IdempotencyWaitMaxRetries)
	assert.False(t, cfg.OtelEnabled)
	assert.Equal(t, "https://api.tradegecko.com", cfg.TradeGeckoBaseURL)
	assert.Equal(t, 10*time.Second, cfg.TradeGeckoTimeout)
}

func TestLoadConfig_Dotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PAYMENT_SUCCEEDED=false\nSTAN_DURABLE=payments-test\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("PAYMENT_SUCCEEDED")
		_ = os.Unsetenv("STAN_DURABLE")
	})

	cfg, err := cmd.LoadConfig[cmd.PaymentProcessorConfig](path)

	require.NoError(t, err)
	assert.False(t, cfg.PaymentSucceeded)
	assert.Equal(t, "payments-test", cfg.StanDurable)
}

func TestLoadConfig_InvalidValue(t *testing.T) {
	t.Setenv("OUTBOX_BATCH_SIZE", "many")

	_, err := cmd.LoadConfig[cmd.Config](filepath.Join(t.TempDir(), "missing.env"))

	require.Error(t, err)
}

func TestConfig_DSN(t *testing.T) {
	cfg := cmd.Config{
		DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "ordering", DBSslMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=ordering sslmode=disable", cfg.DSN())
}
