package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST"     envDefault:"localhost"`
	DBPort     string `env:"DB_PORT"     envDefault:"5432"`
	DBUser     string `env:"DB_USER"     envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"     envDefault:"ordering"`
	DBSslMode  string `env:"DB_SSLMODE"  envDefault:"disable"`

	StanClusterID  string        `env:"STAN_CLUSTER_ID"  envDefault:"test-cluster"`
	StanClientID   string        `env:"STAN_CLIENT_ID"`
	NatsURL        string        `env:"NATS_URL"         envDefault:"nats://localhost:4222"`
	StanQueueGroup string        `env:"STAN_QUEUE_GROUP" envDefault:"ordering"`
	StanDurable    string        `env:"STAN_DURABLE"     envDefault:"ordering-durable"`
	StanAckWait    time.Duration `env:"STAN_ACK_WAIT"    envDefault:"30s"`
	HandlerTimeout time.Duration `env:"HANDLER_TIMEOUT"  envDefault:"10s"`

	GracePeriod               time.Duration `env:"GRACE_PERIOD"                 envDefault:"1m"`
	IdempotencyRetention      time.Duration `env:"IDEMPOTENCY_RETENTION"        envDefault:"168h"`
	IdempotencyWaitMaxRetries uint64        `env:"IDEMPOTENCY_WAIT_MAX_RETRIES" envDefault:"50"`
	OutboxBatchSize           int           `env:"OUTBOX_BATCH_SIZE"            envDefault:"100"`

	TradeGeckoBaseURL string        `env:"TRADEGECKO_BASE_URL" envDefault:"https://api.tradegecko.com"`
	TradeGeckoToken   string        `env:"TRADEGECKO_TOKEN"`
	TradeGeckoTimeout time.Duration `env:"TRADEGECKO_TIMEOUT"  envDefault:"10s"`

	OtelEnabled  bool   `env:"OTEL_ENABLED"  envDefault:"false"`
	OtelEndpoint string `env:"OTEL_ENDPOINT"`
}

// PaymentProcessorConfig configures the stand-in payment service.
type PaymentProcessorConfig struct {
	StanClusterID    string        `env:"STAN_CLUSTER_ID"   envDefault:"test-cluster"`
	StanClientID     string        `env:"STAN_CLIENT_ID"`
	NatsURL          string        `env:"NATS_URL"          envDefault:"nats://localhost:4222"`
	StanQueueGroup   string        `env:"STAN_QUEUE_GROUP"  envDefault:"payment-processor"`
	StanDurable      string        `env:"STAN_DURABLE"      envDefault:"payment-processor-durable"`
	StanAckWait      time.Duration `env:"STAN_ACK_WAIT"     envDefault:"30s"`
	HandlerTimeout   time.Duration `env:"HANDLER_TIMEOUT"   envDefault:"10s"`
	PaymentSucceeded bool          `env:"PAYMENT_SUCCEEDED" envDefault:"true"`
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig[T any](dotenvFiles ...string) (T, error) {
	var cfg T
	if err := loadDotenv(dotenvFiles...); err != nil {
		return cfg, err
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

func loadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
