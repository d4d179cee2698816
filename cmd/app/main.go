package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordering/cmd"
	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/natsstan"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/pkg/clock"
	"ordering/internal/pkg/telemetry"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config, err := cmd.LoadConfig[cmd.Config]()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "ordering", telemetry.Config{
		Enabled:  config.OtelEnabled,
		Endpoint: config.OtelEndpoint,
	})
	if err != nil {
		log.Fatalf("Error setting up tracing: %v", err)
	}
	defer func() {
		_ = shutdownTracing(context.Background())
	}()

	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	conn, err := natsstan.Connect(config.StanClusterID, config.StanClientID, config.NatsURL)
	if err != nil {
		log.Fatalf("Error connecting to NATS Streaming: %v", err)
	}
	defer conn.Close()

	app := cmd.NewCompositionRoot(config, gormDB, natsstan.NewPublisher(conn), clock.NewSystem(), logger)

	consumer := app.CreateConsumer(conn)
	if err = consumer.Start(ctx); err != nil {
		log.Fatalf("Error subscribing to integration events: %v", err)
	}
	defer func() {
		_ = consumer.Close()
	}()

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("Error creating jobs: %v", err)
	}
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	if err = runWebServer(ctx, app, config.HTTPPort, logger); err != nil {
		logger.Error("Web server stopped", "error", err)
	}
}

func runWebServer(ctx context.Context, app cmd.CompositionRoot, port string, logger *slog.Logger) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.InfoContext(c.Request().Context(), "Request handled",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	doc, err := httpin.LoadOpenAPI()
	if err != nil {
		return err
	}
	server, err := app.CreateServer()
	if err != nil {
		return err
	}
	if err = server.Register(e, doc); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
