package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"ordering/cmd"
	stanin "ordering/internal/adapters/in/natsstan"
	"ordering/internal/adapters/out/natsstan"
	"ordering/internal/paymentprocessor"
	"ordering/internal/pkg/clock"

	"github.com/labstack/gommon/log"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	config, err := cmd.LoadConfig[cmd.PaymentProcessorConfig]()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := natsstan.Connect(config.StanClusterID, config.StanClientID, config.NatsURL)
	if err != nil {
		log.Fatalf("Error connecting to NATS Streaming: %v", err)
	}
	defer conn.Close()

	processor := paymentprocessor.NewProcessor(natsstan.NewPublisher(conn), config.PaymentSucceeded, clock.NewSystem(), logger)
	consumer := stanin.NewConsumer(conn, processor, stanin.Config{
		QueueGroup:     config.StanQueueGroup,
		Durable:        config.StanDurable,
		AckWait:        config.StanAckWait,
		HandlerTimeout: config.HandlerTimeout,
	}, logger)
	if err = consumer.Start(ctx); err != nil {
		log.Fatalf("Error subscribing: %v", err)
	}
	defer func() {
		_ = consumer.Close()
	}()

	logger.Info("Payment processor running", "payment_succeeded", config.PaymentSucceeded)
	<-ctx.Done()
}
