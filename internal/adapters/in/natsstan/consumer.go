// Package natsstan feeds inbound integration events from NATS Streaming to
// the reactor through durable queue subscriptions with manual acks.
package natsstan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	stan "github.com/nats-io/stan.go"
)

// Subscriber is the part of stan.Conn the consumer needs.
type Subscriber interface {
	QueueSubscribe(subject, qgroup string, cb stan.MsgHandler, opts ...stan.SubscriptionOption) (stan.Subscription, error)
}

// Reactor handles one message. A nil error acknowledges it.
type Reactor interface {
	React(ctx context.Context, topic string, data []byte) error
	Topics() []string
}

type Config struct {
	QueueGroup     string
	Durable        string
	AckWait        time.Duration
	HandlerTimeout time.Duration
}

// Consumer subscribes the reactor to every topic it handles. A message is
// acknowledged only after the reactor returned nil; otherwise the server
// redelivers it after AckWait.
type Consumer struct {
	conn    Subscriber
	reactor Reactor
	config  Config
	logger  *slog.Logger

	subscriptions []stan.Subscription
}

func NewConsumer(conn Subscriber, reactor Reactor, config Config, logger *slog.Logger) *Consumer {
	return &Consumer{
		conn:    conn,
		reactor: reactor,
		config:  config,
		logger:  logger.With("component", "stan-consumer"),
	}
}

// Start subscribes to every topic of the reactor. ctx bounds every handler run.
func (c *Consumer) Start(ctx context.Context) error {
	for _, topic := range c.reactor.Topics() {
		sub, err := c.conn.QueueSubscribe(topic, c.config.QueueGroup,
			func(m *stan.Msg) {
				c.Process(ctx, m.Subject, m.Data, m.Ack)
			},
			stan.DurableName(c.config.Durable),
			stan.SetManualAckMode(),
			stan.AckWait(c.config.AckWait),
			stan.DeliverAllAvailable(),
		)
		if err != nil {
			return errors.Join(fmt.Errorf("failed to subscribe to %s: %w", topic, err), c.Close())
		}
		c.subscriptions = append(c.subscriptions, sub)
		c.logger.Info("Subscribed", "topic", topic, "queue_group", c.config.QueueGroup)
	}
	return nil
}

// Process runs the reactor on one message and acks it on success.
func (c *Consumer) Process(ctx context.Context, subject string, data []byte, ack func() error) {
	hCtx, cancel := context.WithTimeout(ctx, c.config.HandlerTimeout)
	defer cancel()

	if err := c.reactor.React(hCtx, subject, data); err != nil {
		c.logger.Error("Handler failed, message will be redelivered", "topic", subject, "error", err)
		return
	}
	if err := ack(); err != nil {
		c.logger.Error("Ack failed", "topic", subject, "error", err)
	}
}

// Close detaches from the subscriptions and keeps the durable position.
func (c *Consumer) Close() error {
	var errs []error
	for _, sub := range c.subscriptions {
		if err := sub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.subscriptions = nil
	return errors.Join(errs...)
}
