// Package paymentprocessor is a stand-in for the payment service: it charges
// every order whose stock was confirmed and reports the outcome.
package paymentprocessor

import (
	"context"
	"fmt"
	"log/slog"

	"ordering/internal/core/application/integration"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/clock"
)

type PaymentOutcome struct {
	OrderID int64 `json:"orderId"`
}

type Processor struct {
	publisher ports.EventPublisher
	succeed   bool
	clock     clock.Clock
	logger    *slog.Logger
}

// NewProcessor builds a processor answering payment.succeeded when succeed is
// set and payment.failed otherwise.
func NewProcessor(publisher ports.EventPublisher, succeed bool, clk clock.Clock, logger *slog.Logger) *Processor {
	return &Processor{
		publisher: publisher,
		succeed:   succeed,
		clock:     clk,
		logger:    logger.With("component", "payment_processor"),
	}
}

func (p *Processor) Topics() []string {
	return []string{integration.TopicOrderStockConfirmed}
}

// React charges the order of a stock-confirmed event. Malformed events are
// dropped; a publish failure is returned so the message is redelivered.
func (p *Processor) React(ctx context.Context, topic string, data []byte) error {
	if topic != integration.TopicOrderStockConfirmed {
		p.logger.WarnContext(ctx, "Ignoring unexpected topic", "topic", topic)
		return nil
	}

	event, err := integration.Decode(data)
	if err != nil {
		p.logger.WarnContext(ctx, "Dropping malformed event", "topic", topic, "error", err)
		return nil
	}

	reply := integration.TopicPaymentFailed
	if p.succeed {
		reply = integration.TopicPaymentSucceeded
	}

	outcome, err := integration.NewReplyEvent(event, reply, PaymentOutcome{OrderID: event.OrderID}, p.clock.Now())
	if err != nil {
		return err
	}
	if err = p.publisher.Publish(ctx, outcome); err != nil {
		return fmt.Errorf("failed to publish %s for order %d: %w", reply, event.OrderID, err)
	}

	p.logger.InfoContext(ctx, "Payment processed", "order_id", event.OrderID, "outcome", reply)
	return nil
}
