package reactor

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/dedup"
	"ordering/internal/core/application/integration"
	"ordering/internal/core/domain/model/idempotency"
	"ordering/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RecordStore runs work at most once per idempotency key.
type RecordStore interface {
	RecordIfAbsent(ctx context.Context, key idempotency.Key, compute dedup.Compute) (idempotency.Result, bool, error)
}

// Reactor routes inbound events to their handler.
//
// Example:
//
//	r := reactor.NewReactor(store, logger, reactor.Handlers(clk))
//	if err := r.React(ctx, msg.Subject, msg.Data); err != nil {
//	    // do not ack; the event will be redelivered
//	}
type Reactor struct {
	store    RecordStore
	handlers map[string]Handler
	logger   *slog.Logger
	tracer   trace.Tracer
}

func NewReactor(store RecordStore, logger *slog.Logger, handlers map[string]Handler) *Reactor {
	return &Reactor{
		store:    store,
		handlers: handlers,
		logger:   logger.With("component", "reactor"),
		tracer:   otel.Tracer("ordering/reactor"),
	}
}

// Topics returns the topics the reactor has handlers for.
func (r *Reactor) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for _, topic := range integration.InboundTopics() {
		if _, ok := r.handlers[topic]; ok {
			topics = append(topics, topic)
		}
	}
	return topics
}

// React handles one message received on topic. A nil error means the message
// can be acknowledged.
func (r *Reactor) React(ctx context.Context, topic string, data []byte) error {
	ctx, span := r.tracer.Start(ctx, "reactor.React", trace.WithAttributes(
		attribute.String("event.topic", topic),
	))
	defer span.End()

	handler, ok := r.handlers[topic]
	if !ok {
		r.logger.WarnContext(ctx, "Ignoring event on unknown topic", "topic", topic)
		return nil
	}

	event, err := integration.Decode(data)
	if err != nil {
		r.logger.WarnContext(ctx, "Discarding malformed event", "topic", topic, "error", err)
		return nil
	}
	if event.Topic != topic {
		r.logger.WarnContext(ctx, "Discarding event published on a foreign topic",
			"topic", topic, "event_topic", event.Topic, "event_id", event.ID.String())
		return nil
	}
	span.SetAttributes(
		attribute.String("event.id", event.ID.String()),
		attribute.Int64("order.id", event.OrderID),
	)

	key, err := idempotency.NewKey(event.ID, "event:"+topic)
	if err != nil {
		r.logger.WarnContext(ctx, "Discarding event without identity", "topic", topic, "error", err)
		return nil
	}

	result, replayed, err := r.store.RecordIfAbsent(ctx, key,
		func(ctx context.Context, uow ports.UnitOfWork) (idempotency.Result, error) {
			return handler.Handle(ctx, uow, event)
		})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.ErrorContext(ctx, "Failed to handle event",
			"topic", topic, "event_id", event.ID.String(), "order_id", event.OrderID, "error", err)
		return err
	}

	switch {
	case replayed:
		r.logger.InfoContext(ctx, "Event already handled",
			"topic", topic, "event_id", event.ID.String(), "order_id", event.OrderID)
	case !result.Succeeded():
		span.SetStatus(codes.Error, result.Reason())
		r.logger.WarnContext(ctx, "Event rejected",
			"topic", topic, "event_id", event.ID.String(), "order_id", event.OrderID, "reason", result.Reason())
	default:
		r.logger.InfoContext(ctx, "Event handled",
			"topic", topic, "event_id", event.ID.String(), "order_id", event.OrderID)
	}
	return nil
}
