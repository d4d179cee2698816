package ports

import (
	"context"

	"ordering/internal/core/application/integration"
	"ordering/internal/core/domain/model/kernel"
)

// OutboxRepository is the transactional outbox. Events are written in the same
// transaction as the state change that produced them and published later.
type OutboxRepository interface {
	// Add stores events to be published.
	Add(ctx context.Context, events ...integration.Event) error

	// GetUnpublished returns up to limit unpublished events in insertion order.
	// Rows are locked and skipped by concurrent relays until the transaction ends.
	GetUnpublished(ctx context.Context, limit int) ([]integration.Event, error)

	// MarkPublished flags events as delivered to the bus.
	MarkPublished(ctx context.Context, ids ...kernel.UUID) error
}

// EventPublisher delivers integration events to the event bus.
type EventPublisher interface {
	Publish(ctx context.Context, event integration.Event) error
}
