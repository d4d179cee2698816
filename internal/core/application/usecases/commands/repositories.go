// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
//
// Order commands (create, cancel, ship, draft) are routed through the
// Dispatcher, which runs each deduplicated command at most once per request id.
// Maintenance commands (outbox relay, grace period, record retention) are run
// by the background jobs and manage their own transactions.
package commands

import (
	"context"

	"ordering/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OutboxRepoFactory provides access to the outbox within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// IdempotencyRepoFactory provides access to deduplication records.
	IdempotencyRepoFactory interface {
		IdempotencyRepository() ports.IdempotencyRepository
	}

	// OrderTx is the transaction a dispatched command runs in. Its lifecycle
	// belongs to the dispatcher, so handlers never begin or commit it.
	OrderTx interface {
		OrderRepoFactory
		OutboxRepoFactory
	}

	// OrderUoW manages transactions for handlers that change orders on their own.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OutboxRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OutboxUoW manages transactions over the outbox only.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// IdempotencyUoW gives access to deduplication records outside of a transaction.
	IdempotencyUoW interface {
		IdempotencyRepoFactory
	}

	// IdempotencyUoWFactory creates new idempotency unit of work instances.
	IdempotencyUoWFactory interface {
		Create() IdempotencyUoW
	}
)
