// Package ports defines the persistence and messaging contracts of the
// ordering core. Adapters implement them; application services depend on them.
package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order and assigns the store-generated identifier
	// to the aggregate via AssignID.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status, transition timestamps and description of an
	// existing order. Items are immutable and never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	// Returns *errs.ObjectNotFoundError when no order matches.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the current
	// transaction ends, serializing concurrent transitions of the same order.
	// Returns *errs.ObjectNotFoundError when no order matches.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// GetPendingSubmittedBefore returns up to limit Pending orders whose
	// submission happened before the given instant, oldest first.
	//
	// Example:
	//   orders, err := repo.GetPendingSubmittedBefore(ctx, clk.Now().Add(-gracePeriod), 100)
	//   if err != nil {
	//       return fmt.Errorf("failed to load orders past their grace period: %w", err)
	//   }
	GetPendingSubmittedBefore(ctx context.Context, before time.Time, limit int) ([]*order.Order, error)
}
