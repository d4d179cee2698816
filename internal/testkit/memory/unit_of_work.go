package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"ordering/internal/core/application/integration"
	"ordering/internal/core/domain/model/idempotency"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

type stagedState struct {
	orders      map[int64]*order.Order
	outbox      []integration.Event
	published   []kernel.UUID
	completions map[idempotency.Key]*idempotency.Record
}

func newStagedState() stagedState {
	return stagedState{
		orders:      make(map[int64]*order.Order),
		completions: make(map[idempotency.Key]*idempotency.Record),
	}
}

func (s stagedState) clone() stagedState {
	return stagedState{
		orders:      maps.Clone(s.orders),
		outbox:      slices.Clone(s.outbox),
		published:   slices.Clone(s.published),
		completions: maps.Clone(s.completions),
	}
}

// UnitOfWork is a transaction over DB. Without Begin every write is applied
// immediately.
type UnitOfWork struct {
	db         *DB
	active     bool
	staged     stagedState
	savepoints map[string]stagedState
	reserved   []idempotency.Key
	locked     []int64
}

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return nil
	}
	u.active = true
	u.staged = newStagedState()
	u.savepoints = make(map[string]stagedState)
	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}

	u.db.mu.Lock()
	if len(u.db.commitErrs) > 0 {
		err := u.db.commitErrs[0]
		u.db.commitErrs = u.db.commitErrs[1:]
		u.db.mu.Unlock()
		_ = u.Rollback(ctx)
		return err
	}
	u.applyLocked()
	u.db.mu.Unlock()

	u.finish()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}

	u.db.mu.Lock()
	for _, key := range u.reserved {
		if r, ok := u.db.records[key]; ok && !r.IsCompleted() {
			delete(u.db.records, key)
		}
	}
	u.db.mu.Unlock()

	u.finish()
	return nil
}

func (u *UnitOfWork) SavePoint(_ context.Context, name string) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.savepoints[name] = u.staged.clone()
	return nil
}

func (u *UnitOfWork) RollbackTo(_ context.Context, name string) error {
	if !u.active {
		return ErrNoTransaction
	}
	snapshot, ok := u.savepoints[name]
	if !ok {
		return fmt.Errorf("savepoint %q does not exist", name)
	}
	u.staged = snapshot.clone()
	return nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: u}
}

func (u *UnitOfWork) IdempotencyRepository() ports.IdempotencyRepository {
	return &idempotencyRepository{uow: u}
}

func (u *UnitOfWork) OutboxRepository() ports.OutboxRepository {
	return &outboxRepository{uow: u}
}

// autocommit applies staged writes right away when no transaction is open.
func (u *UnitOfWork) autocommit() {
	if u.active {
		return
	}
	u.db.mu.Lock()
	u.applyLocked()
	u.db.mu.Unlock()
	u.staged = newStagedState()
}

func (u *UnitOfWork) applyLocked() {
	for id, o := range u.staged.orders {
		u.db.orders[id] = o
	}
	for _, e := range u.staged.outbox {
		u.db.outbox = append(u.db.outbox, &outboxEntry{event: e})
	}
	for _, id := range u.staged.published {
		for _, entry := range u.db.outbox {
			if entry.event.ID.IsEqual(id) {
				entry.published = true
			}
		}
	}
	for key, r := range u.staged.completions {
		u.db.records[key] = r
	}
}

func (u *UnitOfWork) finish() {
	u.db.mu.Lock()
	for _, entry := range u.db.outbox {
		if entry.claimedBy == u {
			entry.claimedBy = nil
		}
	}
	u.db.mu.Unlock()

	for _, id := range u.locked {
		u.db.rowLock(id).Unlock()
	}

	u.active = false
	u.locked = nil
	u.reserved = nil
	u.savepoints = nil
	u.staged = newStagedState()
}
