package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"time"

	"ordering/internal/core/application/integration"
	"ordering/internal/core/domain/model/idempotency"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
)

type orderRepository struct {
	uow *UnitOfWork
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.uow.db.mu.Lock()
	r.uow.db.nextOrderID++
	id := r.uow.db.nextOrderID
	r.uow.db.mu.Unlock()

	if err := aggregate.AssignID(id); err != nil {
		return err
	}
	stored, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}
	r.uow.staged.orders[id] = stored
	r.uow.autocommit()
	return nil
}

func (r *orderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, err := r.Get(ctx, aggregate.ID()); err != nil {
		return err
	}

	stored, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}
	r.uow.staged.orders[aggregate.ID()] = stored
	r.uow.autocommit()
	return nil
}

func (r *orderRepository) Get(_ context.Context, id int64) (*order.Order, error) {
	if o, ok := r.uow.staged.orders[id]; ok {
		return cloneOrder(o)
	}

	r.uow.db.mu.Lock()
	o, ok := r.uow.db.orders[id]
	r.uow.db.mu.Unlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", strconv.FormatInt(id, 10))
	}
	return cloneOrder(o)
}

func (r *orderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	if r.uow.active && !slices.Contains(r.uow.locked, id) {
		r.uow.db.rowLock(id).Lock()
		r.uow.locked = append(r.uow.locked, id)
	}
	return r.Get(ctx, id)
}

func (r *orderRepository) GetPendingSubmittedBefore(_ context.Context, before time.Time, limit int) ([]*order.Order, error) {
	r.uow.db.mu.Lock()
	candidates := make(map[int64]*order.Order, len(r.uow.db.orders))
	for id, o := range r.uow.db.orders {
		candidates[id] = o
	}
	r.uow.db.mu.Unlock()
	for id, o := range r.uow.staged.orders {
		candidates[id] = o
	}

	var out []*order.Order
	for _, o := range candidates {
		submittedAt, ok := o.TransitionedAt(order.Pending)
		if o.Status() != order.Pending || !ok || !submittedAt.Before(before) {
			continue
		}
		c, err := cloneOrder(o)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		a, _ := out[i].TransitionedAt(order.Pending)
		b, _ := out[j].TransitionedAt(order.Pending)
		return a.Before(b)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type idempotencyRepository struct {
	uow *UnitOfWork
}

func (r *idempotencyRepository) Reserve(_ context.Context, record *idempotency.Record) error {
	r.uow.db.mu.Lock()
	defer r.uow.db.mu.Unlock()

	if _, ok := r.uow.db.records[record.Key()]; ok {
		return errs.NewAlreadyExistsError("idempotency record", record.Key().String())
	}
	reserved, err := idempotency.RestoreRecord(record.Key(), idempotency.Result{}, record.CreatedAt(), nil)
	if err != nil {
		return err
	}
	r.uow.db.records[record.Key()] = reserved
	if r.uow.active {
		r.uow.reserved = append(r.uow.reserved, record.Key())
	}
	return nil
}

func (r *idempotencyRepository) Complete(_ context.Context, record *idempotency.Record) error {
	completedAt, done := record.CompletedAt()
	if !done {
		return fmt.Errorf("idempotency record %s is not completed", record.Key())
	}
	stored, err := idempotency.RestoreRecord(record.Key(), record.Result(), record.CreatedAt(), &completedAt)
	if err != nil {
		return err
	}
	r.uow.staged.completions[record.Key()] = stored
	r.uow.autocommit()
	return nil
}

func (r *idempotencyRepository) Get(_ context.Context, key idempotency.Key) (*idempotency.Record, error) {
	r.uow.db.mu.Lock()
	defer r.uow.db.mu.Unlock()

	record, ok := r.uow.db.records[key]
	if !ok {
		return nil, errs.NewObjectNotFoundError("idempotency record", key.String())
	}
	completedAt, done := record.CompletedAt()
	if !done {
		return idempotency.RestoreRecord(key, record.Result(), record.CreatedAt(), nil)
	}
	return idempotency.RestoreRecord(key, record.Result(), record.CreatedAt(), &completedAt)
}

func (r *idempotencyRepository) DeleteCompletedBefore(_ context.Context, before time.Time) (int64, error) {
	r.uow.db.mu.Lock()
	defer r.uow.db.mu.Unlock()

	var deleted int64
	for key, record := range r.uow.db.records {
		if at, ok := record.CompletedAt(); ok && at.Before(before) {
			delete(r.uow.db.records, key)
			deleted++
		}
	}
	return deleted, nil
}

type outboxRepository struct {
	uow *UnitOfWork
}

func (r *outboxRepository) Add(_ context.Context, events ...integration.Event) error {
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	r.uow.staged.outbox = append(r.uow.staged.outbox, events...)
	r.uow.autocommit()
	return nil
}

func (r *outboxRepository) GetUnpublished(_ context.Context, limit int) ([]integration.Event, error) {
	r.uow.db.mu.Lock()
	defer r.uow.db.mu.Unlock()

	var out []integration.Event
	for _, entry := range r.uow.db.outbox {
		if len(out) == limit {
			break
		}
		if entry.published || (entry.claimedBy != nil && entry.claimedBy != r.uow) {
			continue
		}
		if r.uow.active {
			entry.claimedBy = r.uow
		}
		out = append(out, entry.event)
	}
	return out, nil
}

func (r *outboxRepository) MarkPublished(_ context.Context, ids ...kernel.UUID) error {
	r.uow.staged.published = append(r.uow.staged.published, ids...)
	r.uow.autocommit()
	return nil
}
