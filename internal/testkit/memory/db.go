// Package memory provides an in-memory, transactional fake of the ordering
// persistence ports for tests.
//
// It mimics the parts of Postgres the core relies on: reservations of
// idempotency keys are visible to other transactions immediately, every other
// write is staged until Commit, savepoints restore staged writes, and
// GetForUpdate holds a per-order lock until the transaction ends.
package memory

import (
	"errors"
	"sort"
	"sync"

	"ordering/internal/core/application/integration"
	"ordering/internal/core/domain/model/idempotency"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// ErrNoTransaction is returned by Commit, Rollback and savepoint calls made
// outside of Begin.
var ErrNoTransaction = errors.New("no active transaction")

type outboxEntry struct {
	event     integration.Event
	published bool
	claimedBy *UnitOfWork
}

// DB is the shared state behind every UnitOfWork it creates. It also
// implements ports.UnitOfWorkFactory.
type DB struct {
	mu          sync.Mutex
	nextOrderID int64
	orders      map[int64]*order.Order
	records     map[idempotency.Key]*idempotency.Record
	outbox      []*outboxEntry
	rowLocks    map[int64]*sync.Mutex
	commitErrs  []error
}

func NewDB() *DB {
	return &DB{
		orders:   make(map[int64]*order.Order),
		records:  make(map[idempotency.Key]*idempotency.Record),
		rowLocks: make(map[int64]*sync.Mutex),
	}
}

func (db *DB) Create() ports.UnitOfWork {
	return db.NewUnitOfWork()
}

// NewUnitOfWork is Create with the concrete type.
func (db *DB) NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{db: db, staged: newStagedState()}
}

// FailNextCommit makes the next Commit return err and roll back instead.
func (db *DB) FailNextCommit(err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.commitErrs = append(db.commitErrs, err)
}

// Orders returns a copy of every committed order sorted by id.
func (db *DB) Orders() []*order.Order {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]*order.Order, 0, len(db.orders))
	for _, o := range db.orders {
		c, _ := cloneOrder(o)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Events returns every committed outbox event in insertion order.
func (db *DB) Events() []integration.Event {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]integration.Event, 0, len(db.outbox))
	for _, entry := range db.outbox {
		out = append(out, entry.event)
	}
	return out
}

// PublishedEvents returns committed outbox events marked as published.
func (db *DB) PublishedEvents() []integration.Event {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []integration.Event
	for _, entry := range db.outbox {
		if entry.published {
			out = append(out, entry.event)
		}
	}
	return out
}

// Records returns every idempotency record, reserved or completed.
func (db *DB) Records() []*idempotency.Record {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]*idempotency.Record, 0, len(db.records))
	for _, r := range db.records {
		out = append(out, r)
	}
	return out
}

func (db *DB) rowLock(id int64) *sync.Mutex {
	db.mu.Lock()
	defer db.mu.Unlock()

	l, ok := db.rowLocks[id]
	if !ok {
		l = &sync.Mutex{}
		db.rowLocks[id] = l
	}
	return l
}

func cloneOrder(o *order.Order) (*order.Order, error) {
	return order.RestoreOrder(
		o.ID(),
		o.Buyer(),
		o.Address(),
		o.PaymentMethod(),
		o.Items(),
		o.Status(),
		o.Transitions(),
		o.Description(),
	)
}
