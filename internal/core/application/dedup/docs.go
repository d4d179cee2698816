// Package dedup executes a unit of work at most once per idempotency key.
//
// The store reserves a record for the key inside a database transaction,
// runs the caller's compute function in that same transaction and completes
// the record with its result before committing. Record, side effects and
// outbox events therefore become visible together or not at all.
//
// Concurrent callers racing on the same key are serialized by the unique
// reservation: exactly one runs compute, the others wait for the winner's
// completed record and return it without running anything.
package dedup
