// Package idempotency models the proof that a request was already handled.
//
// A Record is keyed by (request id, command type). It is reserved before the
// command runs, completed exactly once with the command's Result, and never
// mutated afterwards. Retried requests read the stored Result instead of
// running the command again.
package idempotency
