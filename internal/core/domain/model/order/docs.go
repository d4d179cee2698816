// Package order provides the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root holding buyer, shipping address, masked payment
//     method, immutable line items, current status and transition timestamps
//   - Status and Trigger: the states of an order and the facts that move it
//   - Fire: the pure transition function (current status, trigger) -> Transition
//   - Preview: an ephemeral, never persisted Draft order built from a basket
//
// Key business rules:
//   - Orders start in Draft and are submitted to Pending
//   - Stock is confirmed before payment; an order is shipped only once paid
//   - Cancelled is absorbing and reachable from every non-terminal status
//   - A trigger whose target is the current status is a duplicate and a no-op
//   - Any other trigger outside the table is rejected with ErrInvalidTransition
//     and leaves the order unchanged
//   - Line items never change after the order has been created
package order
