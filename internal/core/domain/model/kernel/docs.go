// Package kernel contains the shared value objects of the ordering domain.
//
// The package includes:
//   - UUID: identifiers for requests and integration events
//   - Address: the shipping address of an order
//   - MaskCardNumber: the masking rule applied to payment card numbers
//
// Value objects validate themselves on construction and are immutable afterwards.
package kernel
