// Package kernel provides the shared value objects of the marketplace domain.
//
// The package includes:
//   - UUID: an immutable identifier wrapping github.com/google/uuid
//   - Typed identifiers (RFQID, SalesQuoteID, SalesOrderID, ...) so a sales quote id
//     can never be passed where a purchase order id is expected
//   - Money: a decimal amount with an ISO currency code
//   - Role and Actor: who is asking for a transition (customer, supplier or admin)
//
// All values are immutable and safe for concurrent use. Zero values are invalid
// and are rejected by their Validate methods.
package kernel
