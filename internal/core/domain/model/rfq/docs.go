// Package rfq provides the RFQ (request for quote) aggregate: a customer's
// manufacturing request and the first step of every order lifecycle.
//
// Lifecycle:
//
//	submitted ──> reviewing ──> sent_to_suppliers ──> quoted ──┬──> accepted
//	    │             │                │                 │     └──> declined
//	    └─────────────┴──── cancel ────┴─────────────────┴────────> declined
//
// The Specification is fixed at creation. A reorder creates a new RFQ with the
// same specification and an origin order id; it never mutates the source.
package rfq
