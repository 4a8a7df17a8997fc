// Package salesquote provides the SalesQuote aggregate: the priced offer
// surfaced to the customer, derived from the supplier quote the admin selected.
//
// Lifecycle:
//
//	pending ──┬──> accepted ──(attach PO, convert, issue PO)
//	          └──> declined
//
// accepted and declined are terminal for the customer. An admin may flip one
// into the other as a correction; every such override is recorded with
// Override set. A purchase order reference exists only on accepted quotes.
package salesquote
