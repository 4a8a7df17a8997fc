// Package supplierquote provides the SupplierQuote aggregate: one supplier's
// bid against an RFQ.
package supplierquote

import (
	"fmt"

	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"
)

type Status int

const (
	Unknown Status = iota
	Pending
	Accepted
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:  "pending",
		Accepted: "accepted",
		Rejected: "rejected",
	}
}

// Lifecycle is the SupplierQuote adjacency table. A quote is accepted only
// by being selected for a published sales quote.
var Lifecycle = transition.NewTable(transition.SupplierQuote, Pending, Accepted, Rejected).
	Edge(transition.SelectSupplierQuote, Accepted, Pending).
	Edge(transition.RejectSupplierQuote, Rejected, Pending)

func StatusFromString(s string) (Status, error) {
	for st, name := range getStatusStrings() {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid supplier quote status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
