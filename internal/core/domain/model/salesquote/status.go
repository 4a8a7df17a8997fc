package salesquote

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
	Declined
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:  "pending",
		Accepted: "accepted",
		Declined: "declined",
	}
}

// Lifecycle is the SalesQuote adjacency table. The self-loops on accepted are
// the operations that require an accepted quote; from any other state they
// fail with PreconditionFailed.
var Lifecycle = transition.NewTable(transition.SalesQuote, Pending, Accepted, Declined).
	Edge(transition.AcceptQuote, Accepted, Pending).
	Edge(transition.DeclineQuote, Declined, Pending).
	Edge(transition.OverrideQuoteStatus, Declined, Accepted).
	Edge(transition.OverrideQuoteStatus, Accepted, Declined).
	Precondition(transition.OverrideQuoteStatus).
	Stay(transition.AttachPurchaseOrder, Accepted).
	Precondition(transition.AttachPurchaseOrder).
	Stay(transition.ConvertToSalesOrder, Accepted).
	Precondition(transition.ConvertToSalesOrder).
	Stay(transition.IssuePurchaseOrder, Accepted).
	Precondition(transition.IssuePurchaseOrder)

func StatusFromString(s string) (Status, error) {
	for st, name := range getStatusStrings() {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid sales quote status", s))
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

func (s Status) IsTerminal() bool {
	return s == Accepted || s == Declined
}
