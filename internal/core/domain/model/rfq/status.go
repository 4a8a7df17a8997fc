package rfq

import (
	"fmt"

	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"
)

// Status is the lifecycle state of an RFQ.
type Status int

const (
	Unknown Status = iota
	Submitted
	Reviewing
	SentToSuppliers
	Quoted
	Accepted
	Declined
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Submitted:       "submitted",
		Reviewing:       "reviewing",
		SentToSuppliers: "sent_to_suppliers",
		Quoted:          "quoted",
		Accepted:        "accepted",
		Declined:        "declined",
	}
}

// Lifecycle is the RFQ adjacency table. OverrideQuoteStatus mirrors an admin
// correction of the sales quote back onto its RFQ.
var Lifecycle = transition.NewTable(transition.RFQ,
	Submitted, Reviewing, SentToSuppliers, Quoted, Accepted, Declined).
	Edge(transition.ReviewRFQ, Reviewing, Submitted).
	Edge(transition.AssignToSuppliers, SentToSuppliers, Submitted, Reviewing, SentToSuppliers).
	Edge(transition.PublishQuote, Quoted, SentToSuppliers).
	Edge(transition.AcceptQuote, Accepted, Quoted).
	Edge(transition.DeclineQuote, Declined, Quoted).
	Edge(transition.CancelRFQ, Declined, Submitted, Reviewing, SentToSuppliers, Quoted).
	Edge(transition.OverrideQuoteStatus, Declined, Accepted).
	Edge(transition.OverrideQuoteStatus, Accepted, Declined)

// StatusFromString parses a persisted status.
func StatusFromString(s string) (Status, error) {
	for st, name := range getStatusStrings() {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid rfq status", s))
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

// IsTerminal reports whether no further customer or admin progress is possible.
func (s Status) IsTerminal() bool {
	return s == Accepted || s == Declined
}
