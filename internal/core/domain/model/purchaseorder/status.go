// Package purchaseorder provides the PurchaseOrder aggregate: the order the
// broker places with the winning supplier.
//
//	pending ─> accepted ─> in_progress ─> shipped ─> delivered ─(archive/reopen)
//	   └──────────┴────────────┴──> cancelled
//
// A delivered order may be archived. While archived it refuses every change
// except reopen.
package purchaseorder

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
	InProgress
	Shipped
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:    "pending",
		Accepted:   "accepted",
		InProgress: "in_progress",
		Shipped:    "shipped",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

var Lifecycle = transition.NewTable(transition.PurchaseOrder,
	Pending, Accepted, InProgress, Shipped, Delivered, Cancelled).
	Edge(transition.AcceptPurchaseOrder, Accepted, Pending).
	Edge(transition.StartProduction, InProgress, Accepted).
	Edge(transition.ShipPurchaseOrder, Shipped, InProgress).
	Edge(transition.DeliverPurchaseOrder, Delivered, Shipped).
	Edge(transition.CancelPurchaseOrder, Cancelled, Pending, Accepted, InProgress).
	Stay(transition.AttachSupplierInvoice, Accepted, InProgress, Shipped, Delivered).
	Stay(transition.ArchivePurchaseOrder, Delivered).
	Precondition(transition.ArchivePurchaseOrder).
	Stay(transition.ReopenPurchaseOrder, Delivered).
	Precondition(transition.ReopenPurchaseOrder)

// Progressions are the transitions a caller may request through Advance.
func Progressions() []transition.Name {
	return []transition.Name{
		transition.AcceptPurchaseOrder,
		transition.StartProduction,
		transition.ShipPurchaseOrder,
		transition.DeliverPurchaseOrder,
		transition.CancelPurchaseOrder,
	}
}

func StatusFromString(s string) (Status, error) {
	for st, name := range getStatusStrings() {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid purchase order status", s))
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
