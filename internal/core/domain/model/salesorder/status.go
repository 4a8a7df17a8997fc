package salesorder

import (
	"fmt"

	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"
)

// Status is the production stage of a sales order.
type Status int

const (
	Unknown Status = iota
	Pending
	MaterialProcurement
	Manufacturing
	Finishing
	QualityCheck
	Packing
	Shipped
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:             "pending",
		MaterialProcurement: "material_procurement",
		Manufacturing:       "manufacturing",
		Finishing:           "finishing",
		QualityCheck:        "quality_check",
		Packing:             "packing",
		Shipped:             "shipped",
		Delivered:           "delivered",
	}
}

// pipeline maps every stage but the first to the transition entering it.
var pipeline = map[Status]transition.Name{
	MaterialProcurement: transition.StartMaterialProcurement,
	Manufacturing:       transition.StartManufacturing,
	Finishing:           transition.StartFinishing,
	QualityCheck:        transition.StartQualityCheck,
	Packing:             transition.StartPacking,
	Shipped:             transition.ShipOrder,
	Delivered:           transition.DeliverOrder,
}

var allStatuses = []Status{
	Pending, MaterialProcurement, Manufacturing, Finishing, QualityCheck, Packing, Shipped, Delivered,
}

var Lifecycle = transition.NewTable(transition.SalesOrder, allStatuses...).
	Edge(transition.StartMaterialProcurement, MaterialProcurement, Pending).
	Edge(transition.StartManufacturing, Manufacturing, MaterialProcurement).
	Edge(transition.StartFinishing, Finishing, Manufacturing).
	Edge(transition.StartQualityCheck, QualityCheck, Finishing).
	Edge(transition.StartPacking, Packing, QualityCheck).
	Edge(transition.ShipOrder, Shipped, Packing).
	Edge(transition.DeliverOrder, Delivered, Shipped).
	Stay(transition.MarkPaid, allStatuses...).
	Stay(transition.ArchiveSalesOrder, Delivered).
	Precondition(transition.ArchiveSalesOrder).
	Stay(transition.ReopenSalesOrder, Delivered).
	Precondition(transition.ReopenSalesOrder)

// StepInto returns the transition that enters target. Pending has none.
func StepInto(target Status) (transition.Name, bool) {
	name, ok := pipeline[target]
	return name, ok
}

func StatusFromString(s string) (Status, error) {
	for st, name := range getStatusStrings() {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid order status", s))
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

// PaymentStatus is independent of the production stage.
type PaymentStatus int

const (
	UnknownPayment PaymentStatus = iota
	Unpaid
	Paid
)

func (p PaymentStatus) String() string {
	switch p {
	case Unpaid:
		return "unpaid"
	case Paid:
		return "paid"
	default:
		return "unknown"
	}
}

func PaymentStatusFromString(s string) (PaymentStatus, error) {
	switch s {
	case "unpaid":
		return Unpaid, nil
	case "paid":
		return Paid, nil
	default:
		return UnknownPayment, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%q is not a valid payment status", s))
	}
}
