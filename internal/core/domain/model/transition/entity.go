package transition

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// EntityType names the lifecycle a transition applies to.
type EntityType int

const (
	UnknownEntity EntityType = iota
	RFQ
	SupplierQuote
	SalesQuote
	PurchaseOrder
	SalesOrder
)

func getEntityStrings() map[EntityType]string {
	return map[EntityType]string{
		RFQ:           "rfq",
		SupplierQuote: "supplierQuote",
		SalesQuote:    "salesQuote",
		PurchaseOrder: "purchaseOrder",
		SalesOrder:    "salesOrder",
	}
}

// EntityTypes lists every known entity type.
func EntityTypes() []EntityType {
	return []EntityType{RFQ, SupplierQuote, SalesQuote, PurchaseOrder, SalesOrder}
}

// EntityTypeFromString parses the camelCase name used in URLs and logs.
func EntityTypeFromString(s string) (EntityType, error) {
	for e, name := range getEntityStrings() {
		if name == s {
			return e, nil
		}
	}
	return UnknownEntity, errs.NewValueIsInvalidErrorWithCause("entityType", fmt.Errorf("%q is not a known entity type", s))
}

func (e EntityType) String() string {
	if s, ok := getEntityStrings()[e]; ok {
		return s
	}
	return "unknown"
}

func (e EntityType) Validate() error {
	if _, ok := getEntityStrings()[e]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("entityType", fmt.Errorf("%d is not a known entity type", e))
	}
	return nil
}

// Archivable reports whether the entity has an archive partition.
func (e EntityType) Archivable() bool {
	return e == PurchaseOrder || e == SalesOrder
}
