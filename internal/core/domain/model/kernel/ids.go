package kernel

import "github.com/google/uuid"

// Typed identifiers. Each wraps UUID so references between entities are
// checked by the compiler instead of by string comparison.
type (
	RFQID           struct{ UUID }
	SupplierQuoteID struct{ UUID }
	SalesQuoteID    struct{ UUID }
	PurchaseOrderID struct{ UUID }
	SalesOrderID    struct{ UUID }
	CustomerID      struct{ UUID }
	SupplierID      struct{ UUID }
)

func NewRFQID() RFQID                     { return RFQID{NewUUID()} }
func NewSupplierQuoteID() SupplierQuoteID { return SupplierQuoteID{NewUUID()} }
func NewSalesQuoteID() SalesQuoteID       { return SalesQuoteID{NewUUID()} }
func NewPurchaseOrderID() PurchaseOrderID { return PurchaseOrderID{NewUUID()} }
func NewSalesOrderID() SalesOrderID       { return SalesOrderID{NewUUID()} }

// RawID is implemented by every typed identifier.
type RawID interface {
	Bytes() uuid.UUID
	String() string
	Validate() error
}

// FromRaw converts a persisted uuid.UUID into a validated UUID.
func FromRaw(raw uuid.UUID) (UUID, error) {
	return UUIDFromBytes(raw[:])
}

// OptionalRaw returns nil for a nil id pointer and the raw value otherwise.
func OptionalRaw[T RawID](id *T) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := (*id).Bytes()
	return &raw
}
