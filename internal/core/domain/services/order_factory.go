package services

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/purchaseorder"
	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/core/domain/model/supplierquote"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"
)

var errRFQNotAccepted = errors.New("rfq is not accepted")

// SalesOrderConverter is the single creation point of sales orders. The
// at-most-once guarantee per quote is the store's job; this service only
// checks that the quote side allows an order at all.
type SalesOrderConverter struct{}

func NewSalesOrderConverter() SalesOrderConverter {
	return SalesOrderConverter{}
}

// Check requires an accepted quote holding a purchase order and an accepted
// RFQ. Callers run it before allocating an order number.
func (SalesOrderConverter) Check(quote *salesquote.SalesQuote, r *rfq.RFQ, by kernel.Actor) error {
	if err := errors.Join(quote.Validate(), r.Validate()); err != nil {
		return err
	}
	if err := quote.EnsureConvertible(by); err != nil {
		return err
	}
	if r.ID() != quote.RFQID() || r.Status() != rfq.Accepted {
		return errs.NewPreconditionFailedError(transition.SalesQuote.String(),
			transition.ConvertToSalesOrder.String(), fmt.Errorf("%w: %s is %s", errRFQNotAccepted, r.ID(), r.Status()))
	}
	return nil
}

// Convert creates the order after Check passes.
func (c SalesOrderConverter) Convert(
	id kernel.SalesOrderID,
	quote *salesquote.SalesQuote,
	r *rfq.RFQ,
	orderNumber string,
	by kernel.Actor,
) (*salesorder.SalesOrder, error) {
	if err := c.Check(quote, r, by); err != nil {
		return nil, err
	}
	return salesorder.NewSalesOrder(id, quote.RFQID(), quote.ID(), quote.CustomerID(), orderNumber, by)
}

// PurchaseOrderIssuer creates the broker's order to the winning supplier.
type PurchaseOrderIssuer struct{}

func NewPurchaseOrderIssuer() PurchaseOrderIssuer {
	return PurchaseOrderIssuer{}
}

// Issue totals the order at the supplier's price. deliveryDate defaults to
// the quote's estimated delivery.
func (PurchaseOrderIssuer) Issue(
	id kernel.PurchaseOrderID,
	quote *salesquote.SalesQuote,
	selected *supplierquote.SupplierQuote,
	deliveryDate *time.Time,
	by kernel.Actor,
) (*purchaseorder.PurchaseOrder, error) {
	if err := errors.Join(quote.Validate(), selected.Validate()); err != nil {
		return nil, err
	}
	if err := quote.EnsureIssuable(by); err != nil {
		return nil, err
	}
	if selected.ID() != quote.SupplierQuoteID() || selected.Status() != supplierquote.Accepted {
		return nil, errs.NewPreconditionFailedError(transition.SalesQuote.String(),
			transition.IssuePurchaseOrder.String(), fmt.Errorf("supplier quote %s was not selected for this quote", selected.ID()))
	}

	date := quote.EstimatedDelivery()
	if deliveryDate != nil {
		date = *deliveryDate
	}
	return purchaseorder.NewPurchaseOrder(id, quote.ID(), selected.SupplierID(), selected.Price(), date, by)
}
