package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/purchaseorder"
	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/core/domain/model/supplierquote"

	"github.com/stretchr/testify/require"
)

var (
	customer = kernel.MustActor(kernel.NewUUID(), kernel.Customer)
	admin    = kernel.MustActor(kernel.NewUUID(), kernel.Admin)
	supplier = kernel.MustActor(kernel.NewUUID(), kernel.Supplier)
)

func aluminumSpec(t *testing.T) rfq.Specification {
	t.Helper()
	spec, err := rfq.NewSpecification("aluminum", "6061", "anodized", "0.1mm", 50, "cnc_machining")
	require.NoError(t, err)
	return spec
}

func rfqIn(t *testing.T, status rfq.Status, suppliers ...kernel.SupplierID) *rfq.RFQ {
	t.Helper()
	at := time.Now().UTC().Add(-time.Hour)
	return rfq.RestoreRFQ(kernel.NewRFQID(), customer.AsCustomer(), "Bracket", aluminumSpec(t),
		status, suppliers, nil, at, at, 1)
}

func supplierQuoteIn(r *rfq.RFQ, status supplierquote.Status) *supplierquote.SupplierQuote {
	at := time.Now().UTC().Add(-time.Hour)
	return supplierquote.RestoreSupplierQuote(kernel.NewSupplierQuoteID(), r.ID(), supplier.AsSupplier(),
		kernel.MustMoney("100", "USD"), 10, status, at, at, 1)
}

func salesQuoteIn(
	r *rfq.RFQ,
	sq *supplierquote.SupplierQuote,
	status salesquote.Status,
	po *salesquote.PurchaseOrderRef,
	validUntil time.Time,
) *salesquote.SalesQuote {
	at := time.Now().UTC().Add(-time.Hour)
	terms := salesquote.Terms{
		Amount:            kernel.MustMoney("130", "USD"),
		ValidUntil:        validUntil,
		EstimatedDelivery: at.AddDate(0, 0, 10),
	}
	return salesquote.RestoreSalesQuote(kernel.NewSalesQuoteID(), r.ID(), sq.ID(), r.Owner(), terms,
		status, po, "", nil, at, at, 1)
}

func poRef(t *testing.T) *salesquote.PurchaseOrderRef {
	t.Helper()
	ref, err := salesquote.NewPurchaseOrderRef("po.pdf", "PO-1")
	require.NoError(t, err)
	return &ref
}

func salesOrderIn(quote *salesquote.SalesQuote, status salesorder.Status, archivedAt *time.Time) *salesorder.SalesOrder {
	at := time.Now().UTC().Add(-time.Hour)
	return salesorder.RestoreSalesOrder(kernel.NewSalesOrderID(), quote.RFQID(), quote.ID(), quote.CustomerID(),
		"SO-000001", status, salesorder.Unpaid, nil, nil, archivedAt, at, at, 1)
}

func purchaseOrderIn(quote *salesquote.SalesQuote, status purchaseorder.Status, archivedAt *time.Time) *purchaseorder.PurchaseOrder {
	at := time.Now().UTC().Add(-time.Hour)
	return purchaseorder.RestorePurchaseOrder(kernel.NewPurchaseOrderID(), quote.ID(), supplier.AsSupplier(),
		kernel.MustMoney("100", "USD"), at.AddDate(0, 0, 10), status, archivedAt, nil, at, at, 1)
}

// acceptedChain returns an accepted RFQ with its selected supplier quote and
// an accepted sales quote holding a purchase order.
func acceptedChain(t *testing.T) (*rfq.RFQ, *supplierquote.SupplierQuote, *salesquote.SalesQuote) {
	t.Helper()
	r := rfqIn(t, rfq.Accepted, supplier.AsSupplier())
	sq := supplierQuoteIn(r, supplierquote.Accepted)
	quote := salesQuoteIn(r, sq, salesquote.Accepted, poRef(t), time.Now().Add(24*time.Hour))
	return r, sq, quote
}
