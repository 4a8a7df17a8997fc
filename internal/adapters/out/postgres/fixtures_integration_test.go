package postgres_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/purchaseorder"
	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/core/domain/model/supplierquote"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/require"
)

var (
	customer = kernel.MustActor(kernel.NewUUID(), kernel.Customer)
	admin    = kernel.MustActor(kernel.NewUUID(), kernel.Admin)
	supplier = kernel.MustActor(kernel.NewUUID(), kernel.Supplier)
)

func steelSpec(t *testing.T) rfq.Specification {
	t.Helper()
	spec, err := rfq.NewSpecification("steel", "304", "brushed", "0.05mm", 200, "sheet_metal")
	require.NoError(t, err)
	return spec
}

// chain is a persisted RFQ with one bid, a sales quote and, optionally, the
// orders created from it.
type chain struct {
	rfq           *rfq.RFQ
	supplierQuote *supplierquote.SupplierQuote
	salesQuote    *salesquote.SalesQuote
}

// seedChain writes an accepted RFQ, its accepted supplier quote and an
// accepted sales quote with a purchase order attached.
func seedChain(t *testing.T, factory ports.UnitOfWorkFactory) chain {
	t.Helper()
	ctx := context.Background()
	at := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)

	r := rfq.RestoreRFQ(kernel.NewRFQID(), customer.AsCustomer(), "Enclosure", steelSpec(t),
		rfq.Accepted, []kernel.SupplierID{supplier.AsSupplier()}, nil, at, at, 1)
	sq := supplierquote.RestoreSupplierQuote(kernel.NewSupplierQuoteID(), r.ID(), supplier.AsSupplier(),
		kernel.MustMoney("100", "USD"), 12, supplierquote.Accepted, at, at, 1)
	ref, err := salesquote.NewPurchaseOrderRef("files/po.pdf", "PO-7")
	require.NoError(t, err)
	terms := salesquote.Terms{
		Amount:            kernel.MustMoney("130", "USD"),
		ValidUntil:        at.AddDate(0, 0, 30),
		EstimatedDelivery: at.AddDate(0, 0, 12),
	}
	quote := salesquote.RestoreSalesQuote(kernel.NewSalesQuoteID(), r.ID(), sq.ID(), r.Owner(), terms,
		salesquote.Accepted, &ref, "", &at, at, at, 1)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.RFQRepository().Add(ctx, r))
	require.NoError(t, uow.SupplierQuoteRepository().Add(ctx, sq))
	require.NoError(t, uow.SalesQuoteRepository().Add(ctx, quote))
	require.NoError(t, uow.Commit(ctx))

	return chain{rfq: r, supplierQuote: sq, salesQuote: quote}
}

func (c chain) salesOrder(number string, status salesorder.Status) *salesorder.SalesOrder {
	at := time.Now().UTC().Truncate(time.Microsecond)
	return salesorder.RestoreSalesOrder(kernel.NewSalesOrderID(), c.rfq.ID(), c.salesQuote.ID(),
		c.salesQuote.CustomerID(), number, status, salesorder.Unpaid, nil, nil, nil, at, at, 1)
}

func (c chain) purchaseOrder(status purchaseorder.Status) *purchaseorder.PurchaseOrder {
	at := time.Now().UTC().Truncate(time.Microsecond)
	return purchaseorder.RestorePurchaseOrder(kernel.NewPurchaseOrderID(), c.salesQuote.ID(),
		supplier.AsSupplier(), kernel.MustMoney("100", "USD"), at.AddDate(0, 0, 12), status, nil, nil, at, at, 1)
}
