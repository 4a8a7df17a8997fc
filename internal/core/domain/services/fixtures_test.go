package services_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/core/domain/model/supplierquote"
	"marketplace/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	customer  = kernel.MustActor(kernel.NewUUID(), kernel.Customer)
	admin     = kernel.MustActor(kernel.NewUUID(), kernel.Admin)
	supplier1 = kernel.MustActor(kernel.NewUUID(), kernel.Supplier)
	supplier2 = kernel.MustActor(kernel.NewUUID(), kernel.Supplier)

	fixedNow = time.Now().UTC().Truncate(time.Second)
)

type scenario struct {
	rfq    *rfq.RFQ
	quotes []*supplierquote.SupplierQuote
	sales  *salesquote.SalesQuote
}

func sentRFQ(t *testing.T) *rfq.RFQ {
	t.Helper()
	spec, err := rfq.NewSpecification("aluminum", "6061", "anodized", "0.1mm", 50, "cnc_machining")
	require.NoError(t, err)
	r, err := rfq.NewRFQ(kernel.NewRFQID(), customer, "Bracket", spec)
	require.NoError(t, err)
	require.NoError(t, r.AssignSuppliers(admin, []kernel.SupplierID{supplier1.AsSupplier(), supplier2.AsSupplier()}))
	return r
}

func quotedScenario(t *testing.T) scenario {
	t.Helper()
	r := sentRFQ(t)

	q1, err := supplierquote.NewSupplierQuote(kernel.NewSupplierQuoteID(), r.ID(), supplier1, kernel.MustMoney("100", "USD"), 10)
	require.NoError(t, err)
	q2, err := supplierquote.NewSupplierQuote(kernel.NewSupplierQuoteID(), r.ID(), supplier2, kernel.MustMoney("120", "USD"), 7)
	require.NoError(t, err)

	publisher := services.NewQuotePublisher(0).WithClock(func() time.Time { return fixedNow })
	sq, err := publisher.Publish(kernel.NewSalesQuoteID(), r, q1, decimal.RequireFromString("0.30"), nil, admin)
	require.NoError(t, err)

	return scenario{rfq: r, quotes: []*supplierquote.SupplierQuote{q1, q2}, sales: sq}
}

func acceptedWithPO(t *testing.T) scenario {
	t.Helper()
	s := quotedScenario(t)
	require.NoError(t, s.sales.Accept(customer, fixedNow.Add(time.Hour)))
	require.NoError(t, s.rfq.AcceptQuote(customer))
	ref, err := salesquote.NewPurchaseOrderRef("po.pdf", "PO-1")
	require.NoError(t, err)
	_, err = s.sales.AttachPurchaseOrder(customer, ref)
	require.NoError(t, err)
	return s
}

func deliveredOrder(t *testing.T, s scenario) *salesorder.SalesOrder {
	t.Helper()
	o, err := services.NewSalesOrderConverter().Convert(kernel.NewSalesOrderID(), s.sales, s.rfq, "SO-000001", admin)
	require.NoError(t, err)
	for _, stage := range []salesorder.Status{
		salesorder.MaterialProcurement, salesorder.Manufacturing, salesorder.Finishing,
		salesorder.QualityCheck, salesorder.Packing, salesorder.Shipped, salesorder.Delivered,
	} {
		require.NoError(t, o.AdvanceTo(admin, stage, nil))
	}
	return o
}
