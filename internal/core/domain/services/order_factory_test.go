package services_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/purchaseorder"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesOrderConverter_Convert(t *testing.T) {
	converter := services.NewSalesOrderConverter()

	t.Run("accepted quote with purchase order", func(t *testing.T) {
		s := acceptedWithPO(t)

		o, err := converter.Convert(kernel.NewSalesOrderID(), s.sales, s.rfq, "SO-000042", admin)

		require.NoError(t, err)
		assert.Equal(t, salesorder.Pending, o.Status())
		assert.Equal(t, salesorder.Unpaid, o.PaymentStatus())
		assert.Equal(t, s.sales.ID(), o.QuoteID())
		assert.Equal(t, s.rfq.ID(), o.RFQID())
		assert.Equal(t, customer.AsCustomer(), o.CustomerID())
		assert.Equal(t, "SO-000042", o.OrderNumber())
		assert.NoError(t, converter.Check(s.sales, s.rfq, admin))
	})

	t.Run("pending quote", func(t *testing.T) {
		s := quotedScenario(t)
		_, err := converter.Convert(kernel.NewSalesOrderID(), s.sales, s.rfq, "SO-1", admin)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
		assert.ErrorIs(t, converter.Check(s.sales, s.rfq, admin), errs.ErrPreconditionFailed)
	})

	t.Run("accepted quote without purchase order", func(t *testing.T) {
		s := quotedScenario(t)
		require.NoError(t, s.sales.Accept(customer, fixedNow))
		require.NoError(t, s.rfq.AcceptQuote(customer))

		_, err := converter.Convert(kernel.NewSalesOrderID(), s.sales, s.rfq, "SO-1", admin)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("rfq out of sync", func(t *testing.T) {
		s := quotedScenario(t)
		require.NoError(t, s.sales.Accept(customer, fixedNow))
		ref := mustRef(t)
		_, err := s.sales.AttachPurchaseOrder(customer, ref)
		require.NoError(t, err)

		_, err = converter.Convert(kernel.NewSalesOrderID(), s.sales, s.rfq, "SO-1", admin)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("only admin converts", func(t *testing.T) {
		s := acceptedWithPO(t)
		_, err := converter.Convert(kernel.NewSalesOrderID(), s.sales, s.rfq, "SO-1", customer)
		assert.ErrorIs(t, err, errs.ErrRoleNotPermitted)
	})
}

func TestPurchaseOrderIssuer_Issue(t *testing.T) {
	issuer := services.NewPurchaseOrderIssuer()

	t.Run("issues at supplier price", func(t *testing.T) {
		s := acceptedWithPO(t)

		po, err := issuer.Issue(kernel.NewPurchaseOrderID(), s.sales, s.quotes[0], nil, admin)

		require.NoError(t, err)
		assert.Equal(t, purchaseorder.Pending, po.Status())
		assert.Equal(t, supplier1.AsSupplier(), po.SupplierID())
		assert.True(t, po.Total().IsEqual(kernel.MustMoney("100", "USD")))
		assert.Equal(t, s.sales.EstimatedDelivery(), po.DeliveryDate())
	})

	t.Run("explicit delivery date", func(t *testing.T) {
		s := acceptedWithPO(t)
		date := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

		po, err := issuer.Issue(kernel.NewPurchaseOrderID(), s.sales, s.quotes[0], &date, admin)

		require.NoError(t, err)
		assert.Equal(t, date, po.DeliveryDate())
	})

	t.Run("wrong supplier quote", func(t *testing.T) {
		s := acceptedWithPO(t)
		_, err := issuer.Issue(kernel.NewPurchaseOrderID(), s.sales, s.quotes[1], nil, admin)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("pending quote", func(t *testing.T) {
		s := quotedScenario(t)
		_, err := issuer.Issue(kernel.NewPurchaseOrderID(), s.sales, s.quotes[0], nil, admin)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})
}
