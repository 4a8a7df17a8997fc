package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/purchaseorder"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func convertCommand(t *testing.T, quote *salesquote.SalesQuote, by kernel.Actor) commands.ConvertToSalesOrderCommand {
	t.Helper()
	cmd, err := commands.NewConvertToSalesOrderCommand(kernel.NewSalesOrderID(), quote.ID(), by)
	require.NoError(t, err)
	return cmd
}

func TestConvertToSalesOrderCommandHandler_Handle(t *testing.T) {
	notFound := func(quote *salesquote.SalesQuote) error {
		return errs.NewObjectNotFoundError("quoteId", quote.ID())
	}

	t.Run("creates numbered order", func(t *testing.T) {
		ctx := t.Context()
		r, _, quote := acceptedChain(t)
		orderRepo := new(MockSalesOrderRepository)
		quoteRepo := new(MockSalesQuoteRepository)
		rfqRepo := new(MockRFQRepository)
		uow := stubUoW(orderRepo, quoteRepo, rfqRepo)
		numberer := new(MockOrderNumberer)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			orderRepo.On("GetByQuoteID", ctx, quote.ID()).Return(nil, notFound(quote)).Once(),
			quoteRepo.On("Get", ctx, quote.ID()).Return(quote, nil).Once(),
			rfqRepo.On("Get", ctx, r.ID()).Return(r, nil).Once(),
			numberer.On("Next", ctx).Return("SO-000042", nil).Once(),
			orderRepo.On("Add", ctx, mock.AnythingOfType("*salesorder.SalesOrder")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		order, err := commands.NewConvertToSalesOrderCommandHandler(factory, numberer).Handle(ctx, convertCommand(t, quote, admin))

		require.NoError(t, err)
		assert.Equal(t, "SO-000042", order.OrderNumber())
		assert.Equal(t, salesorder.Pending, order.Status())
		assert.Equal(t, quote.ID(), order.QuoteID())
		assert.Equal(t, r.ID(), order.RFQID())
		uow.AssertExpectations(t)
		numberer.AssertExpectations(t)
	})

	t.Run("returns the existing order", func(t *testing.T) {
		ctx := t.Context()
		_, _, quote := acceptedChain(t)
		existing := salesOrderIn(quote, salesorder.Manufacturing, nil)
		orderRepo := new(MockSalesOrderRepository)
		uow := stubUoW(orderRepo)
		uow.On("Begin", ctx).Return(nil).Once()
		orderRepo.On("GetByQuoteID", ctx, quote.ID()).Return(existing, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()
		numberer := new(MockOrderNumberer)

		order, err := commands.NewConvertToSalesOrderCommandHandler(factory, numberer).Handle(ctx, convertCommand(t, quote, admin))

		require.NoError(t, err)
		assert.Same(t, existing, order)
		orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		numberer.AssertNotCalled(t, "Next", mock.Anything)
		uow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("lost race returns the winner", func(t *testing.T) {
		ctx := t.Context()
		r, _, quote := acceptedChain(t)
		winner := salesOrderIn(quote, salesorder.Pending, nil)

		firstOrders := new(MockSalesOrderRepository)
		quoteRepo := new(MockSalesQuoteRepository)
		rfqRepo := new(MockRFQRepository)
		first := stubUoW(firstOrders, quoteRepo, rfqRepo)
		first.On("Begin", ctx).Return(nil).Once()
		first.On("Rollback", ctx).Return(nil).Once()
		firstOrders.On("GetByQuoteID", ctx, quote.ID()).Return(nil, notFound(quote)).Once()
		quoteRepo.On("Get", ctx, quote.ID()).Return(quote, nil).Once()
		rfqRepo.On("Get", ctx, r.ID()).Return(r, nil).Once()
		firstOrders.On("Add", ctx, mock.Anything).
			Return(errs.NewDuplicateCreationError("quoteId", quote.ID(), nil)).Once()

		secondOrders := new(MockSalesOrderRepository)
		second := stubUoW(secondOrders)
		second.On("Begin", ctx).Return(nil).Once()
		second.On("Rollback", ctx).Return(nil).Once()
		secondOrders.On("GetByQuoteID", ctx, quote.ID()).Return(winner, nil).Once()

		numberer := new(MockOrderNumberer)
		numberer.On("Next", ctx).Return("SO-000043", nil).Once()
		factory := new(MockUoWFactory)
		factory.On("Create").Return(first).Once()
		factory.On("Create").Return(second).Once()

		order, err := commands.NewConvertToSalesOrderCommandHandler(factory, numberer).Handle(ctx, convertCommand(t, quote, admin))

		require.NoError(t, err)
		assert.Same(t, winner, order)
		first.AssertNotCalled(t, "Commit", ctx)
		factory.AssertExpectations(t)
	})

	t.Run("quote without purchase order", func(t *testing.T) {
		ctx := t.Context()
		r, sq, _ := acceptedChain(t)
		quote := salesQuoteIn(r, sq, salesquote.Accepted, nil, time.Now().Add(time.Hour))
		orderRepo := new(MockSalesOrderRepository)
		quoteRepo := new(MockSalesQuoteRepository)
		rfqRepo := new(MockRFQRepository)
		uow := stubUoW(orderRepo, quoteRepo, rfqRepo)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		orderRepo.On("GetByQuoteID", ctx, quote.ID()).Return(nil, notFound(quote)).Once()
		quoteRepo.On("Get", ctx, quote.ID()).Return(quote, nil).Once()
		rfqRepo.On("Get", ctx, r.ID()).Return(r, nil).Once()
		numberer := new(MockOrderNumberer)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		_, err := commands.NewConvertToSalesOrderCommandHandler(factory, numberer).Handle(ctx, convertCommand(t, quote, admin))

		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
		orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		numberer.AssertNotCalled(t, "Next", mock.Anything)
	})

	t.Run("order number already taken", func(t *testing.T) {
		ctx := t.Context()
		r, _, quote := acceptedChain(t)
		orderRepo := new(MockSalesOrderRepository)
		quoteRepo := new(MockSalesQuoteRepository)
		rfqRepo := new(MockRFQRepository)
		uow := stubUoW(orderRepo, quoteRepo, rfqRepo)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		orderRepo.On("GetByQuoteID", ctx, quote.ID()).Return(nil, notFound(quote)).Once()
		quoteRepo.On("Get", ctx, quote.ID()).Return(quote, nil).Once()
		rfqRepo.On("Get", ctx, r.ID()).Return(r, nil).Once()
		orderRepo.On("Add", ctx, mock.Anything).
			Return(errs.NewOrderNumberTakenError("SO-000045", nil)).Once()
		numberer := new(MockOrderNumberer)
		numberer.On("Next", ctx).Return("SO-000045", nil).Once()
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		_, err := commands.NewConvertToSalesOrderCommandHandler(factory, numberer).Handle(ctx, convertCommand(t, quote, admin))

		require.ErrorIs(t, err, errs.ErrOrderNumberTaken)
		require.NotErrorIs(t, err, errs.ErrObjectNotFound)
		factory.AssertNumberOfCalls(t, "Create", 1)
		uow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("duplicate without a stored order is not reported as missing", func(t *testing.T) {
		ctx := t.Context()
		r, _, quote := acceptedChain(t)

		firstOrders := new(MockSalesOrderRepository)
		quoteRepo := new(MockSalesQuoteRepository)
		rfqRepo := new(MockRFQRepository)
		first := stubUoW(firstOrders, quoteRepo, rfqRepo)
		first.On("Begin", ctx).Return(nil).Once()
		first.On("Rollback", ctx).Return(nil).Once()
		firstOrders.On("GetByQuoteID", ctx, quote.ID()).Return(nil, notFound(quote)).Once()
		quoteRepo.On("Get", ctx, quote.ID()).Return(quote, nil).Once()
		rfqRepo.On("Get", ctx, r.ID()).Return(r, nil).Once()
		firstOrders.On("Add", ctx, mock.Anything).
			Return(errs.NewDuplicateCreationError("quoteId", quote.ID(), nil)).Once()

		secondOrders := new(MockSalesOrderRepository)
		second := stubUoW(secondOrders)
		second.On("Begin", ctx).Return(nil).Once()
		second.On("Rollback", ctx).Return(nil).Once()
		secondOrders.On("GetByQuoteID", ctx, quote.ID()).Return(nil, notFound(quote)).Once()

		numberer := new(MockOrderNumberer)
		numberer.On("Next", ctx).Return("SO-000046", nil).Once()
		factory := new(MockUoWFactory)
		factory.On("Create").Return(first).Once()
		factory.On("Create").Return(second).Once()

		_, err := commands.NewConvertToSalesOrderCommandHandler(factory, numberer).Handle(ctx, convertCommand(t, quote, admin))

		require.ErrorIs(t, err, errs.ErrDuplicateCreation)
		require.NotErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("customer cannot convert", func(t *testing.T) {
		_, _, quote := acceptedChain(t)
		factory := new(MockUoWFactory)

		_, err := commands.NewConvertToSalesOrderCommandHandler(factory, new(MockOrderNumberer)).
			Handle(t.Context(), convertCommand(t, quote, customer))

		require.ErrorIs(t, err, errs.ErrRoleNotPermitted)
		factory.AssertNotCalled(t, "Create")
	})
}

func TestIssuePurchaseOrderCommandHandler_Handle(t *testing.T) {
	t.Run("issues at the supplier price", func(t *testing.T) {
		ctx := t.Context()
		_, sq, quote := acceptedChain(t)
		poRepo := new(MockPurchaseOrderRepository)
		quoteRepo := new(MockSalesQuoteRepository)
		sqRepo := new(MockSupplierQuoteRepository)
		uow := stubUoW(poRepo, quoteRepo, sqRepo)
		uow.On("Begin", ctx).Return(nil).Once()
		poRepo.On("GetBySalesQuoteID", ctx, quote.ID()).
			Return(nil, errs.NewObjectNotFoundError("salesQuoteId", quote.ID())).Once()
		quoteRepo.On("Get", ctx, quote.ID()).Return(quote, nil).Once()
		sqRepo.On("Get", ctx, sq.ID()).Return(sq, nil).Once()
		poRepo.On("Add", ctx, mock.AnythingOfType("*purchaseorder.PurchaseOrder")).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()
		cmd, err := commands.NewIssuePurchaseOrderCommand(kernel.NewPurchaseOrderID(), quote.ID(), admin, nil)
		require.NoError(t, err)

		po, err := commands.NewIssuePurchaseOrderCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "100.00 USD", po.Total().String())
		assert.Equal(t, supplier.AsSupplier(), po.SupplierID())
		assert.Equal(t, quote.EstimatedDelivery(), po.DeliveryDate())
		assert.Equal(t, purchaseorder.Pending, po.Status())
		uow.AssertExpectations(t)
	})

	t.Run("returns the existing purchase order", func(t *testing.T) {
		ctx := t.Context()
		_, _, quote := acceptedChain(t)
		existing := purchaseOrderIn(quote, purchaseorder.Accepted, nil)
		poRepo := new(MockPurchaseOrderRepository)
		uow := stubUoW(poRepo)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		poRepo.On("GetBySalesQuoteID", ctx, quote.ID()).Return(existing, nil).Once()
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()
		cmd, err := commands.NewIssuePurchaseOrderCommand(kernel.NewPurchaseOrderID(), quote.ID(), admin, nil)
		require.NoError(t, err)

		po, err := commands.NewIssuePurchaseOrderCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Same(t, existing, po)
		poRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})
}

func purchaseOrderUoW(t *testing.T, po *purchaseorder.PurchaseOrder, write bool) (*MockUoWFactory, *MockUoW, *MockPurchaseOrderRepository) {
	t.Helper()
	ctx := t.Context()
	repo := new(MockPurchaseOrderRepository)
	uow := stubUoW(repo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, po.ID()).Return(po, nil).Once()
	if write {
		repo.On("Update", ctx, po).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
	}
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow, repo
}

func TestAdvancePurchaseOrderCommandHandler_Handle(t *testing.T) {
	t.Run("supplier accepts", func(t *testing.T) {
		_, _, quote := acceptedChain(t)
		po := purchaseOrderIn(quote, purchaseorder.Pending, nil)
		factory, uow, _ := purchaseOrderUoW(t, po, true)
		cmd, err := commands.NewAdvancePurchaseOrderCommand(po.ID(), supplier, transition.AcceptPurchaseOrder)
		require.NoError(t, err)

		got, err := commands.NewAdvancePurchaseOrderCommandHandler(factory).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, purchaseorder.Accepted, got.Status())
		uow.AssertExpectations(t)
	})

	t.Run("archived order refuses changes", func(t *testing.T) {
		_, _, quote := acceptedChain(t)
		at := time.Now().UTC()
		po := purchaseOrderIn(quote, purchaseorder.Delivered, &at)
		factory, _, repo := purchaseOrderUoW(t, po, false)
		cmd, err := commands.NewAdvancePurchaseOrderCommand(po.ID(), admin, transition.CancelPurchaseOrder)
		require.NoError(t, err)

		_, err = commands.NewAdvancePurchaseOrderCommandHandler(factory).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrAlreadyArchived)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("archive is not a progression", func(t *testing.T) {
		_, err := commands.NewAdvancePurchaseOrderCommand(kernel.NewPurchaseOrderID(), admin,
			transition.ArchivePurchaseOrder)
		require.ErrorIs(t, err, errs.ErrUnknownTransition)
	})
}

func TestAttachSupplierInvoiceCommandHandler_Handle(t *testing.T) {
	_, _, quote := acceptedChain(t)
	po := purchaseOrderIn(quote, purchaseorder.InProgress, nil)
	factory, uow, _ := purchaseOrderUoW(t, po, true)
	cmd, err := commands.NewAttachSupplierInvoiceCommand(po.ID(), supplier, "invoices/abc.pdf")
	require.NoError(t, err)

	got, err := commands.NewAttachSupplierInvoiceCommandHandler(factory).Handle(t.Context(), cmd)

	require.NoError(t, err)
	require.NotNil(t, got.SupplierInvoiceURL())
	assert.Equal(t, "invoices/abc.pdf", *got.SupplierInvoiceURL())
	assert.Equal(t, purchaseorder.InProgress, got.Status())
	uow.AssertExpectations(t)
}

func salesOrderUoW(t *testing.T, order *salesorder.SalesOrder, write bool) (*MockUoWFactory, *MockUoW, *MockSalesOrderRepository) {
	t.Helper()
	ctx := t.Context()
	repo := new(MockSalesOrderRepository)
	uow := stubUoW(repo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, order.ID()).Return(order, nil).Once()
	if write {
		repo.On("Update", ctx, order).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()
	}
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow, repo
}

func TestAdvanceOrderStatusCommandHandler_Handle(t *testing.T) {
	t.Run("one stage forward", func(t *testing.T) {
		_, _, quote := acceptedChain(t)
		order := salesOrderIn(quote, salesorder.Pending, nil)
		factory, uow, _ := salesOrderUoW(t, order, true)
		cmd, err := commands.NewAdvanceOrderStatusCommand(order.ID(), admin, salesorder.MaterialProcurement, nil)
		require.NoError(t, err)

		got, err := commands.NewAdvanceOrderStatusCommandHandler(factory).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, salesorder.MaterialProcurement, got.Status())
		uow.AssertExpectations(t)
	})

	t.Run("ship with tracking", func(t *testing.T) {
		_, _, quote := acceptedChain(t)
		order := salesOrderIn(quote, salesorder.Packing, nil)
		factory, _, _ := salesOrderUoW(t, order, true)
		shipping, err := salesorder.NewShipping("1Z999", "UPS")
		require.NoError(t, err)
		cmd, err := commands.NewAdvanceOrderStatusCommand(order.ID(), admin, salesorder.Shipped, &shipping)
		require.NoError(t, err)

		got, err := commands.NewAdvanceOrderStatusCommandHandler(factory).Handle(t.Context(), cmd)

		require.NoError(t, err)
		require.NotNil(t, got.Shipping())
		assert.Equal(t, "1Z999", got.Shipping().TrackingNumber())
	})

	t.Run("skipping a stage", func(t *testing.T) {
		_, _, quote := acceptedChain(t)
		order := salesOrderIn(quote, salesorder.Pending, nil)
		factory, _, repo := salesOrderUoW(t, order, false)
		cmd, err := commands.NewAdvanceOrderStatusCommand(order.ID(), admin, salesorder.Manufacturing, nil)
		require.NoError(t, err)

		_, err = commands.NewAdvanceOrderStatusCommandHandler(factory).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrIllegalFromState)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("loser of a race sees the moved order", func(t *testing.T) {
		ctx := t.Context()
		_, _, quote := acceptedChain(t)
		stale := salesOrderIn(quote, salesorder.Pending, nil)
		moved := salesorder.RestoreSalesOrder(stale.ID(), stale.RFQID(), stale.QuoteID(), stale.CustomerID(),
			stale.OrderNumber(), salesorder.MaterialProcurement, salesorder.Unpaid, nil, nil, nil,
			stale.CreatedAt(), time.Now().UTC(), 2)

		firstRepo := new(MockSalesOrderRepository)
		first := stubUoW(firstRepo)
		first.On("Begin", ctx).Return(nil).Once()
		first.On("Rollback", ctx).Return(nil).Once()
		firstRepo.On("Get", ctx, stale.ID()).Return(stale, nil).Once()
		firstRepo.On("Update", ctx, stale).Return(errs.NewConcurrentModificationError("salesOrder", stale.ID())).Once()

		secondRepo := new(MockSalesOrderRepository)
		second := stubUoW(secondRepo)
		second.On("Begin", ctx).Return(nil).Once()
		second.On("Rollback", ctx).Return(nil).Once()
		secondRepo.On("Get", ctx, stale.ID()).Return(moved, nil).Once()

		factory := new(MockUoWFactory)
		factory.On("Create").Return(first).Once()
		factory.On("Create").Return(second).Once()
		cmd, err := commands.NewAdvanceOrderStatusCommand(stale.ID(), admin, salesorder.MaterialProcurement, nil)
		require.NoError(t, err)

		_, err = commands.NewAdvanceOrderStatusCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrIllegalFromState)
		assert.Equal(t, salesorder.MaterialProcurement, moved.Status())
		factory.AssertExpectations(t)
	})
}

func TestMarkPaidCommandHandler_Handle(t *testing.T) {
	t.Run("marks an unpaid order", func(t *testing.T) {
		_, _, quote := acceptedChain(t)
		order := salesOrderIn(quote, salesorder.Manufacturing, nil)
		factory, uow, _ := salesOrderUoW(t, order, true)
		cmd, err := commands.NewMarkPaidCommand(order.ID(), admin)
		require.NoError(t, err)

		got, err := commands.NewMarkPaidCommandHandler(factory).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, salesorder.Paid, got.PaymentStatus())
		assert.NotNil(t, got.PaidAt())
		assert.Equal(t, salesorder.Manufacturing, got.Status())
		uow.AssertExpectations(t)
	})

	t.Run("paid order is left alone", func(t *testing.T) {
		_, _, quote := acceptedChain(t)
		paidAt := time.Now().UTC().Add(-time.Minute)
		src := salesOrderIn(quote, salesorder.Delivered, nil)
		order := salesorder.RestoreSalesOrder(src.ID(), src.RFQID(), src.QuoteID(), src.CustomerID(),
			src.OrderNumber(), salesorder.Delivered, salesorder.Paid, nil, &paidAt, nil,
			src.CreatedAt(), src.UpdatedAt(), 1)
		factory, uow, repo := salesOrderUoW(t, order, false)
		cmd, err := commands.NewMarkPaidCommand(order.ID(), admin)
		require.NoError(t, err)

		got, err := commands.NewMarkPaidCommandHandler(factory).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, &paidAt, got.PaidAt())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}
