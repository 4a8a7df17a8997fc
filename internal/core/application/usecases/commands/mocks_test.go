package commands_test

import (
	"context"
	"io"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/history"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/purchaseorder"
	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/core/domain/model/supplierquote"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockRFQRepository struct{ mock.Mock }

func (m *MockRFQRepository) Add(ctx context.Context, r *rfq.RFQ) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRFQRepository) Update(ctx context.Context, r *rfq.RFQ) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRFQRepository) Get(ctx context.Context, id kernel.RFQID) (*rfq.RFQ, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rfq.RFQ), args.Error(1)
}

type MockSupplierQuoteRepository struct{ mock.Mock }

func (m *MockSupplierQuoteRepository) Add(ctx context.Context, q *supplierquote.SupplierQuote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockSupplierQuoteRepository) Update(ctx context.Context, q *supplierquote.SupplierQuote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockSupplierQuoteRepository) Get(
	ctx context.Context,
	id kernel.SupplierQuoteID,
) (*supplierquote.SupplierQuote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*supplierquote.SupplierQuote), args.Error(1)
}

func (m *MockSupplierQuoteRepository) ListByRFQ(
	ctx context.Context,
	rfqID kernel.RFQID,
) ([]*supplierquote.SupplierQuote, error) {
	args := m.Called(ctx, rfqID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*supplierquote.SupplierQuote), args.Error(1)
}

type MockSalesQuoteRepository struct{ mock.Mock }

func (m *MockSalesQuoteRepository) Add(ctx context.Context, q *salesquote.SalesQuote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockSalesQuoteRepository) Update(ctx context.Context, q *salesquote.SalesQuote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockSalesQuoteRepository) Get(ctx context.Context, id kernel.SalesQuoteID) (*salesquote.SalesQuote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesquote.SalesQuote), args.Error(1)
}

type MockPurchaseOrderRepository struct{ mock.Mock }

func (m *MockPurchaseOrderRepository) Add(ctx context.Context, po *purchaseorder.PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Update(ctx context.Context, po *purchaseorder.PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Get(
	ctx context.Context,
	id kernel.PurchaseOrderID,
) (*purchaseorder.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchaseorder.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) GetBySalesQuoteID(
	ctx context.Context,
	id kernel.SalesQuoteID,
) (*purchaseorder.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchaseorder.PurchaseOrder), args.Error(1)
}

type MockSalesOrderRepository struct{ mock.Mock }

func (m *MockSalesOrderRepository) Add(ctx context.Context, o *salesorder.SalesOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Update(ctx context.Context, o *salesorder.SalesOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Get(ctx context.Context, id kernel.SalesOrderID) (*salesorder.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesorder.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) GetByQuoteID(
	ctx context.Context,
	id kernel.SalesQuoteID,
) (*salesorder.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesorder.SalesOrder), args.Error(1)
}

// MockUoW satisfies both commands.UoW and commands.RFQUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) RFQRepository() ports.RFQRepository {
	args := m.Called()
	return args.Get(0).(ports.RFQRepository)
}

func (m *MockUoW) SupplierQuoteRepository() ports.SupplierQuoteRepository {
	args := m.Called()
	return args.Get(0).(ports.SupplierQuoteRepository)
}

func (m *MockUoW) SalesQuoteRepository() ports.SalesQuoteRepository {
	args := m.Called()
	return args.Get(0).(ports.SalesQuoteRepository)
}

func (m *MockUoW) PurchaseOrderRepository() ports.PurchaseOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.PurchaseOrderRepository)
}

func (m *MockUoW) SalesOrderRepository() ports.SalesOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.SalesOrderRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockRFQUoWFactory struct{ mock.Mock }

func (m *MockRFQUoWFactory) Create() commands.RFQUoW {
	args := m.Called()
	return args.Get(0).(commands.RFQUoW)
}

type MockOrderNumberer struct{ mock.Mock }

func (m *MockOrderNumberer) Next(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type MockFileStore struct{ mock.Mock }

func (m *MockFileStore) Upload(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, name, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *MockFileStore) DownloadURL(ctx context.Context, ref string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, ref, ttl)
	return args.String(0), args.Error(1)
}

type MockTransitionOutbox struct{ mock.Mock }

func (m *MockTransitionOutbox) Pending(ctx context.Context, limit int) ([]history.Record, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]history.Record), args.Error(1)
}

func (m *MockTransitionOutbox) MarkPublished(ctx context.Context, ids []kernel.UUID) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

type MockNotificationSink struct{ mock.Mock }

func (m *MockNotificationSink) Publish(ctx context.Context, record history.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// stubUoW wires a MockUoW to the given repositories. Repository getters may
// be called any number of times; Begin and Rollback are expected once per
// unit of work.
func stubUoW(repos ...any) *MockUoW {
	uow := new(MockUoW)
	for _, repo := range repos {
		switch r := repo.(type) {
		case *MockRFQRepository:
			uow.On("RFQRepository").Return(r).Maybe()
		case *MockSupplierQuoteRepository:
			uow.On("SupplierQuoteRepository").Return(r).Maybe()
		case *MockSalesQuoteRepository:
			uow.On("SalesQuoteRepository").Return(r).Maybe()
		case *MockPurchaseOrderRepository:
			uow.On("PurchaseOrderRepository").Return(r).Maybe()
		case *MockSalesOrderRepository:
			uow.On("SalesOrderRepository").Return(r).Maybe()
		}
	}
	return uow
}
