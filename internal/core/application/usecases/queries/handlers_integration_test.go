package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/purchaseorder"
	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/core/domain/model/supplierquote"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var (
	admin     = kernel.MustActor(kernel.NewUUID(), kernel.Admin)
	customerA = kernel.MustActor(kernel.NewUUID(), kernel.Customer)
	customerB = kernel.MustActor(kernel.NewUUID(), kernel.Customer)
	supplierA = kernel.MustActor(kernel.NewUUID(), kernel.Supplier)
	supplierB = kernel.MustActor(kernel.NewUUID(), kernel.Supplier)
)

// seeded is one RFQ of a customer with a bid from supplierA and, when
// ordered, an accepted sales quote with its sales and purchase orders.
type seeded struct {
	rfq           *rfq.RFQ
	supplierQuote *supplierquote.SupplierQuote
	salesQuote    *salesquote.SalesQuote
	salesOrder    *salesorder.SalesOrder
	purchaseOrder *purchaseorder.PurchaseOrder
}

type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  *postgres_adapter.GormUnitOfWorkFactory
	orderSeq int
}

func TestQueryHandlersIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *QueryHandlersIntegrationTestSuite) seed(owner kernel.Actor, ordered bool, archivedAt *time.Time) seeded {
	ctx := context.Background()
	spec, err := rfq.NewSpecification("aluminum", "6061", "anodized", "0.1mm", 50, "cnc_machining")
	suite.Require().NoError(err)

	at := time.Now().UTC().Truncate(time.Microsecond)
	status, bidStatus := rfq.SentToSuppliers, supplierquote.Pending
	if ordered {
		status, bidStatus = rfq.Accepted, supplierquote.Accepted
	}

	var s seeded
	s.rfq = rfq.RestoreRFQ(kernel.NewRFQID(), owner.AsCustomer(), "Bracket", spec, status,
		[]kernel.SupplierID{supplierA.AsSupplier()}, nil, at, at, 1)
	s.supplierQuote = supplierquote.RestoreSupplierQuote(kernel.NewSupplierQuoteID(), s.rfq.ID(),
		supplierA.AsSupplier(), kernel.MustMoney("100", "USD"), 10, bidStatus, at, at, 1)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	suite.Require().NoError(uow.RFQRepository().Add(ctx, s.rfq))
	suite.Require().NoError(uow.SupplierQuoteRepository().Add(ctx, s.supplierQuote))

	if ordered {
		ref, refErr := salesquote.NewPurchaseOrderRef("files/po.pdf", "PO-1")
		suite.Require().NoError(refErr)
		terms := salesquote.Terms{
			Amount:            kernel.MustMoney("130", "USD"),
			ValidUntil:        at.AddDate(0, 0, 30),
			EstimatedDelivery: at.AddDate(0, 0, 10),
		}
		s.salesQuote = salesquote.RestoreSalesQuote(kernel.NewSalesQuoteID(), s.rfq.ID(), s.supplierQuote.ID(),
			s.rfq.Owner(), terms, salesquote.Accepted, &ref, "", &at, at, at, 1)

		suite.orderSeq++
		orderStatus := salesorder.Pending
		poStatus := purchaseorder.Pending
		if archivedAt != nil {
			orderStatus, poStatus = salesorder.Delivered, purchaseorder.Delivered
		}
		s.salesOrder = salesorder.RestoreSalesOrder(kernel.NewSalesOrderID(), s.rfq.ID(), s.salesQuote.ID(),
			s.rfq.Owner(), salesorder.FormatNumber(int64(suite.orderSeq)), orderStatus, salesorder.Unpaid,
			nil, nil, archivedAt, at, at, 1)
		s.purchaseOrder = purchaseorder.RestorePurchaseOrder(kernel.NewPurchaseOrderID(), s.salesQuote.ID(),
			supplierA.AsSupplier(), kernel.MustMoney("100", "USD"), at.AddDate(0, 0, 10), poStatus,
			archivedAt, nil, at, at, 1)

		suite.Require().NoError(uow.SalesQuoteRepository().Add(ctx, s.salesQuote))
		suite.Require().NoError(uow.SalesOrderRepository().Add(ctx, s.salesOrder))
		suite.Require().NoError(uow.PurchaseOrderRepository().Add(ctx, s.purchaseOrder))
	}

	suite.Require().NoError(uow.Commit(ctx))
	return s
}

func (suite *QueryHandlersIntegrationTestSuite) listRFQs(actor kernel.Actor) []queries.RFQSummary {
	query, err := queries.NewListRFQsQuery(actor)
	suite.Require().NoError(err)
	result, err := queries.NewListRFQsQueryHandler(suite.database.DB).Handle(context.Background(), query)
	suite.Require().NoError(err)
	return result
}

func (suite *QueryHandlersIntegrationTestSuite) TestListRFQs_ByRole() {
	mine := suite.seed(customerA, false, nil)
	theirs := suite.seed(customerB, false, nil)

	suite.Len(suite.listRFQs(admin), 2)

	own := suite.listRFQs(customerA)
	suite.Require().Len(own, 1)
	suite.Equal(mine.rfq.ID(), own[0].ID)
	suite.Equal(rfq.SentToSuppliers, own[0].Status)
	suite.Equal("aluminum", own[0].Material)

	suite.Len(suite.listRFQs(supplierA), 2, "supplierA is assigned to both")
	suite.Empty(suite.listRFQs(supplierB))
	suite.NotEqual(mine.rfq.ID(), theirs.rfq.ID())
}

func (suite *QueryHandlersIntegrationTestSuite) TestListRFQs_Empty() {
	suite.NotNil(suite.listRFQs(admin))
	suite.Empty(suite.listRFQs(admin))
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetRFQ_Visibility() {
	ctx := context.Background()
	s := suite.seed(customerA, true, nil)
	handler := queries.NewGetRFQQueryHandler(suite.database.DB)

	get := func(actor kernel.Actor) (queries.GetRFQQueryResponse, error) {
		query, err := queries.NewGetRFQQuery(s.rfq.ID(), actor)
		suite.Require().NoError(err)
		return handler.Handle(ctx, query)
	}

	full, err := get(admin)
	suite.Require().NoError(err)
	suite.Equal("cnc_machining", full.ManufacturingProcess)
	suite.Equal([]kernel.SupplierID{supplierA.AsSupplier()}, full.Suppliers)
	suite.Require().Len(full.SupplierQuotes, 1)
	suite.Equal("100.00 USD", full.SupplierQuotes[0].Price.String())
	suite.Require().Len(full.SalesQuotes, 1)
	suite.True(full.SalesQuotes[0].HasPurchaseOrder)

	owner, err := get(customerA)
	suite.Require().NoError(err)
	suite.Empty(owner.SupplierQuotes)
	suite.Len(owner.SalesQuotes, 1)

	bidder, err := get(supplierA)
	suite.Require().NoError(err)
	suite.Len(bidder.SupplierQuotes, 1)
	suite.Empty(bidder.SalesQuotes)

	_, err = get(customerB)
	suite.Require().ErrorIs(err, errs.ErrNotOwner)
	_, err = get(supplierB)
	suite.Require().ErrorIs(err, errs.ErrNotOwner)

	query, err := queries.NewGetRFQQuery(kernel.NewRFQID(), admin)
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListSalesOrders_ArchivePartition() {
	ctx := context.Background()
	archivedAt := time.Now().UTC().Truncate(time.Microsecond)
	active := suite.seed(customerA, true, nil)
	archived := suite.seed(customerA, true, &archivedAt)
	other := suite.seed(customerB, true, nil)
	handler := queries.NewListSalesOrdersQueryHandler(suite.database.DB)

	list := func(actor kernel.Actor, filter queries.ArchiveFilter) []queries.SalesOrderSummary {
		query, err := queries.NewListSalesOrdersQuery(actor, filter)
		suite.Require().NoError(err)
		result, err := handler.Handle(ctx, query)
		suite.Require().NoError(err)
		return result
	}

	activeIDs := map[kernel.SalesOrderID]bool{}
	for _, o := range list(admin, queries.ActiveOnly) {
		suite.False(o.IsArchived())
		activeIDs[o.ID] = true
	}
	archivedList := list(admin, queries.ArchivedOnly)
	for _, o := range archivedList {
		suite.True(o.IsArchived())
		suite.False(activeIDs[o.ID], "archived and active listings are disjoint")
	}
	suite.Len(activeIDs, 2)
	suite.Require().Len(archivedList, 1)
	suite.Equal(archived.salesOrder.ID(), archivedList[0].ID)
	suite.Len(list(admin, queries.AnyArchiveState), 3)

	own := list(customerA, queries.ActiveOnly)
	suite.Require().Len(own, 1)
	suite.Equal(active.salesOrder.ID(), own[0].ID)
	suite.Equal("Bracket", own[0].ProjectName)
	suite.Equal("130.00 USD", own[0].Amount.String())
	suite.Equal(salesorder.Unpaid, own[0].PaymentStatus)
	suite.NotEqual(other.salesOrder.ID(), own[0].ID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestListPurchaseOrders_BySupplier() {
	ctx := context.Background()
	s := suite.seed(customerA, true, nil)
	handler := queries.NewListPurchaseOrdersQueryHandler(suite.database.DB)

	query, err := queries.NewListPurchaseOrdersQuery(supplierA, queries.ActiveOnly)
	suite.Require().NoError(err)
	result, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(s.purchaseOrder.ID(), result[0].ID)
	suite.Equal(purchaseorder.Pending, result[0].Status)

	query, err = queries.NewListPurchaseOrdersQuery(supplierB, queries.ActiveOnly)
	suite.Require().NoError(err)
	result, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *QueryHandlersIntegrationTestSuite) TestHistory_OrderedAndOwned() {
	ctx := context.Background()
	r, err := rfq.NewRFQ(kernel.NewRFQID(), customerA, "Housing",
		func() rfq.Specification {
			spec, specErr := rfq.NewSpecification("steel", "304", "", "", 10, "casting")
			suite.Require().NoError(specErr)
			return spec
		}())
	suite.Require().NoError(err)
	suite.Require().NoError(r.Review(admin))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.RFQRepository().Add(ctx, r))
	suite.Require().NoError(uow.Commit(ctx))

	handler := queries.NewGetHistoryQueryHandler(suite.database.DB)
	query, err := queries.NewGetHistoryQuery(transition.RFQ, r.ID().UUID, customerA)
	suite.Require().NoError(err)
	entries, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)
	suite.Equal(transition.CreateRFQ.String(), entries[0].Transition)
	suite.Equal(transition.ReviewRFQ.String(), entries[1].Transition)
	suite.Equal("submitted", entries[1].From)
	suite.Equal("reviewing", entries[1].To)
	suite.Equal(kernel.Admin, entries[1].ActorRole)
	suite.Less(entries[0].Seq, entries[1].Seq)

	query, err = queries.NewGetHistoryQuery(transition.RFQ, r.ID().UUID, customerB)
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrNotOwner)
}

func (suite *QueryHandlersIntegrationTestSuite) TestPurchaseOrderFile() {
	ctx := context.Background()
	s := suite.seed(customerA, true, nil)
	handler := queries.NewGetPurchaseOrderFileQueryHandler(suite.database.DB)

	query, err := queries.NewGetPurchaseOrderFileQuery(s.salesQuote.ID(), customerA)
	suite.Require().NoError(err)
	file, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal("files/po.pdf", file.FileRef)
	suite.Equal("PO-1", file.Number)

	query, err = queries.NewGetPurchaseOrderFileQuery(s.salesQuote.ID(), customerB)
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrNotOwner)

	query, err = queries.NewGetPurchaseOrderFileQuery(kernel.NewSalesQuoteID(), admin)
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}
