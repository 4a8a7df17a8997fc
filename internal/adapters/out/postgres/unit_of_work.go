// Package postgres provides the GORM-based Entity Store: the unit of work
// binding the lifecycle repositories to one transaction, the schema
// migrations and the order number sequence.
//
// Commit appends the transition records of every aggregate touched through
// the unit of work to the transition log before committing, so the store
// never holds a state change without its history row.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	quote, err := uow.SalesQuoteRepository().Get(ctx, id)
//	// ... apply a transition
//	if err := uow.SalesQuoteRepository().Update(ctx, quote); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"marketplace/internal/adapters/out/postgres/purchaseorderrepo"
	"marketplace/internal/adapters/out/postgres/rfqrepo"
	"marketplace/internal/adapters/out/postgres/salesorderrepo"
	"marketplace/internal/adapters/out/postgres/salesquoterepo"
	"marketplace/internal/adapters/out/postgres/supplierquoterepo"
	"marketplace/internal/adapters/out/postgres/transitionlog"
	"marketplace/internal/core/domain/model/history"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work. Instances are not shared between
// goroutines.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction and the aggregates
// written within it.
type GormUnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	tracked []history.Source
}

// Begin starts the transaction. Calling it twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit appends the pending transition records to the log and commits.
// Records are cleared from the aggregates only after a successful commit.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	var records []history.Record
	for _, source := range uow.tracked {
		records = append(records, source.Records()...)
	}
	if err := transitionlog.Append(ctx, uow.tx, records); err != nil {
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for _, source := range uow.tracked {
		source.ClearRecords()
	}
	uow.tracked = nil
	return nil
}

// Rollback discards the transaction. Without an active transaction it
// returns gorm.ErrInvalidTransaction, which deferred rollbacks ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.tracked = nil
	return err
}

func (uow *GormUnitOfWork) RFQRepository() ports.RFQRepository {
	return rfqrepo.NewGormRFQRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SupplierQuoteRepository() ports.SupplierQuoteRepository {
	return supplierquoterepo.NewGormSupplierQuoteRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SalesQuoteRepository() ports.SalesQuoteRepository {
	return salesquoterepo.NewGormSalesQuoteRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PurchaseOrderRepository() ports.PurchaseOrderRepository {
	return purchaseorderrepo.NewGormPurchaseOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) SalesOrderRepository() ports.SalesOrderRepository {
	return salesorderrepo.NewGormSalesOrderRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate whose records are flushed on commit.
// Tracking the same aggregate twice is harmless.
func (uow *GormUnitOfWork) TrackAggregate(aggregate history.Source) {
	for _, tracked := range uow.tracked {
		if tracked == aggregate {
			return
		}
	}
	uow.tracked = append(uow.tracked, aggregate)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
