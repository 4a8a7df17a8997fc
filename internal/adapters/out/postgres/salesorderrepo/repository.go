package salesorderrepo

import (
	"context"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/history"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSalesOrderRepository implements ports.SalesOrderRepository using GORM.
// The unique index on quote_id is what makes conversion at-most-once; a
// clash on order_number is a numbering fault and is reported separately.
type GormSalesOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(aggregate history.Source)
}

func NewGormSalesOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db, tracker: tracker}
}

func (r *GormSalesOrderRepository) Add(ctx context.Context, aggregate *salesorder.SalesOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		switch {
		case pgutil.ViolatesUnique(err, QuoteIndex):
			return errs.NewDuplicateCreationError("quoteId", aggregate.QuoteID(), err)
		case pgutil.ViolatesUnique(err, NumberIndex):
			return errs.NewOrderNumberTakenError(aggregate.OrderNumber(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormSalesOrderRepository) Update(ctx context.Context, aggregate *salesorder.SalesOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&SalesOrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "rfq_id", "quote_id", "customer_id", "order_number", "created_at").
		Updates(&dto)
	if err := pgutil.OnUpdate(result, "salesOrder", aggregate.ID()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormSalesOrderRepository) Get(ctx context.Context, id kernel.SalesOrderID) (*salesorder.SalesOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "id = ?", id.Bytes(), "salesOrder", id)
}

func (r *GormSalesOrderRepository) GetByQuoteID(
	ctx context.Context,
	id kernel.SalesQuoteID,
) (*salesorder.SalesOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "quote_id = ?", id.Bytes(), "quoteId", id)
}

func (r *GormSalesOrderRepository) first(
	ctx context.Context,
	where string,
	arg any,
	paramName string,
	id any,
) (*salesorder.SalesOrder, error) {
	var dto SalesOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, where, arg).Error; err != nil {
		return nil, pgutil.OnGet(err, paramName, id)
	}
	return toDomain(dto)
}
