package purchaseorderrepo

import (
	"context"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/history"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/purchaseorder"

	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements ports.PurchaseOrderRepository using GORM.
type GormPurchaseOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(aggregate history.Source)
}

func NewGormPurchaseOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db, tracker: tracker}
}

// Add fails with ErrDuplicateCreation when the sales quote already has a
// purchase order.
func (r *GormPurchaseOrderRepository) Add(ctx context.Context, aggregate *purchaseorder.PurchaseOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.OnCreate(err, "salesQuoteId", aggregate.SalesQuoteID())
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormPurchaseOrderRepository) Update(ctx context.Context, aggregate *purchaseorder.PurchaseOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&PurchaseOrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "sales_quote_id", "supplier_id", "created_at").
		Updates(&dto)
	if err := pgutil.OnUpdate(result, "purchaseOrder", aggregate.ID()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormPurchaseOrderRepository) Get(
	ctx context.Context,
	id kernel.PurchaseOrderID,
) (*purchaseorder.PurchaseOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "id = ?", id.Bytes(), "purchaseOrder", id)
}

func (r *GormPurchaseOrderRepository) GetBySalesQuoteID(
	ctx context.Context,
	id kernel.SalesQuoteID,
) (*purchaseorder.PurchaseOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "sales_quote_id = ?", id.Bytes(), "salesQuoteId", id)
}

func (r *GormPurchaseOrderRepository) first(
	ctx context.Context,
	where string,
	arg any,
	paramName string,
	id any,
) (*purchaseorder.PurchaseOrder, error) {
	var dto PurchaseOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, where, arg).Error; err != nil {
		return nil, pgutil.OnGet(err, paramName, id)
	}
	return toDomain(dto)
}
