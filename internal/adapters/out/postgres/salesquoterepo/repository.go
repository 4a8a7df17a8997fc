package salesquoterepo

import (
	"context"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/history"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/salesquote"

	"gorm.io/gorm"
)

// GormSalesQuoteRepository implements ports.SalesQuoteRepository using GORM.
type GormSalesQuoteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(aggregate history.Source)
}

func NewGormSalesQuoteRepository(db *gorm.DB, tracker aggregateTracker) *GormSalesQuoteRepository {
	return &GormSalesQuoteRepository{db: db, tracker: tracker}
}

func (r *GormSalesQuoteRepository) Add(ctx context.Context, aggregate *salesquote.SalesQuote) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.OnCreate(err, "salesQuote", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormSalesQuoteRepository) Update(ctx context.Context, aggregate *salesquote.SalesQuote) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&SalesQuoteDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "rfq_id", "supplier_quote_id", "customer_id", "created_at").
		Updates(&dto)
	if err := pgutil.OnUpdate(result, "salesQuote", aggregate.ID()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormSalesQuoteRepository) Get(ctx context.Context, id kernel.SalesQuoteID) (*salesquote.SalesQuote, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SalesQuoteDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.OnGet(err, "salesQuote", id)
	}

	return toDomain(dto)
}
