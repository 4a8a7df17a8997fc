package supplierquoterepo

import (
	"context"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/history"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/supplierquote"

	"gorm.io/gorm"
)

// GormSupplierQuoteRepository implements ports.SupplierQuoteRepository using GORM.
type GormSupplierQuoteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(aggregate history.Source)
}

func NewGormSupplierQuoteRepository(db *gorm.DB, tracker aggregateTracker) *GormSupplierQuoteRepository {
	return &GormSupplierQuoteRepository{db: db, tracker: tracker}
}

// Add fails with ErrDuplicateCreation when the supplier already bid on the RFQ.
func (r *GormSupplierQuoteRepository) Add(ctx context.Context, aggregate *supplierquote.SupplierQuote) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.OnCreate(err, "supplierQuote", aggregate.RFQID())
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update fails with ErrConcurrentModification when the version moved or a
// second quote of the same RFQ would become accepted.
func (r *GormSupplierQuoteRepository) Update(ctx context.Context, aggregate *supplierquote.SupplierQuote) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).Model(&SupplierQuoteDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "rfq_id", "supplier_id", "submitted_at").
		Updates(&dto)
	if err := pgutil.OnUpdate(result, "supplierQuote", aggregate.ID()); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormSupplierQuoteRepository) Get(
	ctx context.Context,
	id kernel.SupplierQuoteID,
) (*supplierquote.SupplierQuote, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SupplierQuoteDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgutil.OnGet(err, "supplierQuote", id)
	}

	return toDomain(dto)
}

func (r *GormSupplierQuoteRepository) ListByRFQ(
	ctx context.Context,
	rfqID kernel.RFQID,
) ([]*supplierquote.SupplierQuote, error) {
	if err := rfqID.Validate(); err != nil {
		return nil, err
	}

	var dtos []SupplierQuoteDTO
	err := r.db.WithContext(ctx).
		Where("rfq_id = ?", rfqID.Bytes()).
		Order("submitted_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	quotes := make([]*supplierquote.SupplierQuote, 0, len(dtos))
	for _, dto := range dtos {
		q, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}

	return quotes, nil
}
