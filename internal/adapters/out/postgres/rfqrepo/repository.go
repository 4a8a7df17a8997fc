package rfqrepo

import (
	"context"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/history"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rfq"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRFQRepository implements ports.RFQRepository using GORM.
type GormRFQRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects aggregates whose transition records the unit of
// work flushes on commit.
type aggregateTracker interface {
	TrackAggregate(aggregate history.Source)
}

func NewGormRFQRepository(db *gorm.DB, tracker aggregateTracker) *GormRFQRepository {
	return &GormRFQRepository{db: db, tracker: tracker}
}

// Add inserts the RFQ together with its supplier set.
func (r *GormRFQRepository) Add(ctx context.Context, aggregate *rfq.RFQ) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgutil.OnCreate(err, "rfq", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update writes the RFQ if its version is unchanged and replaces the
// supplier set.
func (r *GormRFQRepository) Update(ctx context.Context, aggregate *rfq.RFQ) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := db.Model(&RFQDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(&dto)
	if err := pgutil.OnUpdate(result, "rfq", aggregate.ID()); err != nil {
		return err
	}

	if err := db.Where("rfq_id = ?", dto.ID).Delete(&SupplierDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Suppliers) > 0 {
		if err := db.Create(&dto.Suppliers).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func (r *GormRFQRepository) Get(ctx context.Context, id kernel.RFQID) (*rfq.RFQ, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RFQDTO
	err := r.db.WithContext(ctx).
		Preload("Suppliers", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		return nil, pgutil.OnGet(err, "rfq", id)
	}

	return toDomain(dto)
}
