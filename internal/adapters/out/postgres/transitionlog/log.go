package transitionlog

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/history"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Append writes records through db, which is expected to be the
// transaction the aggregate changes are written in.
func Append(ctx context.Context, db *gorm.DB, records []history.Record) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]RecordDTO, 0, len(records))
	for _, r := range records {
		rows = append(rows, fromRecord(r))
	}
	return db.WithContext(ctx).Create(&rows).Error
}

// Outbox implements ports.TransitionOutbox on the transition log.
type Outbox struct {
	db  *gorm.DB
	now func() time.Time
}

func NewOutbox(db *gorm.DB) *Outbox {
	return &Outbox{db: db, now: time.Now}
}

// Pending returns up to limit unpublished records, oldest first.
func (o *Outbox) Pending(ctx context.Context, limit int) ([]history.Record, error) {
	var rows []RecordDTO
	err := o.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("seq").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]history.Record, 0, len(rows))
	for _, row := range rows {
		r, err := toRecord(row)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// MarkPublished stamps the given records. Already stamped rows keep their
// first publication time.
func (o *Outbox) MarkPublished(ctx context.Context, ids []kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return o.db.WithContext(ctx).
		Model(&RecordDTO{}).
		Where("id IN ? AND published_at IS NULL", raw).
		Update("published_at", o.now().UTC()).Error
}
