// Package history holds the transition records aggregates collect while they
// change. The unit of work persists them in the same transaction as the
// aggregate, so an applied transition is never lost and never recorded twice.
package history

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transition"
)

// Record is one applied transition.
type Record struct {
	ID         kernel.UUID
	Entity     transition.EntityType
	EntityID   kernel.UUID
	Transition transition.Name
	From       string
	To         string
	Actor      kernel.Actor
	Override   bool
	Note       string
	OccurredAt time.Time
}

// Recorder is embedded by aggregates. It is not safe for concurrent use, in
// line with the aggregates that embed it.
type Recorder struct {
	records []Record
}

// Record appends r, filling in its id and timestamp when missing.
func (r *Recorder) Record(rec Record) {
	if rec.ID.IsZero() {
		rec.ID = kernel.NewUUID()
	}
	if rec.OccurredAt.IsZero() {
		rec.OccurredAt = time.Now().UTC()
	}
	r.records = append(r.records, rec)
}

// Records returns the pending records in the order they were applied.
func (r *Recorder) Records() []Record {
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out
}

// ClearRecords drops pending records once they are persisted.
func (r *Recorder) ClearRecords() {
	r.records = nil
}

// Source is implemented by every aggregate that embeds a Recorder.
type Source interface {
	Records() []Record
	ClearRecords()
}
