package postgres

import (
	"context"
	"fmt"
	"regexp"

	"marketplace/internal/core/domain/model/salesorder"

	"gorm.io/gorm"
)

// SequenceNumberer allocates order numbers from a database sequence. Numbers
// are unique and increasing; a rolled back conversion leaves a gap.
type SequenceNumberer struct {
	db *gorm.DB
}

func NewSequenceNumberer(db *gorm.DB) *SequenceNumberer {
	return &SequenceNumberer{db: db}
}

func (n *SequenceNumberer) Next(ctx context.Context) (string, error) {
	var next int64
	if err := n.db.WithContext(ctx).Raw("SELECT nextval(?)", OrderNumberSequence).Scan(&next).Error; err != nil {
		return "", err
	}
	return salesorder.FormatNumber(next), nil
}

// Current returns the last number the sequence allocated, or 0 when none was
// issued yet.
func (n *SequenceNumberer) Current(ctx context.Context) (int64, error) {
	var current int64
	err := n.db.WithContext(ctx).
		Raw("SELECT CASE WHEN is_called THEN last_value ELSE 0 END FROM " + OrderNumberSequence).
		Scan(&current).Error
	return current, err
}

// Highest returns the larger of Current and the highest number already held
// by a stored order. Other numberers seed from it so a lost counter never
// reissues a number.
func (n *SequenceNumberer) Highest(ctx context.Context) (int64, error) {
	current, err := n.Current(ctx)
	if err != nil {
		return 0, err
	}
	issued, err := n.issued(ctx)
	if err != nil {
		return 0, err
	}
	return max(current, issued), nil
}

// Sync moves the sequence past every stored order number. It runs when the
// sequence takes over from another numberer.
func (n *SequenceNumberer) Sync(ctx context.Context) error {
	issued, err := n.issued(ctx)
	if err != nil || issued == 0 {
		return err
	}
	stmt := fmt.Sprintf(
		"SELECT setval('%[1]s', GREATEST(?, (SELECT CASE WHEN is_called THEN last_value ELSE 0 END FROM %[1]s)))",
		OrderNumberSequence)
	return n.db.WithContext(ctx).Exec(stmt, issued).Error
}

func (n *SequenceNumberer) issued(ctx context.Context) (int64, error) {
	var highest int64
	err := n.db.WithContext(ctx).
		Raw("SELECT COALESCE(MAX(CAST(SUBSTRING(order_number FROM ?) AS BIGINT)), 0) FROM sales_orders WHERE order_number ~ ?",
			len(salesorder.NumberPrefix)+1, "^"+regexp.QuoteMeta(salesorder.NumberPrefix)+"[0-9]+$").
		Scan(&highest).Error
	return highest, err
}
