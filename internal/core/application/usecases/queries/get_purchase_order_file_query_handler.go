package queries

import (
	"context"

	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetPurchaseOrderFileQueryHandler struct {
	db *gorm.DB
}

func NewGetPurchaseOrderFileQueryHandler(db *gorm.DB) GetPurchaseOrderFileQueryHandler {
	return GetPurchaseOrderFileQueryHandler{db: db}
}

func (h GetPurchaseOrderFileQueryHandler) Handle(
	ctx context.Context,
	query GetPurchaseOrderFileQuery,
) (PurchaseOrderFile, error) {
	if err := query.Validate(); err != nil {
		return PurchaseOrderFile{}, err
	}

	var row struct {
		PurchaseOrderURL    *string
		PurchaseOrderNumber *string
	}
	result := h.db.WithContext(ctx).
		Table("sales_quotes").
		Select("purchase_order_url, purchase_order_number").
		Where("id = ?", query.QuoteID().Bytes()).
		Limit(1).
		Scan(&row)
	if result.Error != nil {
		return PurchaseOrderFile{}, result.Error
	}
	if result.RowsAffected == 0 {
		return PurchaseOrderFile{}, errs.NewObjectNotFoundError("salesQuote", query.QuoteID())
	}
	if err := ensureVisible(ctx, h.db, transition.SalesQuote, query.QuoteID().UUID, query.Actor()); err != nil {
		return PurchaseOrderFile{}, err
	}
	if row.PurchaseOrderURL == nil {
		return PurchaseOrderFile{}, errs.NewObjectNotFoundError("purchaseOrder", query.QuoteID())
	}

	file := PurchaseOrderFile{FileRef: *row.PurchaseOrderURL}
	if row.PurchaseOrderNumber != nil {
		file.Number = *row.PurchaseOrderNumber
	}
	return file, nil
}
