package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/purchaseorder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListPurchaseOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListPurchaseOrdersQueryHandler(db *gorm.DB) ListPurchaseOrdersQueryHandler {
	return ListPurchaseOrdersQueryHandler{db: db}
}

func (h ListPurchaseOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListPurchaseOrdersQuery,
) ([]PurchaseOrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where, args := query.Filter().condition("archived_at"), []any{}
	if query.Actor().Role() == kernel.Supplier {
		where += " AND supplier_id = ?"
		args = append(args, query.Actor().ID().Bytes())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			sales_quote_id,
			supplier_id,
			total_amount,
			total_currency,
			delivery_date,
			status,
			supplier_invoice_url,
			archived_at,
			created_at
		FROM purchase_orders
		WHERE `+where+`
		ORDER BY created_at DESC, id
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]PurchaseOrderSummary, 0)
	for rows.Next() {
		var (
			summary                      PurchaseOrderSummary
			rawID, rawQuote, rawSupplier uuid.UUID
			amount                       decimal.Decimal
			currency, status             string
			archivedAt                   *time.Time
		)
		if err = rows.Scan(
			&rawID,
			&rawQuote,
			&rawSupplier,
			&amount,
			&currency,
			&summary.DeliveryDate,
			&status,
			&summary.SupplierInvoiceURL,
			&archivedAt,
			&summary.CreatedAt,
		); err != nil {
			return nil, err
		}

		id, idErr := uuidFrom(rawID)
		if idErr != nil {
			return nil, idErr
		}
		quoteID, idErr := uuidFrom(rawQuote)
		if idErr != nil {
			return nil, idErr
		}
		supplierID, idErr := uuidFrom(rawSupplier)
		if idErr != nil {
			return nil, idErr
		}
		summary.ID = kernel.PurchaseOrderID{UUID: id}
		summary.SalesQuoteID = kernel.SalesQuoteID{UUID: quoteID}
		summary.SupplierID = kernel.SupplierID{UUID: supplierID}
		summary.DeliveryDate = summary.DeliveryDate.UTC()
		summary.ArchivedAt = utc(archivedAt)
		summary.CreatedAt = summary.CreatedAt.UTC()

		if summary.Total, err = kernel.NewMoney(amount, currency); err != nil {
			return nil, err
		}
		if summary.Status, err = purchaseorder.StatusFromString(status); err != nil {
			return nil, err
		}
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
