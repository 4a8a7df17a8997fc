package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/salesorder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ListSalesOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListSalesOrdersQueryHandler(db *gorm.DB) ListSalesOrdersQueryHandler {
	return ListSalesOrdersQueryHandler{db: db}
}

// Handle returns orders newest first.
func (h ListSalesOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListSalesOrdersQuery,
) ([]SalesOrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where, args := query.Filter().condition("o.archived_at"), []any{}
	if query.Actor().Role() == kernel.Customer {
		where += " AND o.customer_id = ?"
		args = append(args, query.Actor().ID().Bytes())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.rfq_id,
			o.quote_id,
			o.customer_id,
			r.project_name,
			q.amount_amount,
			q.amount_currency,
			o.status,
			o.payment_status,
			o.tracking_number,
			o.carrier,
			o.paid_at,
			o.archived_at,
			o.created_at
		FROM sales_orders o
		JOIN rfqs r ON r.id = o.rfq_id
		JOIN sales_quotes q ON q.id = o.quote_id
		WHERE `+where+`
		ORDER BY o.created_at DESC, o.order_number DESC
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]SalesOrderSummary, 0)
	for rows.Next() {
		var (
			summary                             SalesOrderSummary
			rawID, rawRFQ, rawQuote, rawCustomer uuid.UUID
			amount                              decimal.Decimal
			currency, status, payment           string
			paidAt, archivedAt                  *time.Time
		)
		if err = rows.Scan(
			&rawID,
			&summary.OrderNumber,
			&rawRFQ,
			&rawQuote,
			&rawCustomer,
			&summary.ProjectName,
			&amount,
			&currency,
			&status,
			&payment,
			&summary.TrackingNumber,
			&summary.Carrier,
			&paidAt,
			&archivedAt,
			&summary.CreatedAt,
		); err != nil {
			return nil, err
		}

		ids := make([]kernel.UUID, 0, 4)
		for _, raw := range []uuid.UUID{rawID, rawRFQ, rawQuote, rawCustomer} {
			id, idErr := uuidFrom(raw)
			if idErr != nil {
				return nil, idErr
			}
			ids = append(ids, id)
		}
		summary.ID = kernel.SalesOrderID{UUID: ids[0]}
		summary.RFQID = kernel.RFQID{UUID: ids[1]}
		summary.QuoteID = kernel.SalesQuoteID{UUID: ids[2]}
		summary.CustomerID = kernel.CustomerID{UUID: ids[3]}
		summary.PaidAt = utc(paidAt)
		summary.ArchivedAt = utc(archivedAt)
		summary.CreatedAt = summary.CreatedAt.UTC()

		if summary.Amount, err = kernel.NewMoney(amount, currency); err != nil {
			return nil, err
		}
		if summary.Status, err = salesorder.StatusFromString(status); err != nil {
			return nil, err
		}
		if summary.PaymentStatus, err = salesorder.PaymentStatusFromString(payment); err != nil {
			return nil, err
		}
		orders = append(orders, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
