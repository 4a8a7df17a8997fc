package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rfq"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListRFQsQueryHandler struct {
	db *gorm.DB
}

func NewListRFQsQueryHandler(db *gorm.DB) ListRFQsQueryHandler {
	return ListRFQsQueryHandler{db: db}
}

func (h ListRFQsQueryHandler) Handle(ctx context.Context, query ListRFQsQuery) ([]RFQSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where, args := "TRUE", []any{}
	switch query.Actor().Role() {
	case kernel.Customer:
		where, args = "owner_id = ?", []any{query.Actor().ID().Bytes()}
	case kernel.Supplier:
		where = "EXISTS (SELECT 1 FROM rfq_suppliers s WHERE s.rfq_id = rfqs.id AND s.supplier_id = ?)"
		args = []any{query.Actor().ID().Bytes()}
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			owner_id,
			project_name,
			spec_material,
			spec_quantity,
			status,
			origin_order_id,
			created_at
		FROM rfqs
		WHERE `+where+`
		ORDER BY created_at DESC, id
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]RFQSummary, 0)
	for rows.Next() {
		summary, scanErr := scanRFQSummary(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		result = append(result, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRFQSummary(rows rowScanner) (RFQSummary, error) {
	var (
		summary     RFQSummary
		id, ownerID uuid.UUID
		originID    *uuid.UUID
		status      string
	)
	if err := rows.Scan(
		&id,
		&ownerID,
		&summary.ProjectName,
		&summary.Material,
		&summary.Quantity,
		&status,
		&originID,
		&summary.CreatedAt,
	); err != nil {
		return RFQSummary{}, err
	}

	rfqID, err := uuidFrom(id)
	if err != nil {
		return RFQSummary{}, err
	}
	owner, err := uuidFrom(ownerID)
	if err != nil {
		return RFQSummary{}, err
	}
	summary.ID = kernel.RFQID{UUID: rfqID}
	summary.OwnerID = kernel.CustomerID{UUID: owner}

	if summary.Status, err = rfq.StatusFromString(status); err != nil {
		return RFQSummary{}, err
	}
	if originID != nil {
		origin, originErr := uuidFrom(*originID)
		if originErr != nil {
			return RFQSummary{}, originErr
		}
		summary.OriginOrderID = &kernel.SalesOrderID{UUID: origin}
	}
	summary.CreatedAt = summary.CreatedAt.UTC()
	return summary, nil
}
