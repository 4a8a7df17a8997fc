package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/core/domain/model/supplierquote"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetRFQQueryHandler struct {
	db *gorm.DB
}

func NewGetRFQQueryHandler(db *gorm.DB) GetRFQQueryHandler {
	return GetRFQQueryHandler{db: db}
}

// Handle returns ObjectNotFound for an unknown id and NotOwner when the RFQ
// exists but is not visible to the actor.
func (h GetRFQQueryHandler) Handle(ctx context.Context, query GetRFQQuery) (GetRFQQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRFQQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.RFQID()

	response, found, err := h.rfq(db, id)
	if err != nil {
		return GetRFQQueryResponse{}, err
	}
	if !found {
		return GetRFQQueryResponse{}, errs.NewObjectNotFoundError("rfq", id)
	}
	if err = ensureVisible(ctx, h.db, transition.RFQ, id.UUID, query.Actor()); err != nil {
		return GetRFQQueryResponse{}, err
	}

	actor := query.Actor()
	switch actor.Role() {
	case kernel.Admin:
		if response.Suppliers, err = h.suppliers(db, id); err != nil {
			return GetRFQQueryResponse{}, err
		}
		if response.SupplierQuotes, err = h.supplierQuotes(db, id, nil); err != nil {
			return GetRFQQueryResponse{}, err
		}
		if response.SalesQuotes, err = h.salesQuotes(db, id); err != nil {
			return GetRFQQueryResponse{}, err
		}
	case kernel.Customer:
		if response.SalesQuotes, err = h.salesQuotes(db, id); err != nil {
			return GetRFQQueryResponse{}, err
		}
	case kernel.Supplier:
		self := actor.AsSupplier()
		response.Suppliers = []kernel.SupplierID{self}
		if response.SupplierQuotes, err = h.supplierQuotes(db, id, &self); err != nil {
			return GetRFQQueryResponse{}, err
		}
	}

	return response, nil
}

func (h GetRFQQueryHandler) rfq(db *gorm.DB, id kernel.RFQID) (GetRFQQueryResponse, bool, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			owner_id,
			project_name,
			spec_material,
			spec_quantity,
			status,
			origin_order_id,
			created_at,
			spec_grade,
			spec_finishing,
			spec_tolerance,
			spec_manufacturing_process
		FROM rfqs
		WHERE id = ?
	`, id.Bytes()).Rows()
	if err != nil {
		return GetRFQQueryResponse{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return GetRFQQueryResponse{}, false, rows.Err()
	}

	var response GetRFQQueryResponse
	detail := &detailScanner{rows: rows, response: &response}
	if response.RFQSummary, err = scanRFQSummary(detail); err != nil {
		return GetRFQQueryResponse{}, false, err
	}
	return response, true, nil
}

// detailScanner appends the detail columns to the summary scan.
type detailScanner struct {
	rows     rowScanner
	response *GetRFQQueryResponse
}

func (s *detailScanner) Scan(dest ...any) error {
	return s.rows.Scan(append(dest,
		&s.response.Grade,
		&s.response.Finishing,
		&s.response.Tolerance,
		&s.response.ManufacturingProcess,
	)...)
}

func (h GetRFQQueryHandler) suppliers(db *gorm.DB, id kernel.RFQID) ([]kernel.SupplierID, error) {
	var raw []uuid.UUID
	err := db.Table("rfq_suppliers").
		Where("rfq_id = ?", id.Bytes()).
		Order("position").
		Pluck("supplier_id", &raw).Error
	if err != nil {
		return nil, err
	}

	suppliers := make([]kernel.SupplierID, 0, len(raw))
	for _, r := range raw {
		s, idErr := uuidFrom(r)
		if idErr != nil {
			return nil, idErr
		}
		suppliers = append(suppliers, kernel.SupplierID{UUID: s})
	}
	return suppliers, nil
}

func (h GetRFQQueryHandler) supplierQuotes(
	db *gorm.DB,
	id kernel.RFQID,
	only *kernel.SupplierID,
) ([]SupplierQuoteView, error) {
	where, args := "rfq_id = ?", []any{id.Bytes()}
	if only != nil {
		where += " AND supplier_id = ?"
		args = append(args, only.Bytes())
	}

	rows, err := db.Raw(`
		SELECT id, supplier_id, price_amount, price_currency, lead_time_days, status, submitted_at
		FROM supplier_quotes
		WHERE `+where+`
		ORDER BY submitted_at, id
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]SupplierQuoteView, 0)
	for rows.Next() {
		var (
			view           SupplierQuoteView
			rawID, rawSupp uuid.UUID
			amount         decimal.Decimal
			currency       string
			status         string
		)
		if err = rows.Scan(&rawID, &rawSupp, &amount, &currency, &view.LeadTimeDays, &status, &view.SubmittedAt); err != nil {
			return nil, err
		}

		quoteID, idErr := uuidFrom(rawID)
		if idErr != nil {
			return nil, idErr
		}
		supplierID, idErr := uuidFrom(rawSupp)
		if idErr != nil {
			return nil, idErr
		}
		view.ID = kernel.SupplierQuoteID{UUID: quoteID}
		view.SupplierID = kernel.SupplierID{UUID: supplierID}
		view.SubmittedAt = view.SubmittedAt.UTC()

		if view.Price, err = kernel.NewMoney(amount, currency); err != nil {
			return nil, err
		}
		if view.Status, err = supplierquote.StatusFromString(status); err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, rows.Err()
}

func (h GetRFQQueryHandler) salesQuotes(db *gorm.DB, id kernel.RFQID) ([]SalesQuoteView, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			supplier_quote_id,
			amount_amount,
			amount_currency,
			valid_until,
			estimated_delivery,
			status,
			purchase_order_number,
			purchase_order_url IS NOT NULL,
			accepted_at
		FROM sales_quotes
		WHERE rfq_id = ?
		ORDER BY created_at, id
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]SalesQuoteView, 0)
	for rows.Next() {
		var (
			view            SalesQuoteView
			rawID, rawQuote uuid.UUID
			amount          decimal.Decimal
			currency        string
			status          string
			acceptedAt      *time.Time
		)
		if err = rows.Scan(
			&rawID,
			&rawQuote,
			&amount,
			&currency,
			&view.ValidUntil,
			&view.EstimatedDelivery,
			&status,
			&view.PurchaseOrderNumber,
			&view.HasPurchaseOrder,
			&acceptedAt,
		); err != nil {
			return nil, err
		}

		quoteID, idErr := uuidFrom(rawID)
		if idErr != nil {
			return nil, idErr
		}
		supplierQuoteID, idErr := uuidFrom(rawQuote)
		if idErr != nil {
			return nil, idErr
		}
		view.ID = kernel.SalesQuoteID{UUID: quoteID}
		view.SupplierQuoteID = kernel.SupplierQuoteID{UUID: supplierQuoteID}
		view.ValidUntil = view.ValidUntil.UTC()
		view.EstimatedDelivery = view.EstimatedDelivery.UTC()
		if acceptedAt != nil {
			at := acceptedAt.UTC()
			view.AcceptedAt = &at
		}

		if view.Amount, err = kernel.NewMoney(amount, currency); err != nil {
			return nil, err
		}
		if view.Status, err = salesquote.StatusFromString(status); err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, rows.Err()
}
