package http

import (
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/purchaseorder"
	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/core/domain/model/supplierquote"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/core/domain/services"
)

// Requests

type SpecificationBody struct {
	Material             string `json:"material"`
	Grade                string `json:"grade"`
	Finishing            string `json:"finishing"`
	Tolerance            string `json:"tolerance"`
	Quantity             int    `json:"quantity"`
	ManufacturingProcess string `json:"manufacturingProcess"`
}

type CreateRFQRequest struct {
	ProjectName   string            `json:"projectName"`
	Specification SpecificationBody `json:"specification"`
}

type AssignSuppliersRequest struct {
	SupplierIDs []string `json:"supplierIds"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type SubmitSupplierQuoteRequest struct {
	Price        Money `json:"price"`
	LeadTimeDays int   `json:"leadTimeDays"`
}

type PublishSalesQuoteRequest struct {
	SupplierQuoteID string     `json:"supplierQuoteId"`
	Markup          string     `json:"markup"`
	ValidUntil      *time.Time `json:"validUntil"`
}

type AttachPurchaseOrderRequest struct {
	FileRef  string `json:"fileRef"`
	PONumber string `json:"poNumber"`
}

type OverrideQuoteStatusRequest struct {
	Target string `json:"target"`
	Note   string `json:"note"`
}

type IssuePurchaseOrderRequest struct {
	DeliveryDate *time.Time `json:"deliveryDate"`
}

type PurchaseOrderTransitionRequest struct {
	Transition string `json:"transition"`
}

type AttachInvoiceRequest struct {
	FileRef string `json:"fileRef"`
}

type AdvanceOrderStatusRequest struct {
	Status          string `json:"status"`
	TrackingNumber  string `json:"trackingNumber"`
	ShippingCarrier string `json:"shippingCarrier"`
}

// Responses

type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func toMoney(m kernel.Money) Money {
	return Money{Amount: m.Amount().StringFixed(2), Currency: m.Currency()}
}

// presenter renders lifecycle entities for one caller. Each rendering lists
// the transitions the caller's role may apply from the current state, which
// is what clients use to decide which actions to offer. Preconditions are
// checked only when the transition is attempted.
type presenter struct {
	lifecycle services.LifecycleValidator
	role      kernel.Role
}

func (s *Server) present(actor kernel.Actor) presenter {
	return presenter{lifecycle: s.lifecycle, role: actor.Role()}
}

var reopenVia = map[transition.EntityType]transition.Name{
	transition.SalesOrder:    transition.ReopenSalesOrder,
	transition.PurchaseOrder: transition.ReopenPurchaseOrder,
}

// actions offers only the reopen transition for an archived entity and never
// offers it for an active one.
func (p presenter) actions(entity transition.EntityType, status string, archivedAt *time.Time) []string {
	out := []string{}
	reopen, archivable := reopenVia[entity]
	for _, via := range p.lifecycle.Available(entity, status, p.role) {
		if archivable && (via == reopen) != (archivedAt != nil) {
			continue
		}
		out = append(out, via.String())
	}
	return out
}

type RFQResponse struct {
	ID            string            `json:"id"`
	OwnerID       string            `json:"ownerId"`
	ProjectName   string            `json:"projectName"`
	Specification SpecificationBody `json:"specification"`
	Status        string            `json:"status"`
	Suppliers     []string          `json:"suppliers"`
	OriginOrderID *string           `json:"originOrderId,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`

	AvailableTransitions []string `json:"availableTransitions"`
}

func (p presenter) rfq(r *rfq.RFQ) RFQResponse {
	spec := r.Specification()
	resp := RFQResponse{
		ID:          r.ID().String(),
		OwnerID:     r.Owner().String(),
		ProjectName: r.ProjectName(),
		Specification: SpecificationBody{
			Material:             spec.Material(),
			Grade:                spec.Grade(),
			Finishing:            spec.Finishing(),
			Tolerance:            spec.Tolerance(),
			Quantity:             spec.Quantity(),
			ManufacturingProcess: spec.ManufacturingProcess(),
		},
		Status:               r.Status().String(),
		Suppliers:            supplierStrings(r.Suppliers()),
		CreatedAt:            r.CreatedAt(),
		AvailableTransitions: p.actions(transition.RFQ, r.Status().String(), nil),
	}
	if origin := r.OriginOrderID(); origin != nil {
		s := origin.String()
		resp.OriginOrderID = &s
	}
	return resp
}

type RFQSummaryResponse struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"ownerId"`
	ProjectName   string    `json:"projectName"`
	Material      string    `json:"material"`
	Quantity      int       `json:"quantity"`
	Status        string    `json:"status"`
	OriginOrderID *string   `json:"originOrderId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`

	AvailableTransitions []string `json:"availableTransitions"`
}

func (p presenter) rfqSummary(s queries.RFQSummary) RFQSummaryResponse {
	resp := RFQSummaryResponse{
		ID:          s.ID.String(),
		OwnerID:     s.OwnerID.String(),
		ProjectName: s.ProjectName,
		Material:    s.Material,
		Quantity:    s.Quantity,
		Status:      s.Status.String(),
		CreatedAt:   s.CreatedAt,

		AvailableTransitions: p.actions(transition.RFQ, s.Status.String(), nil),
	}
	if s.OriginOrderID != nil {
		id := s.OriginOrderID.String()
		resp.OriginOrderID = &id
	}
	return resp
}

type RFQDetailResponse struct {
	RFQSummaryResponse
	Grade                string                  `json:"grade"`
	Finishing            string                  `json:"finishing"`
	Tolerance            string                  `json:"tolerance"`
	ManufacturingProcess string                  `json:"manufacturingProcess"`
	Suppliers            []string                `json:"suppliers"`
	SupplierQuotes       []SupplierQuoteResponse `json:"supplierQuotes"`
	SalesQuotes          []SalesQuoteResponse    `json:"salesQuotes"`
}

func (p presenter) rfqDetail(d queries.GetRFQQueryResponse) RFQDetailResponse {
	resp := RFQDetailResponse{
		RFQSummaryResponse:   p.rfqSummary(d.RFQSummary),
		Grade:                d.Grade,
		Finishing:            d.Finishing,
		Tolerance:            d.Tolerance,
		ManufacturingProcess: d.ManufacturingProcess,
		Suppliers:            supplierStrings(d.Suppliers),
		SupplierQuotes:       make([]SupplierQuoteResponse, 0, len(d.SupplierQuotes)),
		SalesQuotes:          make([]SalesQuoteResponse, 0, len(d.SalesQuotes)),
	}
	for _, q := range d.SupplierQuotes {
		resp.SupplierQuotes = append(resp.SupplierQuotes, SupplierQuoteResponse{
			ID:           q.ID.String(),
			RFQID:        d.ID.String(),
			SupplierID:   q.SupplierID.String(),
			Price:        toMoney(q.Price),
			LeadTimeDays: q.LeadTimeDays,
			Status:       q.Status.String(),
			SubmittedAt:  q.SubmittedAt,

			AvailableTransitions: p.actions(transition.SupplierQuote, q.Status.String(), nil),
		})
	}
	for _, q := range d.SalesQuotes {
		resp.SalesQuotes = append(resp.SalesQuotes, SalesQuoteResponse{
			ID:                  q.ID.String(),
			RFQID:               d.ID.String(),
			SupplierQuoteID:     q.SupplierQuoteID.String(),
			Amount:              toMoney(q.Amount),
			ValidUntil:          q.ValidUntil,
			EstimatedDelivery:   q.EstimatedDelivery,
			Status:              q.Status.String(),
			HasPurchaseOrder:    q.HasPurchaseOrder,
			PurchaseOrderNumber: q.PurchaseOrderNumber,
			AcceptedAt:          q.AcceptedAt,

			AvailableTransitions: p.actions(transition.SalesQuote, q.Status.String(), nil),
		})
	}
	return resp
}

type SupplierQuoteResponse struct {
	ID           string    `json:"id"`
	RFQID        string    `json:"rfqId"`
	SupplierID   string    `json:"supplierId"`
	Price        Money     `json:"price"`
	LeadTimeDays int       `json:"leadTimeDays"`
	Status       string    `json:"status"`
	SubmittedAt  time.Time `json:"submittedAt"`

	AvailableTransitions []string `json:"availableTransitions"`
}

func (p presenter) supplierQuote(q *supplierquote.SupplierQuote) SupplierQuoteResponse {
	return SupplierQuoteResponse{
		ID:           q.ID().String(),
		RFQID:        q.RFQID().String(),
		SupplierID:   q.SupplierID().String(),
		Price:        toMoney(q.Price()),
		LeadTimeDays: q.LeadTimeDays(),
		Status:       q.Status().String(),
		SubmittedAt:  q.SubmittedAt(),

		AvailableTransitions: p.actions(transition.SupplierQuote, q.Status().String(), nil),
	}
}

type SalesQuoteResponse struct {
	ID                  string     `json:"id"`
	RFQID               string     `json:"rfqId"`
	SupplierQuoteID     string     `json:"supplierQuoteId"`
	Amount              Money      `json:"amount"`
	ValidUntil          time.Time  `json:"validUntil"`
	EstimatedDelivery   time.Time  `json:"estimatedDelivery"`
	Status              string     `json:"status"`
	HasPurchaseOrder    bool       `json:"hasPurchaseOrder"`
	PurchaseOrderNumber *string    `json:"purchaseOrderNumber,omitempty"`
	AcceptedAt          *time.Time `json:"acceptedAt,omitempty"`

	AvailableTransitions []string `json:"availableTransitions"`
}

func (p presenter) salesQuote(q *salesquote.SalesQuote) SalesQuoteResponse {
	resp := SalesQuoteResponse{
		ID:                q.ID().String(),
		RFQID:             q.RFQID().String(),
		SupplierQuoteID:   q.SupplierQuoteID().String(),
		Amount:            toMoney(q.Amount()),
		ValidUntil:        q.ValidUntil(),
		EstimatedDelivery: q.EstimatedDelivery(),
		Status:            q.Status().String(),
		AcceptedAt:        q.AcceptedAt(),

		AvailableTransitions: p.actions(transition.SalesQuote, q.Status().String(), nil),
	}
	if po := q.PurchaseOrder(); po != nil {
		number := po.Number()
		resp.HasPurchaseOrder = true
		resp.PurchaseOrderNumber = &number
	}
	return resp
}

type SalesOrderResponse struct {
	ID              string     `json:"id"`
	OrderNumber     string     `json:"orderNumber"`
	RFQID           string     `json:"rfqId"`
	QuoteID         string     `json:"quoteId"`
	CustomerID      string     `json:"customerId"`
	Status          string     `json:"status"`
	PaymentStatus   string     `json:"paymentStatus"`
	TrackingNumber  *string    `json:"trackingNumber,omitempty"`
	ShippingCarrier *string    `json:"shippingCarrier,omitempty"`
	PaidAt          *time.Time `json:"paidAt,omitempty"`
	ArchivedAt      *time.Time `json:"archivedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`

	AvailableTransitions []string `json:"availableTransitions"`
}

func (p presenter) salesOrder(o *salesorder.SalesOrder) SalesOrderResponse {
	resp := SalesOrderResponse{
		ID:            o.ID().String(),
		OrderNumber:   o.OrderNumber(),
		RFQID:         o.RFQID().String(),
		QuoteID:       o.QuoteID().String(),
		CustomerID:    o.CustomerID().String(),
		Status:        o.Status().String(),
		PaymentStatus: o.PaymentStatus().String(),
		PaidAt:        o.PaidAt(),
		ArchivedAt:    o.ArchivedAt(),
		CreatedAt:     o.CreatedAt(),

		AvailableTransitions: p.actions(transition.SalesOrder, o.Status().String(), o.ArchivedAt()),
	}
	if s := o.Shipping(); s != nil {
		tracking, carrier := s.TrackingNumber(), s.Carrier()
		resp.TrackingNumber = &tracking
		resp.ShippingCarrier = &carrier
	}
	return resp
}

type SalesOrderSummaryResponse struct {
	SalesOrderResponse
	ProjectName string `json:"projectName"`
	Amount      Money  `json:"amount"`
}

func (p presenter) salesOrderSummary(s queries.SalesOrderSummary) SalesOrderSummaryResponse {
	return SalesOrderSummaryResponse{
		SalesOrderResponse: SalesOrderResponse{
			ID:              s.ID.String(),
			OrderNumber:     s.OrderNumber,
			RFQID:           s.RFQID.String(),
			QuoteID:         s.QuoteID.String(),
			CustomerID:      s.CustomerID.String(),
			Status:          s.Status.String(),
			PaymentStatus:   s.PaymentStatus.String(),
			TrackingNumber:  s.TrackingNumber,
			ShippingCarrier: s.Carrier,
			PaidAt:          s.PaidAt,
			ArchivedAt:      s.ArchivedAt,
			CreatedAt:       s.CreatedAt,

			AvailableTransitions: p.actions(transition.SalesOrder, s.Status.String(), s.ArchivedAt),
		},
		ProjectName: s.ProjectName,
		Amount:      toMoney(s.Amount),
	}
}

type PurchaseOrderResponse struct {
	ID                 string     `json:"id"`
	SalesQuoteID       string     `json:"salesQuoteId"`
	SupplierID         string     `json:"supplierId"`
	Total              Money      `json:"total"`
	DeliveryDate       time.Time  `json:"deliveryDate"`
	Status             string     `json:"status"`
	SupplierInvoiceRef *string    `json:"supplierInvoiceRef,omitempty"`
	ArchivedAt         *time.Time `json:"archivedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`

	AvailableTransitions []string `json:"availableTransitions"`
}

func (p presenter) purchaseOrder(po *purchaseorder.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:                 po.ID().String(),
		SalesQuoteID:       po.SalesQuoteID().String(),
		SupplierID:         po.SupplierID().String(),
		Total:              toMoney(po.Total()),
		DeliveryDate:       po.DeliveryDate(),
		Status:             po.Status().String(),
		SupplierInvoiceRef: po.SupplierInvoiceURL(),
		ArchivedAt:         po.ArchivedAt(),
		CreatedAt:          po.CreatedAt(),

		AvailableTransitions: p.actions(transition.PurchaseOrder, po.Status().String(), po.ArchivedAt()),
	}
}

func (p presenter) purchaseOrderSummary(s queries.PurchaseOrderSummary) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:                 s.ID.String(),
		SalesQuoteID:       s.SalesQuoteID.String(),
		SupplierID:         s.SupplierID.String(),
		Total:              toMoney(s.Total),
		DeliveryDate:       s.DeliveryDate,
		Status:             s.Status.String(),
		SupplierInvoiceRef: s.SupplierInvoiceURL,
		ArchivedAt:         s.ArchivedAt,
		CreatedAt:          s.CreatedAt,

		AvailableTransitions: p.actions(transition.PurchaseOrder, s.Status.String(), s.ArchivedAt),
	}
}

type ArchiveStateResponse struct {
	EntityType string     `json:"entityType"`
	ID         string     `json:"id"`
	Status     string     `json:"status"`
	Archived   bool       `json:"archived"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
}

func toArchiveStateResponse(s commands.ArchiveState) ArchiveStateResponse {
	return ArchiveStateResponse{
		EntityType: s.Entity.String(),
		ID:         s.ID.String(),
		Status:     s.Status,
		Archived:   s.IsArchived(),
		ArchivedAt: s.ArchivedAt,
	}
}

type HistoryEntryResponse struct {
	ID         string    `json:"id"`
	Seq        int64     `json:"seq"`
	Transition string    `json:"transition"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ActorID    string    `json:"actorId"`
	ActorRole  string    `json:"actorRole"`
	Override   bool      `json:"override"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func toHistoryEntry(e queries.HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:         e.ID.String(),
		Seq:        e.Seq,
		Transition: e.Transition,
		From:       e.From,
		To:         e.To,
		ActorID:    e.ActorID.String(),
		ActorRole:  e.ActorRole.String(),
		Override:   e.Override,
		Note:       e.Note,
		OccurredAt: e.OccurredAt,
	}
}

type FileResponse struct {
	FileRef string `json:"fileRef"`
}

func supplierStrings(ids []kernel.SupplierID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
