package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/core/domain/model/supplierquote"
	"marketplace/internal/pkg/guard"
)

var ErrGetRFQQueryIsNotConstructed = errors.New(
	"GetRFQQuery must be created via NewGetRFQQuery constructor",
)

// GetRFQQuery reads one RFQ with the quotes the actor may see:
//   - admins see every supplier quote and sales quote
//   - the owning customer sees the sales quotes only
//   - an assigned supplier sees its own bid only
type GetRFQQuery struct {
	rfqID kernel.RFQID
	actor kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetRFQQuery(rfqID kernel.RFQID, actor kernel.Actor) (GetRFQQuery, error) {
	if err := errors.Join(rfqID.Validate(), actor.Validate()); err != nil {
		return GetRFQQuery{}, err
	}
	return GetRFQQuery{rfqID: rfqID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetRFQQuery) Validate() error {
	return q.guard.Validate(ErrGetRFQQueryIsNotConstructed)
}

func (q GetRFQQuery) RFQID() kernel.RFQID { return q.rfqID }
func (q GetRFQQuery) Actor() kernel.Actor { return q.actor }

type GetRFQQueryResponse struct {
	RFQSummary

	Grade                string
	Finishing            string
	Tolerance            string
	ManufacturingProcess string
	Suppliers            []kernel.SupplierID
	SupplierQuotes       []SupplierQuoteView
	SalesQuotes          []SalesQuoteView
}

type SupplierQuoteView struct {
	ID           kernel.SupplierQuoteID
	SupplierID   kernel.SupplierID
	Price        kernel.Money
	LeadTimeDays int
	Status       supplierquote.Status
	SubmittedAt  time.Time
}

type SalesQuoteView struct {
	ID                  kernel.SalesQuoteID
	SupplierQuoteID     kernel.SupplierQuoteID
	Amount              kernel.Money
	ValidUntil          time.Time
	EstimatedDelivery   time.Time
	Status              salesquote.Status
	PurchaseOrderNumber *string
	HasPurchaseOrder    bool
	AcceptedAt          *time.Time
}
