package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetPurchaseOrderFileQueryIsNotConstructed = errors.New(
	"GetPurchaseOrderFileQuery must be created via NewGetPurchaseOrderFileQuery constructor",
)

// GetPurchaseOrderFileQuery resolves the customer purchase order document
// attached to a sales quote.
type GetPurchaseOrderFileQuery struct {
	quoteID kernel.SalesQuoteID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewGetPurchaseOrderFileQuery(quoteID kernel.SalesQuoteID, actor kernel.Actor) (GetPurchaseOrderFileQuery, error) {
	if err := errors.Join(quoteID.Validate(), actor.Validate()); err != nil {
		return GetPurchaseOrderFileQuery{}, err
	}
	return GetPurchaseOrderFileQuery{quoteID: quoteID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPurchaseOrderFileQuery) Validate() error {
	return q.guard.Validate(ErrGetPurchaseOrderFileQueryIsNotConstructed)
}

func (q GetPurchaseOrderFileQuery) QuoteID() kernel.SalesQuoteID { return q.quoteID }
func (q GetPurchaseOrderFileQuery) Actor() kernel.Actor          { return q.actor }

type PurchaseOrderFile struct {
	FileRef string
	Number  string
}
