package services

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/core/domain/model/supplierquote"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DefaultQuoteValidity is used when no validity period is configured.
const DefaultQuoteValidity = 30 * 24 * time.Hour

var errForeignSupplierQuote = errors.New("supplier quote belongs to another rfq")

// QuotePublisher turns the supplier quote an admin selected into the sales
// quote the customer sees.
//
// Business rules:
//   - the supplier quote must belong to the RFQ and still be pending
//   - amount = supplier price * (1 + markup)
//   - estimated delivery = now + supplier lead time
//   - the RFQ moves to quoted and the supplier quote to accepted
//
// Publishing moves the RFQ out of sent_to_suppliers, so a second publish on
// the same RFQ fails and at most one supplier quote per RFQ is ever accepted.
type QuotePublisher struct {
	validity time.Duration
	now      func() time.Time
}

func NewQuotePublisher(validity time.Duration) QuotePublisher {
	if validity <= 0 {
		validity = DefaultQuoteValidity
	}
	return QuotePublisher{validity: validity, now: time.Now}
}

// WithClock returns a copy using now as its time source.
func (p QuotePublisher) WithClock(now func() time.Time) QuotePublisher {
	p.now = now
	return p
}

// Publish mutates r and selected and returns the new sales quote. validUntil
// overrides the configured validity when set.
func (p QuotePublisher) Publish(
	id kernel.SalesQuoteID,
	r *rfq.RFQ,
	selected *supplierquote.SupplierQuote,
	markup decimal.Decimal,
	validUntil *time.Time,
	by kernel.Actor,
) (*salesquote.SalesQuote, error) {
	if err := errors.Join(r.Validate(), selected.Validate()); err != nil {
		return nil, err
	}
	if selected.RFQID() != r.ID() {
		return nil, errs.NewPreconditionFailedError(transition.RFQ.String(), transition.PublishQuote.String(),
			fmt.Errorf("%w: %s", errForeignSupplierQuote, selected.ID()))
	}

	terms, err := p.price(selected, markup, validUntil)
	if err != nil {
		return nil, err
	}

	if err = r.PublishQuote(by); err != nil {
		return nil, err
	}
	if err = selected.Select(by); err != nil {
		return nil, err
	}

	return salesquote.NewSalesQuote(id, r.ID(), selected.ID(), r.Owner(), terms, by)
}

func (p QuotePublisher) price(
	selected *supplierquote.SupplierQuote,
	markup decimal.Decimal,
	validUntil *time.Time,
) (salesquote.Terms, error) {
	amount, err := selected.Price().WithMarkup(markup)
	if err != nil {
		return salesquote.Terms{}, err
	}

	now := p.now().UTC()
	until := now.Add(p.validity)
	if validUntil != nil {
		until = validUntil.UTC()
	}

	return salesquote.Terms{
		Amount:            amount,
		ValidUntil:        until,
		EstimatedDelivery: now.AddDate(0, 0, selected.LeadTimeDays()),
	}, nil
}
