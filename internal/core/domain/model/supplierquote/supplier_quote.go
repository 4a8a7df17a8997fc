package supplierquote

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/history"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"
)

// MaxLeadTimeDays bounds a supplier's promised lead time.
const MaxLeadTimeDays = 365

var ErrSupplierQuoteIsNotConstructed = errors.New("SupplierQuote must be created via NewSupplierQuote constructor")

type SupplierQuote struct {
	history.Recorder

	id           kernel.SupplierQuoteID
	rfqID        kernel.RFQID
	supplierID   kernel.SupplierID
	price        kernel.Money
	leadTimeDays int
	status       Status
	submittedAt  time.Time
	updatedAt    time.Time
	version      int

	isConstructed bool
}

// NewSupplierQuote creates a pending bid by the acting supplier. Whether the
// supplier was assigned to the RFQ is checked by the caller, which holds the RFQ.
func NewSupplierQuote(
	id kernel.SupplierQuoteID,
	rfqID kernel.RFQID,
	by kernel.Actor,
	price kernel.Money,
	leadTimeDays int,
) (*SupplierQuote, error) {
	if err := by.Validate(); err != nil {
		return nil, err
	}
	if err := transition.Authorize(transition.SupplierQuote, transition.SubmitSupplierQuote, by.Role()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	q := &SupplierQuote{
		supplierID:    by.AsSupplier(),
		status:        Pending,
		submittedAt:   now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		q.setID(id),
		q.setRFQID(rfqID),
		q.setPrice(price),
		q.setLeadTime(leadTimeDays),
	); err != nil {
		return nil, err
	}

	q.Record(history.Record{
		Entity:     transition.SupplierQuote,
		EntityID:   q.id.UUID,
		Transition: transition.SubmitSupplierQuote,
		To:         Pending.String(),
		Actor:      by,
		OccurredAt: now,
	})
	return q, nil
}

func RestoreSupplierQuote(
	id kernel.SupplierQuoteID,
	rfqID kernel.RFQID,
	supplierID kernel.SupplierID,
	price kernel.Money,
	leadTimeDays int,
	status Status,
	submittedAt, updatedAt time.Time,
	version int,
) *SupplierQuote {
	return &SupplierQuote{
		id:            id,
		rfqID:         rfqID,
		supplierID:    supplierID,
		price:         price,
		leadTimeDays:  leadTimeDays,
		status:        status,
		submittedAt:   submittedAt,
		updatedAt:     updatedAt,
		version:       version,
		isConstructed: true,
	}
}

func (q *SupplierQuote) Validate() error {
	if q == nil || !q.isConstructed {
		return ErrSupplierQuoteIsNotConstructed
	}
	return nil
}

func (q *SupplierQuote) ID() kernel.SupplierQuoteID    { return q.id }
func (q *SupplierQuote) RFQID() kernel.RFQID           { return q.rfqID }
func (q *SupplierQuote) SupplierID() kernel.SupplierID { return q.supplierID }
func (q *SupplierQuote) Price() kernel.Money           { return q.price }
func (q *SupplierQuote) LeadTimeDays() int             { return q.leadTimeDays }
func (q *SupplierQuote) Status() Status                { return q.status }
func (q *SupplierQuote) SubmittedAt() time.Time        { return q.submittedAt }
func (q *SupplierQuote) UpdatedAt() time.Time          { return q.updatedAt }
func (q *SupplierQuote) Version() int                  { return q.version }

// Select accepts the quote as the basis of a sales quote.
func (q *SupplierQuote) Select(by kernel.Actor) error {
	return q.apply(by, transition.SelectSupplierQuote, "")
}

func (q *SupplierQuote) Reject(by kernel.Actor, reason string) error {
	return q.apply(by, transition.RejectSupplierQuote, reason)
}

func (q *SupplierQuote) apply(by kernel.Actor, via transition.Name, note string) error {
	if err := by.Validate(); err != nil {
		return err
	}
	next, err := Lifecycle.Validate(q.status, via, by.Role())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	q.Record(history.Record{
		Entity:     transition.SupplierQuote,
		EntityID:   q.id.UUID,
		Transition: via,
		From:       q.status.String(),
		To:         next.String(),
		Actor:      by,
		Note:       note,
		OccurredAt: now,
	})
	q.status = next
	q.updatedAt = now
	return nil
}

func (q *SupplierQuote) setID(id kernel.SupplierQuoteID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	q.id = id
	return nil
}

func (q *SupplierQuote) setRFQID(id kernel.RFQID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("rfqId", err)
	}
	q.rfqID = id
	return nil
}

func (q *SupplierQuote) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("price", err)
	}
	if price.Amount().IsZero() {
		return errs.NewValueIsOutOfRangeError("price", price.String(), "0.01", "unbounded")
	}
	q.price = price
	return nil
}

func (q *SupplierQuote) setLeadTime(days int) error {
	if days < 1 || days > MaxLeadTimeDays {
		return errs.NewValueIsOutOfRangeError("leadTimeDays", days, 1, MaxLeadTimeDays)
	}
	q.leadTimeDays = days
	return nil
}
