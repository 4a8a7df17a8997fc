package salesquote

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/history"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"
)

var (
	ErrSalesQuoteIsNotConstructed = errors.New("SalesQuote must be created via NewSalesQuote constructor")

	errQuoteExpired       = errors.New("quote is past its validity date")
	errNoPurchaseOrder    = errors.New("no purchase order is attached")
	errOrderAlreadyExists = errors.New("a sales order already exists for this quote")
	errPurchaseOrderHeld  = errors.New("an attached purchase order requires the quote to stay accepted")
)

// SalesQuote is the aggregate root of the offer made to a customer.
type SalesQuote struct {
	history.Recorder

	id                kernel.SalesQuoteID
	rfqID             kernel.RFQID
	supplierQuoteID   kernel.SupplierQuoteID
	customerID        kernel.CustomerID
	amount            kernel.Money
	validUntil        time.Time
	estimatedDelivery time.Time
	status            Status
	purchaseOrder     *PurchaseOrderRef
	decisionNote      string
	acceptedAt        *time.Time
	createdAt         time.Time
	updatedAt         time.Time
	version           int

	isConstructed bool
}

// Terms are the priced facts of a published quote.
type Terms struct {
	Amount            kernel.Money
	ValidUntil        time.Time
	EstimatedDelivery time.Time
}

// NewSalesQuote publishes a pending quote for the RFQ owner. It is created by
// an admin from a selected supplier quote.
func NewSalesQuote(
	id kernel.SalesQuoteID,
	rfqID kernel.RFQID,
	supplierQuoteID kernel.SupplierQuoteID,
	customer kernel.CustomerID,
	terms Terms,
	by kernel.Actor,
) (*SalesQuote, error) {
	if err := by.Validate(); err != nil {
		return nil, err
	}
	if err := transition.Authorize(transition.SalesQuote, transition.PublishQuote, by.Role()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	q := &SalesQuote{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		rfqID.Validate(),
		supplierQuoteID.Validate(),
		customer.Validate(),
		q.setTerms(terms, now),
	); err != nil {
		return nil, err
	}
	q.id = id
	q.rfqID = rfqID
	q.supplierQuoteID = supplierQuoteID
	q.customerID = customer

	q.Record(history.Record{
		Entity:     transition.SalesQuote,
		EntityID:   q.id.UUID,
		Transition: transition.PublishQuote,
		To:         Pending.String(),
		Actor:      by,
		OccurredAt: now,
	})
	return q, nil
}

// RestoreSalesQuote rebuilds a quote from persistence.
func RestoreSalesQuote(
	id kernel.SalesQuoteID,
	rfqID kernel.RFQID,
	supplierQuoteID kernel.SupplierQuoteID,
	customer kernel.CustomerID,
	terms Terms,
	status Status,
	purchaseOrder *PurchaseOrderRef,
	decisionNote string,
	acceptedAt *time.Time,
	createdAt, updatedAt time.Time,
	version int,
) *SalesQuote {
	return &SalesQuote{
		id:                id,
		rfqID:             rfqID,
		supplierQuoteID:   supplierQuoteID,
		customerID:        customer,
		amount:            terms.Amount,
		validUntil:        terms.ValidUntil,
		estimatedDelivery: terms.EstimatedDelivery,
		status:            status,
		purchaseOrder:     purchaseOrder,
		decisionNote:      decisionNote,
		acceptedAt:        acceptedAt,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
		version:           version,
		isConstructed:     true,
	}
}

func (q *SalesQuote) Validate() error {
	if q == nil || !q.isConstructed {
		return ErrSalesQuoteIsNotConstructed
	}
	return nil
}

func (q *SalesQuote) ID() kernel.SalesQuoteID                 { return q.id }
func (q *SalesQuote) RFQID() kernel.RFQID                     { return q.rfqID }
func (q *SalesQuote) SupplierQuoteID() kernel.SupplierQuoteID { return q.supplierQuoteID }
func (q *SalesQuote) CustomerID() kernel.CustomerID           { return q.customerID }
func (q *SalesQuote) Amount() kernel.Money                    { return q.amount }
func (q *SalesQuote) ValidUntil() time.Time                   { return q.validUntil }
func (q *SalesQuote) EstimatedDelivery() time.Time            { return q.estimatedDelivery }
func (q *SalesQuote) Status() Status                          { return q.status }
func (q *SalesQuote) DecisionNote() string                    { return q.decisionNote }
func (q *SalesQuote) AcceptedAt() *time.Time                  { return q.acceptedAt }
func (q *SalesQuote) CreatedAt() time.Time                    { return q.createdAt }
func (q *SalesQuote) UpdatedAt() time.Time                    { return q.updatedAt }
func (q *SalesQuote) Version() int                            { return q.version }

func (q *SalesQuote) Terms() Terms {
	return Terms{Amount: q.amount, ValidUntil: q.validUntil, EstimatedDelivery: q.estimatedDelivery}
}

// PurchaseOrder returns the attached purchase order, or nil.
func (q *SalesQuote) PurchaseOrder() *PurchaseOrderRef {
	if q.purchaseOrder == nil {
		return nil
	}
	ref := *q.purchaseOrder
	return &ref
}

// IsExpired reports whether now is past the validity date.
func (q *SalesQuote) IsExpired(now time.Time) bool {
	return now.After(q.validUntil)
}

// EnsureOwnedBy fails with NotOwner unless customer is the quote's customer.
func (q *SalesQuote) EnsureOwnedBy(customer kernel.CustomerID) error {
	if q.customerID != customer {
		return errs.NewNotOwnerError("salesQuote", q.id, customer)
	}
	return nil
}

// Accept records the customer's acceptance. It does not create an order:
// a purchase order must be attached first.
func (q *SalesQuote) Accept(by kernel.Actor, now time.Time) error {
	if err := q.authorizeOwner(by, transition.AcceptQuote); err != nil {
		return err
	}
	if q.status == Pending && q.IsExpired(now) {
		return errs.NewPreconditionFailedError(transition.SalesQuote.String(), transition.AcceptQuote.String(),
			fmt.Errorf("%w: valid until %s", errQuoteExpired, q.validUntil.Format(time.RFC3339)))
	}
	if err := q.apply(by, transition.AcceptQuote, "", false); err != nil {
		return err
	}
	accepted := now.UTC()
	q.acceptedAt = &accepted
	return nil
}

func (q *SalesQuote) Decline(by kernel.Actor, reason string) error {
	if err := q.authorizeOwner(by, transition.DeclineQuote); err != nil {
		return err
	}
	if err := q.apply(by, transition.DeclineQuote, reason, false); err != nil {
		return err
	}
	q.decisionNote = reason
	return nil
}

// AttachPurchaseOrder sets the purchase order reference. Attaching the
// identical reference again is a no-op and returns false; a different
// reference replaces the previous one.
func (q *SalesQuote) AttachPurchaseOrder(by kernel.Actor, ref PurchaseOrderRef) (bool, error) {
	if err := q.authorizeOwner(by, transition.AttachPurchaseOrder); err != nil {
		return false, err
	}
	if ref == (PurchaseOrderRef{}) {
		return false, errs.NewValueIsRequiredError("purchaseOrder")
	}
	if _, err := Lifecycle.Validate(q.status, transition.AttachPurchaseOrder, by.Role()); err != nil {
		return false, err
	}
	if q.purchaseOrder != nil && *q.purchaseOrder == ref {
		return false, nil
	}

	note := ref.Number()
	if q.purchaseOrder != nil {
		note = fmt.Sprintf("%s replaces %s", ref.Number(), q.purchaseOrder.Number())
	}
	if err := q.apply(by, transition.AttachPurchaseOrder, note, false); err != nil {
		return false, err
	}
	q.purchaseOrder = &ref
	return true, nil
}

// Override flips a terminal quote to target as an admin correction.
// hasSalesOrder tells whether an order was already created from the quote;
// such a quote, like one holding a purchase order, cannot be declined.
func (q *SalesQuote) Override(by kernel.Actor, target Status, note string, hasSalesOrder bool) error {
	if err := by.Validate(); err != nil {
		return err
	}
	next, err := Lifecycle.Validate(q.status, transition.OverrideQuoteStatus, by.Role())
	if err != nil {
		return err
	}
	if next != target {
		return errs.NewTransitionDeniedError(errs.ErrIllegalFromState, transition.SalesQuote.String(),
			transition.OverrideQuoteStatus.String(), q.status.String(), by.Role().String())
	}
	if target == Declined {
		switch {
		case hasSalesOrder:
			return errs.NewPreconditionFailedError(transition.SalesQuote.String(),
				transition.OverrideQuoteStatus.String(), errOrderAlreadyExists)
		case q.purchaseOrder != nil:
			return errs.NewPreconditionFailedError(transition.SalesQuote.String(),
				transition.OverrideQuoteStatus.String(), errPurchaseOrderHeld)
		}
	}

	if err = q.apply(by, transition.OverrideQuoteStatus, note, true); err != nil {
		return err
	}
	q.decisionNote = note
	if target == Accepted && q.acceptedAt == nil {
		accepted := q.updatedAt
		q.acceptedAt = &accepted
	}
	return nil
}

// EnsureConvertible checks the quote side of sales order creation: accepted
// and holding a purchase order.
func (q *SalesQuote) EnsureConvertible(by kernel.Actor) error {
	if _, err := Lifecycle.Validate(q.status, transition.ConvertToSalesOrder, by.Role()); err != nil {
		return err
	}
	if q.purchaseOrder == nil {
		return errs.NewPreconditionFailedError(transition.SalesQuote.String(),
			transition.ConvertToSalesOrder.String(), errNoPurchaseOrder)
	}
	return nil
}

// EnsureIssuable checks that a supplier purchase order may be issued.
func (q *SalesQuote) EnsureIssuable(by kernel.Actor) error {
	_, err := Lifecycle.Validate(q.status, transition.IssuePurchaseOrder, by.Role())
	return err
}

func (q *SalesQuote) authorizeOwner(by kernel.Actor, via transition.Name) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if err := transition.Authorize(transition.SalesQuote, via, by.Role()); err != nil {
		return err
	}
	return q.EnsureOwnedBy(by.AsCustomer())
}

func (q *SalesQuote) apply(by kernel.Actor, via transition.Name, note string, override bool) error {
	next, err := Lifecycle.Validate(q.status, via, by.Role())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	q.Record(history.Record{
		Entity:     transition.SalesQuote,
		EntityID:   q.id.UUID,
		Transition: via,
		From:       q.status.String(),
		To:         next.String(),
		Actor:      by,
		Override:   override,
		Note:       note,
		OccurredAt: now,
	})
	q.status = next
	q.updatedAt = now
	return nil
}

func (q *SalesQuote) setTerms(terms Terms, now time.Time) error {
	var problems []error
	if err := terms.Amount.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("amount", err))
	}
	if !terms.ValidUntil.After(now) {
		problems = append(problems, errs.NewValueIsOutOfRangeError("validUntil",
			terms.ValidUntil.Format(time.RFC3339), now.Format(time.RFC3339), "unbounded"))
	}
	if terms.EstimatedDelivery.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("estimatedDeliveryDate"))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	q.amount = terms.Amount
	q.validUntil = terms.ValidUntil.UTC()
	q.estimatedDelivery = terms.EstimatedDelivery.UTC()
	return nil
}
