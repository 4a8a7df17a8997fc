package salesorder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/history"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"
)

var ErrSalesOrderIsNotConstructed = errors.New("SalesOrder must be created via NewSalesOrder constructor")

// SalesOrder is the aggregate root of a customer order. It has no public
// creation path besides NewSalesOrder, which the conversion use case calls
// once per sales quote.
type SalesOrder struct {
	history.Recorder

	id          kernel.SalesOrderID
	rfqID       kernel.RFQID
	quoteID     kernel.SalesQuoteID
	customerID  kernel.CustomerID
	orderNumber string
	status      Status
	payment     PaymentStatus
	shipping    *Shipping
	paidAt      *time.Time
	archivedAt  *time.Time
	createdAt   time.Time
	updatedAt   time.Time
	version     int

	isConstructed bool
}

// NewSalesOrder creates a pending, unpaid order.
func NewSalesOrder(
	id kernel.SalesOrderID,
	rfqID kernel.RFQID,
	quoteID kernel.SalesQuoteID,
	customer kernel.CustomerID,
	orderNumber string,
	by kernel.Actor,
) (*SalesOrder, error) {
	if err := by.Validate(); err != nil {
		return nil, err
	}
	if err := transition.Authorize(transition.SalesOrder, transition.ConvertToSalesOrder, by.Role()); err != nil {
		return nil, err
	}

	orderNumber = strings.TrimSpace(orderNumber)
	var problems []error
	for _, err := range []error{id.Validate(), rfqID.Validate(), quoteID.Validate(), customer.Validate()} {
		if err != nil {
			problems = append(problems, err)
		}
	}
	if orderNumber == "" {
		problems = append(problems, errs.NewValueIsRequiredError("orderNumber"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o := &SalesOrder{
		id:            id,
		rfqID:         rfqID,
		quoteID:       quoteID,
		customerID:    customer,
		orderNumber:   orderNumber,
		status:        Pending,
		payment:       Unpaid,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}
	o.Record(history.Record{
		Entity:     transition.SalesOrder,
		EntityID:   id.UUID,
		Transition: transition.ConvertToSalesOrder,
		To:         Pending.String(),
		Actor:      by,
		Note:       orderNumber,
		OccurredAt: now,
	})
	return o, nil
}

func RestoreSalesOrder(
	id kernel.SalesOrderID,
	rfqID kernel.RFQID,
	quoteID kernel.SalesQuoteID,
	customer kernel.CustomerID,
	orderNumber string,
	status Status,
	payment PaymentStatus,
	shipping *Shipping,
	paidAt, archivedAt *time.Time,
	createdAt, updatedAt time.Time,
	version int,
) *SalesOrder {
	return &SalesOrder{
		id:            id,
		rfqID:         rfqID,
		quoteID:       quoteID,
		customerID:    customer,
		orderNumber:   orderNumber,
		status:        status,
		payment:       payment,
		shipping:      shipping,
		paidAt:        paidAt,
		archivedAt:    archivedAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		version:       version,
		isConstructed: true,
	}
}

func (o *SalesOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrSalesOrderIsNotConstructed
	}
	return nil
}

func (o *SalesOrder) ID() kernel.SalesOrderID       { return o.id }
func (o *SalesOrder) RFQID() kernel.RFQID           { return o.rfqID }
func (o *SalesOrder) QuoteID() kernel.SalesQuoteID  { return o.quoteID }
func (o *SalesOrder) CustomerID() kernel.CustomerID { return o.customerID }
func (o *SalesOrder) OrderNumber() string           { return o.orderNumber }
func (o *SalesOrder) Status() Status                { return o.status }
func (o *SalesOrder) PaymentStatus() PaymentStatus  { return o.payment }
func (o *SalesOrder) Shipping() *Shipping           { return o.shipping }
func (o *SalesOrder) PaidAt() *time.Time            { return o.paidAt }
func (o *SalesOrder) ArchivedAt() *time.Time        { return o.archivedAt }
func (o *SalesOrder) IsArchived() bool              { return o.archivedAt != nil }
func (o *SalesOrder) CreatedAt() time.Time          { return o.createdAt }
func (o *SalesOrder) UpdatedAt() time.Time          { return o.updatedAt }
func (o *SalesOrder) Version() int                  { return o.version }

// EnsureOwnedBy fails with NotOwner unless customer placed the order.
func (o *SalesOrder) EnsureOwnedBy(customer kernel.CustomerID) error {
	if o.customerID != customer {
		return errs.NewNotOwnerError("salesOrder", o.id, customer)
	}
	return nil
}

// IsReorderable reports whether a reorder may be derived from the order.
func (o *SalesOrder) IsReorderable() bool {
	return o.status == Delivered || o.IsArchived()
}

// AdvanceTo moves the order exactly one stage forward into target. Skipping
// a stage or moving backwards fails with IllegalFromState. Shipping details
// may only accompany the move into shipped.
func (o *SalesOrder) AdvanceTo(by kernel.Actor, target Status, shipping *Shipping) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	if shipping != nil && target != Shipped {
		return errs.NewValueIsInvalidErrorWithCause("shipping",
			fmt.Errorf("tracking can only be set when moving to %s", Shipped))
	}

	via, ok := StepInto(target)
	if !ok {
		return errs.NewTransitionDeniedError(errs.ErrIllegalFromState, transition.SalesOrder.String(),
			"advanceTo:"+target.String(), o.status.String(), by.Role().String())
	}
	if err := transition.Authorize(transition.SalesOrder, via, by.Role()); err != nil {
		return err
	}
	if o.IsArchived() {
		return errs.NewAlreadyArchivedError("salesOrder", o.id)
	}

	if err := o.apply(by, via, ""); err != nil {
		return err
	}
	if shipping != nil {
		s := *shipping
		o.shipping = &s
	}
	return nil
}

// MarkPaid sets the payment status. Marking a paid order again returns false.
func (o *SalesOrder) MarkPaid(by kernel.Actor) (bool, error) {
	if err := by.Validate(); err != nil {
		return false, err
	}
	if _, err := Lifecycle.Validate(o.status, transition.MarkPaid, by.Role()); err != nil {
		return false, err
	}
	if o.payment == Paid {
		return false, nil
	}

	o.record(by, transition.MarkPaid, o.status, Unpaid.String()+" -> "+Paid.String())
	o.payment = Paid
	at := o.updatedAt
	o.paidAt = &at
	return true, nil
}

// Archive moves a delivered order to the archive. Archiving an archived
// order succeeds without change and returns false.
func (o *SalesOrder) Archive(by kernel.Actor) (bool, error) {
	if err := by.Validate(); err != nil {
		return false, err
	}
	if _, err := Lifecycle.Validate(o.status, transition.ArchiveSalesOrder, by.Role()); err != nil {
		return false, err
	}
	if o.IsArchived() {
		return false, nil
	}
	if err := o.apply(by, transition.ArchiveSalesOrder, ""); err != nil {
		return false, err
	}
	at := o.updatedAt
	o.archivedAt = &at
	return true, nil
}

// Reopen clears the archive flag and timestamp. The stage is unchanged.
func (o *SalesOrder) Reopen(by kernel.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if err := transition.Authorize(transition.SalesOrder, transition.ReopenSalesOrder, by.Role()); err != nil {
		return err
	}
	if !o.IsArchived() {
		return errs.NewNotArchivedError("salesOrder", o.id)
	}
	if err := o.apply(by, transition.ReopenSalesOrder, ""); err != nil {
		return err
	}
	o.archivedAt = nil
	return nil
}

func (o *SalesOrder) apply(by kernel.Actor, via transition.Name, note string) error {
	next, err := Lifecycle.Validate(o.status, via, by.Role())
	if err != nil {
		return err
	}
	o.record(by, via, next, note)
	return nil
}

func (o *SalesOrder) record(by kernel.Actor, via transition.Name, next Status, note string) {
	now := time.Now().UTC()
	o.Record(history.Record{
		Entity:     transition.SalesOrder,
		EntityID:   o.id.UUID,
		Transition: via,
		From:       o.status.String(),
		To:         next.String(),
		Actor:      by,
		Note:       note,
		OccurredAt: now,
	})
	o.status = next
	o.updatedAt = now
}
