package purchaseorder

import (
	"errors"
	"slices"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/history"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"
)

var ErrPurchaseOrderIsNotConstructed = errors.New("PurchaseOrder must be created via NewPurchaseOrder constructor")

type PurchaseOrder struct {
	history.Recorder

	id                 kernel.PurchaseOrderID
	salesQuoteID       kernel.SalesQuoteID
	supplierID         kernel.SupplierID
	total              kernel.Money
	deliveryDate       time.Time
	status             Status
	archivedAt         *time.Time
	supplierInvoiceURL *string
	createdAt          time.Time
	updatedAt          time.Time
	version            int

	isConstructed bool
}

// NewPurchaseOrder issues a pending order to the supplier behind an accepted
// sales quote.
func NewPurchaseOrder(
	id kernel.PurchaseOrderID,
	salesQuoteID kernel.SalesQuoteID,
	supplierID kernel.SupplierID,
	total kernel.Money,
	deliveryDate time.Time,
	by kernel.Actor,
) (*PurchaseOrder, error) {
	if err := by.Validate(); err != nil {
		return nil, err
	}
	if err := transition.Authorize(transition.PurchaseOrder, transition.IssuePurchaseOrder, by.Role()); err != nil {
		return nil, err
	}

	var problems []error
	for _, err := range []error{id.Validate(), salesQuoteID.Validate(), supplierID.Validate()} {
		if err != nil {
			problems = append(problems, err)
		}
	}
	if err := total.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("totalAmount", err))
	}
	if deliveryDate.IsZero() {
		problems = append(problems, errs.NewValueIsRequiredError("deliveryDate"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	po := &PurchaseOrder{
		id:            id,
		salesQuoteID:  salesQuoteID,
		supplierID:    supplierID,
		total:         total,
		deliveryDate:  deliveryDate.UTC(),
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}
	po.Record(history.Record{
		Entity:     transition.PurchaseOrder,
		EntityID:   id.UUID,
		Transition: transition.IssuePurchaseOrder,
		To:         Pending.String(),
		Actor:      by,
		OccurredAt: now,
	})
	return po, nil
}

func RestorePurchaseOrder(
	id kernel.PurchaseOrderID,
	salesQuoteID kernel.SalesQuoteID,
	supplierID kernel.SupplierID,
	total kernel.Money,
	deliveryDate time.Time,
	status Status,
	archivedAt *time.Time,
	supplierInvoiceURL *string,
	createdAt, updatedAt time.Time,
	version int,
) *PurchaseOrder {
	return &PurchaseOrder{
		id:                 id,
		salesQuoteID:       salesQuoteID,
		supplierID:         supplierID,
		total:              total,
		deliveryDate:       deliveryDate,
		status:             status,
		archivedAt:         archivedAt,
		supplierInvoiceURL: supplierInvoiceURL,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		version:            version,
		isConstructed:      true,
	}
}

func (po *PurchaseOrder) Validate() error {
	if po == nil || !po.isConstructed {
		return ErrPurchaseOrderIsNotConstructed
	}
	return nil
}

func (po *PurchaseOrder) ID() kernel.PurchaseOrderID        { return po.id }
func (po *PurchaseOrder) SalesQuoteID() kernel.SalesQuoteID { return po.salesQuoteID }
func (po *PurchaseOrder) SupplierID() kernel.SupplierID     { return po.supplierID }
func (po *PurchaseOrder) Total() kernel.Money               { return po.total }
func (po *PurchaseOrder) DeliveryDate() time.Time           { return po.deliveryDate }
func (po *PurchaseOrder) Status() Status                    { return po.status }
func (po *PurchaseOrder) ArchivedAt() *time.Time            { return po.archivedAt }
func (po *PurchaseOrder) SupplierInvoiceURL() *string       { return po.supplierInvoiceURL }
func (po *PurchaseOrder) CreatedAt() time.Time              { return po.createdAt }
func (po *PurchaseOrder) UpdatedAt() time.Time              { return po.updatedAt }
func (po *PurchaseOrder) Version() int                      { return po.version }
func (po *PurchaseOrder) IsArchived() bool                  { return po.archivedAt != nil }

// Advance applies one of Progressions. Suppliers may only move their own orders.
func (po *PurchaseOrder) Advance(by kernel.Actor, via transition.Name) error {
	if !slices.Contains(Progressions(), via) {
		return errs.NewTransitionDeniedError(errs.ErrUnknownTransition, transition.PurchaseOrder.String(),
			via.String(), po.status.String(), by.Role().String())
	}
	if err := po.guardChange(by, via); err != nil {
		return err
	}
	return po.apply(by, via, "")
}

// AttachSupplierInvoice stores the supplier's invoice reference, replacing
// any previous one.
func (po *PurchaseOrder) AttachSupplierInvoice(by kernel.Actor, url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errs.NewValueIsRequiredError("supplierInvoiceUrl")
	}
	if err := po.guardChange(by, transition.AttachSupplierInvoice); err != nil {
		return err
	}
	if err := po.apply(by, transition.AttachSupplierInvoice, url); err != nil {
		return err
	}
	po.supplierInvoiceURL = &url
	return nil
}

// Archive moves a delivered order to the archive. Archiving an archived
// order succeeds without change and returns false.
func (po *PurchaseOrder) Archive(by kernel.Actor) (bool, error) {
	if err := by.Validate(); err != nil {
		return false, err
	}
	if _, err := Lifecycle.Validate(po.status, transition.ArchivePurchaseOrder, by.Role()); err != nil {
		return false, err
	}
	if po.IsArchived() {
		return false, nil
	}
	if err := po.apply(by, transition.ArchivePurchaseOrder, ""); err != nil {
		return false, err
	}
	at := po.updatedAt
	po.archivedAt = &at
	return true, nil
}

// Reopen clears the archive flag without touching the status.
func (po *PurchaseOrder) Reopen(by kernel.Actor) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if err := transition.Authorize(transition.PurchaseOrder, transition.ReopenPurchaseOrder, by.Role()); err != nil {
		return err
	}
	if !po.IsArchived() {
		return errs.NewNotArchivedError("purchaseOrder", po.id)
	}
	if err := po.apply(by, transition.ReopenPurchaseOrder, ""); err != nil {
		return err
	}
	po.archivedAt = nil
	return nil
}

func (po *PurchaseOrder) guardChange(by kernel.Actor, via transition.Name) error {
	if err := by.Validate(); err != nil {
		return err
	}
	if err := transition.Authorize(transition.PurchaseOrder, via, by.Role()); err != nil {
		return err
	}
	if by.Role() == kernel.Supplier && by.AsSupplier() != po.supplierID {
		return errs.NewNotOwnerError("purchaseOrder", po.id, by.ID())
	}
	if po.IsArchived() {
		return errs.NewAlreadyArchivedError("purchaseOrder", po.id)
	}
	return nil
}

func (po *PurchaseOrder) apply(by kernel.Actor, via transition.Name, note string) error {
	next, err := Lifecycle.Validate(po.status, via, by.Role())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	po.Record(history.Record{
		Entity:     transition.PurchaseOrder,
		EntityID:   po.id.UUID,
		Transition: via,
		From:       po.status.String(),
		To:         next.String(),
		Actor:      by,
		Note:       note,
		OccurredAt: now,
	})
	po.status = next
	po.updatedAt = now
	return nil
}
