package rfq

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

// MaxProjectNameLength bounds RFQ.ProjectName.
const MaxProjectNameLength = 200

var ErrRFQIsNotConstructed = errors.New("RFQ must be created via NewRFQ constructor")

// RFQ is the aggregate root of a customer's manufacturing request.
//
// Invariants:
//   - the specification never changes after creation
//   - status only moves along Lifecycle
//   - only the owning customer may accept or decline its quote
type RFQ struct {
	history.Recorder

	id            kernel.RFQID
	owner         kernel.CustomerID
	projectName   string
	spec          Specification
	status        Status
	suppliers     []kernel.SupplierID
	originOrderID *kernel.SalesOrderID
	createdAt     time.Time
	updatedAt     time.Time
	version       int

	isConstructed bool
}

// NewRFQ creates a submitted RFQ owned by the acting customer.
func NewRFQ(id kernel.RFQID, by kernel.Actor, projectName string, spec Specification) (*RFQ, error) {
	return newRFQ(id, by, projectName, spec, nil, transition.CreateRFQ)
}

// NewReorderedRFQ creates a submitted RFQ derived from a previous sales
// order. Apart from originOrderID it is indistinguishable from NewRFQ.
func NewReorderedRFQ(
	id kernel.RFQID,
	by kernel.Actor,
	projectName string,
	spec Specification,
	origin kernel.SalesOrderID,
) (*RFQ, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	return newRFQ(id, by, projectName, spec, &origin, transition.Reorder)
}

func newRFQ(
	id kernel.RFQID,
	by kernel.Actor,
	projectName string,
	spec Specification,
	origin *kernel.SalesOrderID,
	via transition.Name,
) (*RFQ, error) {
	if err := by.Validate(); err != nil {
		return nil, err
	}
	if err := transition.Authorize(transition.RFQ, via, by.Role()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r := &RFQ{
		owner:         by.AsCustomer(),
		status:        Submitted,
		originOrderID: origin,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setProjectName(projectName),
		r.setSpecification(spec),
	); err != nil {
		return nil, err
	}

	r.Record(history.Record{
		Entity:     transition.RFQ,
		EntityID:   r.id.UUID,
		Transition: via,
		To:         Submitted.String(),
		Actor:      by,
		OccurredAt: now,
	})
	return r, nil
}

// RestoreRFQ rebuilds an RFQ from persistence without re-running creation rules.
func RestoreRFQ(
	id kernel.RFQID,
	owner kernel.CustomerID,
	projectName string,
	spec Specification,
	status Status,
	suppliers []kernel.SupplierID,
	originOrderID *kernel.SalesOrderID,
	createdAt, updatedAt time.Time,
	version int,
) *RFQ {
	return &RFQ{
		id:            id,
		owner:         owner,
		projectName:   projectName,
		spec:          spec,
		status:        status,
		suppliers:     slices.Clone(suppliers),
		originOrderID: originOrderID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		version:       version,
		isConstructed: true,
	}
}

func (r *RFQ) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRFQIsNotConstructed
	}
	return nil
}

func (r *RFQ) ID() kernel.RFQID                    { return r.id }
func (r *RFQ) Owner() kernel.CustomerID            { return r.owner }
func (r *RFQ) ProjectName() string                 { return r.projectName }
func (r *RFQ) Specification() Specification        { return r.spec }
func (r *RFQ) Status() Status                      { return r.status }
func (r *RFQ) OriginOrderID() *kernel.SalesOrderID { return r.originOrderID }
func (r *RFQ) CreatedAt() time.Time                { return r.createdAt }
func (r *RFQ) UpdatedAt() time.Time                { return r.updatedAt }
func (r *RFQ) Version() int                        { return r.version }

// Suppliers returns the assigned suppliers in assignment order.
func (r *RFQ) Suppliers() []kernel.SupplierID {
	return slices.Clone(r.suppliers)
}

// IsAssigned reports whether supplier was asked to quote.
func (r *RFQ) IsAssigned(supplier kernel.SupplierID) bool {
	return slices.Contains(r.suppliers, supplier)
}

// EnsureOwnedBy fails with NotOwner unless customer owns the RFQ.
func (r *RFQ) EnsureOwnedBy(customer kernel.CustomerID) error {
	if r.owner != customer {
		return errs.NewNotOwnerError("rfq", r.id, customer)
	}
	return nil
}

func (r *RFQ) Review(by kernel.Actor) error {
	return r.apply(by, transition.ReviewRFQ, "")
}

// AssignSuppliers adds suppliers to the assignment set. Repeated ids are
// ignored, so retrying an assignment does not duplicate it.
func (r *RFQ) AssignSuppliers(by kernel.Actor, suppliers []kernel.SupplierID) error {
	if len(suppliers) == 0 {
		return errs.NewValueIsRequiredError("supplierIds")
	}
	for _, s := range suppliers {
		if err := s.Validate(); err != nil {
			return err
		}
	}

	if err := r.apply(by, transition.AssignToSuppliers, ""); err != nil {
		return err
	}

	for _, s := range suppliers {
		if !slices.Contains(r.suppliers, s) {
			r.suppliers = append(r.suppliers, s)
		}
	}
	return nil
}

// PublishQuote marks the RFQ as quoted once a sales quote is published.
func (r *RFQ) PublishQuote(by kernel.Actor) error {
	return r.apply(by, transition.PublishQuote, "")
}

func (r *RFQ) AcceptQuote(by kernel.Actor) error {
	if by.Role() == kernel.Customer {
		if err := r.EnsureOwnedBy(by.AsCustomer()); err != nil {
			return err
		}
	}
	return r.apply(by, transition.AcceptQuote, "")
}

func (r *RFQ) DeclineQuote(by kernel.Actor, reason string) error {
	if by.Role() == kernel.Customer {
		if err := r.EnsureOwnedBy(by.AsCustomer()); err != nil {
			return err
		}
	}
	return r.apply(by, transition.DeclineQuote, reason)
}

func (r *RFQ) Cancel(by kernel.Actor, reason string) error {
	return r.apply(by, transition.CancelRFQ, reason)
}

// Override mirrors an admin correction of the sales quote. The record is
// flagged as an override.
func (r *RFQ) Override(by kernel.Actor, target Status, note string) error {
	next, ok := Lifecycle.Next(r.status, transition.OverrideQuoteStatus)
	if ok && next != target {
		return errs.NewTransitionDeniedError(errs.ErrIllegalFromState, transition.RFQ.String(),
			transition.OverrideQuoteStatus.String(), r.status.String(), by.Role().String())
	}
	return r.applyWith(by, transition.OverrideQuoteStatus, note, true)
}

func (r *RFQ) apply(by kernel.Actor, via transition.Name, note string) error {
	return r.applyWith(by, via, note, false)
}

func (r *RFQ) applyWith(by kernel.Actor, via transition.Name, note string, override bool) error {
	if err := by.Validate(); err != nil {
		return err
	}

	next, err := Lifecycle.Validate(r.status, via, by.Role())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	r.Record(history.Record{
		Entity:     transition.RFQ,
		EntityID:   r.id.UUID,
		Transition: via,
		From:       r.status.String(),
		To:         next.String(),
		Actor:      by,
		Override:   override,
		Note:       note,
		OccurredAt: now,
	})
	r.status = next
	r.updatedAt = now
	return nil
}

func (r *RFQ) setID(id kernel.RFQID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *RFQ) setProjectName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("projectName")
	}
	if len(name) > MaxProjectNameLength {
		return errs.NewValueIsOutOfRangeError("projectName", len(name), 1, MaxProjectNameLength)
	}
	r.projectName = name
	return nil
}

func (r *RFQ) setSpecification(spec Specification) error {
	if spec.IsZero() {
		return errs.NewValueIsRequiredError("specification")
	}
	r.spec = spec
	return nil
}
