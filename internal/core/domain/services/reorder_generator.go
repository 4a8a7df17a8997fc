package services

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"
)

var errNotReorderable = errors.New("order is neither delivered nor archived")

// ReorderGenerator derives a new RFQ from a finished sales order. The new
// RFQ copies the source RFQ's project name and specification and nothing
// else; quotes, purchase orders and stages are regenerated by the lifecycle.
type ReorderGenerator struct{}

func NewReorderGenerator() ReorderGenerator {
	return ReorderGenerator{}
}

func (ReorderGenerator) Derive(
	id kernel.RFQID,
	source *salesorder.SalesOrder,
	sourceRFQ *rfq.RFQ,
	by kernel.Actor,
) (*rfq.RFQ, error) {
	if err := errors.Join(source.Validate(), sourceRFQ.Validate(), by.Validate()); err != nil {
		return nil, err
	}
	if err := transition.Authorize(transition.RFQ, transition.Reorder, by.Role()); err != nil {
		return nil, err
	}
	if err := source.EnsureOwnedBy(by.AsCustomer()); err != nil {
		return nil, err
	}
	if !source.IsReorderable() {
		return nil, errs.NewPreconditionFailedError(transition.SalesOrder.String(), transition.Reorder.String(),
			fmt.Errorf("%w: %s is %s", errNotReorderable, source.ID(), source.Status()))
	}
	if sourceRFQ.ID() != source.RFQID() {
		return nil, errs.NewValueIsInvalidErrorWithCause("sourceRfq",
			fmt.Errorf("%s is not the rfq of order %s", sourceRFQ.ID(), source.ID()))
	}

	return rfq.NewReorderedRFQ(id, by, sourceRFQ.ProjectName(), sourceRFQ.Specification(), source.ID())
}
