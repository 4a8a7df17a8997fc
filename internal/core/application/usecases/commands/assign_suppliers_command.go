package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAssignSuppliersCommandIsNotConstructed = errors.New(
	"AssignSuppliersCommand must be created via NewAssignSuppliersCommand constructor",
)

// AssignSuppliersCommand routes an RFQ to the suppliers allowed to bid on
// it. Assigning again extends the set.
type AssignSuppliersCommand struct {
	rfqID     kernel.RFQID
	actor     kernel.Actor
	suppliers []kernel.SupplierID

	guard guard.ConstructorGuard
}

func NewAssignSuppliersCommand(
	rfqID kernel.RFQID,
	actor kernel.Actor,
	suppliers []kernel.SupplierID,
) (AssignSuppliersCommand, error) {
	problems := []error{rfqID.Validate(), actor.Validate()}
	if len(suppliers) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("supplierIds"))
	}
	for _, s := range suppliers {
		problems = append(problems, s.Validate())
	}
	if err := errors.Join(problems...); err != nil {
		return AssignSuppliersCommand{}, err
	}

	return AssignSuppliersCommand{
		rfqID:     rfqID,
		actor:     actor,
		suppliers: append([]kernel.SupplierID(nil), suppliers...),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignSuppliersCommand) Validate() error {
	return c.guard.Validate(ErrAssignSuppliersCommandIsNotConstructed)
}

func (c AssignSuppliersCommand) RFQID() kernel.RFQID { return c.rfqID }
func (c AssignSuppliersCommand) Actor() kernel.Actor { return c.actor }

func (c AssignSuppliersCommand) Suppliers() []kernel.SupplierID {
	return append([]kernel.SupplierID(nil), c.suppliers...)
}
