package commands

import (
	"errors"
	"slices"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/purchaseorder"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAdvancePurchaseOrderCommandIsNotConstructed = errors.New(
	"AdvancePurchaseOrderCommand must be created via NewAdvancePurchaseOrderCommand constructor",
)

// AdvancePurchaseOrderCommand moves a purchase order along its fulfilment:
// accept, start production, ship, deliver or cancel.
type AdvancePurchaseOrderCommand struct {
	purchaseOrderID kernel.PurchaseOrderID
	actor           kernel.Actor
	via             transition.Name

	guard guard.ConstructorGuard
}

func NewAdvancePurchaseOrderCommand(
	purchaseOrderID kernel.PurchaseOrderID,
	actor kernel.Actor,
	via transition.Name,
) (AdvancePurchaseOrderCommand, error) {
	var viaErr error
	if !slices.Contains(purchaseorder.Progressions(), via) {
		viaErr = errs.NewTransitionDeniedError(errs.ErrUnknownTransition, transition.PurchaseOrder.String(),
			via.String(), "", actor.Role().String())
	}
	if err := errors.Join(purchaseOrderID.Validate(), actor.Validate(), viaErr); err != nil {
		return AdvancePurchaseOrderCommand{}, err
	}
	return AdvancePurchaseOrderCommand{
		purchaseOrderID: purchaseOrderID,
		actor:           actor,
		via:             via,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c AdvancePurchaseOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvancePurchaseOrderCommandIsNotConstructed)
}

func (c AdvancePurchaseOrderCommand) PurchaseOrderID() kernel.PurchaseOrderID { return c.purchaseOrderID }
func (c AdvancePurchaseOrderCommand) Actor() kernel.Actor                     { return c.actor }
func (c AdvancePurchaseOrderCommand) Transition() transition.Name             { return c.via }
