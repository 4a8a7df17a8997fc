package commands

import (
	"context"

	"marketplace/internal/core/domain/model/purchaseorder"
	"marketplace/internal/core/domain/model/transition"
)

type AdvancePurchaseOrderCommandHandler struct {
	uowFactory UoWFactory
}

func NewAdvancePurchaseOrderCommandHandler(uowFactory UoWFactory) AdvancePurchaseOrderCommandHandler {
	return AdvancePurchaseOrderCommandHandler{uowFactory: uowFactory}
}

func (h AdvancePurchaseOrderCommandHandler) Handle(
	ctx context.Context,
	command AdvancePurchaseOrderCommand,
) (*purchaseorder.PurchaseOrder, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *purchaseorder.PurchaseOrder
	err := retryOnConflict(ctx, transition.PurchaseOrder, command.Transition(), func() error {
		var err error
		result, err = h.handle(ctx, command)
		return err
	})
	return result, err
}

func (h AdvancePurchaseOrderCommandHandler) handle(
	ctx context.Context,
	command AdvancePurchaseOrderCommand,
) (*purchaseorder.PurchaseOrder, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PurchaseOrderRepository()
	po, err := repo.Get(ctx, command.PurchaseOrderID())
	if err != nil {
		return nil, err
	}

	if err = po.Advance(command.Actor(), command.Transition()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, po); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return po, nil
}
