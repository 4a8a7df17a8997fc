package commands

import (
	"context"

	"marketplace/internal/core/domain/model/purchaseorder"
	"marketplace/internal/core/domain/model/transition"
)

type AttachSupplierInvoiceCommandHandler struct {
	uowFactory UoWFactory
}

func NewAttachSupplierInvoiceCommandHandler(uowFactory UoWFactory) AttachSupplierInvoiceCommandHandler {
	return AttachSupplierInvoiceCommandHandler{uowFactory: uowFactory}
}

func (h AttachSupplierInvoiceCommandHandler) Handle(
	ctx context.Context,
	command AttachSupplierInvoiceCommand,
) (*purchaseorder.PurchaseOrder, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *purchaseorder.PurchaseOrder
	err := retryOnConflict(ctx, transition.PurchaseOrder, transition.AttachSupplierInvoice, func() error {
		var err error
		result, err = h.handle(ctx, command)
		return err
	})
	return result, err
}

func (h AttachSupplierInvoiceCommandHandler) handle(
	ctx context.Context,
	command AttachSupplierInvoiceCommand,
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

	if err = po.AttachSupplierInvoice(command.Actor(), command.FileRef()); err != nil {
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
