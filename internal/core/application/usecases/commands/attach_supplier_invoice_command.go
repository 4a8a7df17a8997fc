package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAttachSupplierInvoiceCommandIsNotConstructed = errors.New(
	"AttachSupplierInvoiceCommand must be created via NewAttachSupplierInvoiceCommand constructor",
)

type AttachSupplierInvoiceCommand struct {
	purchaseOrderID kernel.PurchaseOrderID
	actor           kernel.Actor
	fileRef         string

	guard guard.ConstructorGuard
}

func NewAttachSupplierInvoiceCommand(
	purchaseOrderID kernel.PurchaseOrderID,
	actor kernel.Actor,
	fileRef string,
) (AttachSupplierInvoiceCommand, error) {
	var refErr error
	if fileRef == "" {
		refErr = errs.NewValueIsRequiredError("fileRef")
	}
	if err := errors.Join(purchaseOrderID.Validate(), actor.Validate(), refErr); err != nil {
		return AttachSupplierInvoiceCommand{}, err
	}
	return AttachSupplierInvoiceCommand{
		purchaseOrderID: purchaseOrderID,
		actor:           actor,
		fileRef:         fileRef,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c AttachSupplierInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrAttachSupplierInvoiceCommandIsNotConstructed)
}

func (c AttachSupplierInvoiceCommand) PurchaseOrderID() kernel.PurchaseOrderID { return c.purchaseOrderID }
func (c AttachSupplierInvoiceCommand) Actor() kernel.Actor                     { return c.actor }
func (c AttachSupplierInvoiceCommand) FileRef() string                         { return c.fileRef }
