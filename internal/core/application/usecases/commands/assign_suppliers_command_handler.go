package commands

import (
	"context"

	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/transition"
)

// AssignSuppliersCommandHandler moves an RFQ to sent_to_suppliers and
// persists its supplier set.
type AssignSuppliersCommandHandler struct {
	uowFactory RFQUoWFactory
}

func NewAssignSuppliersCommandHandler(uowFactory RFQUoWFactory) AssignSuppliersCommandHandler {
	return AssignSuppliersCommandHandler{uowFactory: uowFactory}
}

func (h AssignSuppliersCommandHandler) Handle(ctx context.Context, command AssignSuppliersCommand) (*rfq.RFQ, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *rfq.RFQ
	err := retryOnConflict(ctx, transition.RFQ, transition.AssignToSuppliers, func() error {
		var err error
		result, err = h.handle(ctx, command)
		return err
	})
	return result, err
}

func (h AssignSuppliersCommandHandler) handle(ctx context.Context, command AssignSuppliersCommand) (*rfq.RFQ, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.RFQRepository()
	r, err := repo.Get(ctx, command.RFQID())
	if err != nil {
		return nil, err
	}

	if err = r.AssignSuppliers(command.Actor(), command.Suppliers()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return r, nil
}
