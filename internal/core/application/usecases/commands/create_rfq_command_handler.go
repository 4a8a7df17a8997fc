package commands

import (
	"context"

	"marketplace/internal/core/domain/model/rfq"
)

// CreateRFQCommandHandler opens a new RFQ in status submitted.
type CreateRFQCommandHandler struct {
	uowFactory RFQUoWFactory
}

func NewCreateRFQCommandHandler(uowFactory RFQUoWFactory) CreateRFQCommandHandler {
	return CreateRFQCommandHandler{uowFactory: uowFactory}
}

func (h CreateRFQCommandHandler) Handle(ctx context.Context, command CreateRFQCommand) (*rfq.RFQ, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	created, err := rfq.NewRFQ(command.RFQID(), command.Actor(), command.ProjectName(), command.Specification())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RFQRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
