package commands

import (
	"context"

	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/services"
)

// ReorderCommandHandler derives a submitted RFQ from a delivered or archived
// sales order. The source order and RFQ are only read.
type ReorderCommandHandler struct {
	uowFactory UoWFactory
	generator  services.ReorderGenerator
}

func NewReorderCommandHandler(uowFactory UoWFactory) ReorderCommandHandler {
	return ReorderCommandHandler{
		uowFactory: uowFactory,
		generator:  services.NewReorderGenerator(),
	}
}

func (h ReorderCommandHandler) Handle(ctx context.Context, command ReorderCommand) (*rfq.RFQ, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	rfqRepo := uow.RFQRepository()

	source, err := uow.SalesOrderRepository().Get(ctx, command.SourceOrderID())
	if err != nil {
		return nil, err
	}
	sourceRFQ, err := rfqRepo.Get(ctx, source.RFQID())
	if err != nil {
		return nil, err
	}

	derived, err := h.generator.Derive(command.RFQID(), source, sourceRFQ, command.Actor())
	if err != nil {
		return nil, err
	}

	if err = rfqRepo.Add(ctx, derived); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return derived, nil
}
