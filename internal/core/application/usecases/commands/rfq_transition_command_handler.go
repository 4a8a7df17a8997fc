package commands

import (
	"context"

	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/transition"
)

type RFQTransitionCommandHandler struct {
	uowFactory RFQUoWFactory
}

func NewRFQTransitionCommandHandler(uowFactory RFQUoWFactory) RFQTransitionCommandHandler {
	return RFQTransitionCommandHandler{uowFactory: uowFactory}
}

func (h RFQTransitionCommandHandler) Handle(ctx context.Context, command RFQTransitionCommand) (*rfq.RFQ, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *rfq.RFQ
	err := retryOnConflict(ctx, transition.RFQ, command.Transition(), func() error {
		var err error
		result, err = h.handle(ctx, command)
		return err
	})
	return result, err
}

func (h RFQTransitionCommandHandler) handle(ctx context.Context, command RFQTransitionCommand) (*rfq.RFQ, error) {
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

	switch command.Transition() {
	case transition.ReviewRFQ:
		err = r.Review(command.Actor())
	default:
		err = r.Cancel(command.Actor(), command.Reason())
	}
	if err != nil {
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
