package commands

import (
	"context"

	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/model/transition"
)

// AdvanceOrderStatusCommandHandler applies one production stage. Two admins
// racing to different stages produce one winner; the loser's replay sees
// the moved order and fails with IllegalFromState.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory UoWFactory
}

func NewAdvanceOrderStatusCommandHandler(uowFactory UoWFactory) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{uowFactory: uowFactory}
}

func (h AdvanceOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command AdvanceOrderStatusCommand,
) (*salesorder.SalesOrder, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	via, ok := salesorder.StepInto(command.Next())
	if !ok {
		via = transition.Name("advanceTo:" + command.Next().String())
	}

	var result *salesorder.SalesOrder
	err := retryOnConflict(ctx, transition.SalesOrder, via, func() error {
		var err error
		result, err = h.handle(ctx, command)
		return err
	})
	return result, err
}

func (h AdvanceOrderStatusCommandHandler) handle(
	ctx context.Context,
	command AdvanceOrderStatusCommand,
) (*salesorder.SalesOrder, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.SalesOrderRepository()
	order, err := repo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = order.AdvanceTo(command.Actor(), command.Next(), command.Shipping()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}
