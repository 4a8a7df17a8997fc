package commands

import (
	"context"

	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/model/transition"
)

// MarkPaidCommandHandler records payment. Payment is independent of the
// production stage and of archiving; marking twice writes nothing.
type MarkPaidCommandHandler struct {
	uowFactory UoWFactory
}

func NewMarkPaidCommandHandler(uowFactory UoWFactory) MarkPaidCommandHandler {
	return MarkPaidCommandHandler{uowFactory: uowFactory}
}

func (h MarkPaidCommandHandler) Handle(ctx context.Context, command MarkPaidCommand) (*salesorder.SalesOrder, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *salesorder.SalesOrder
	err := retryOnConflict(ctx, transition.SalesOrder, transition.MarkPaid, func() error {
		var err error
		result, err = h.handle(ctx, command)
		return err
	})
	return result, err
}

func (h MarkPaidCommandHandler) handle(ctx context.Context, command MarkPaidCommand) (*salesorder.SalesOrder, error) {
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

	changed, err := order.MarkPaid(command.Actor())
	if err != nil {
		return nil, err
	}
	if !changed {
		return order, nil
	}

	if err = repo.Update(ctx, order); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return order, nil
}
