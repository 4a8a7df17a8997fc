package commands

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/purchaseorder"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/model/transition"
)

// ArchiveCommandHandler is the Archive Controller's archive operation.
// Only delivered orders can be archived; repeating the call changes nothing
// and writes nothing.
type ArchiveCommandHandler struct {
	uowFactory UoWFactory
}

func NewArchiveCommandHandler(uowFactory UoWFactory) ArchiveCommandHandler {
	return ArchiveCommandHandler{uowFactory: uowFactory}
}

func (h ArchiveCommandHandler) Handle(ctx context.Context, command ArchiveCommand) (ArchiveState, error) {
	if err := command.Validate(); err != nil {
		return ArchiveState{}, err
	}

	via, _ := transition.ArchiveFor(command.Entity())
	var result ArchiveState
	err := retryOnConflict(ctx, command.Entity(), via, func() error {
		var err error
		result, err = archiveOrReopen(ctx, h.uowFactory, command.Entity(), command.ID(), archiveActions(command.Actor()))
		return err
	})
	return result, err
}

// ReopenCommandHandler is the Archive Controller's reopen operation.
// Reopening an entity that is not archived fails with NotArchived.
type ReopenCommandHandler struct {
	uowFactory UoWFactory
}

func NewReopenCommandHandler(uowFactory UoWFactory) ReopenCommandHandler {
	return ReopenCommandHandler{uowFactory: uowFactory}
}

func (h ReopenCommandHandler) Handle(ctx context.Context, command ReopenCommand) (ArchiveState, error) {
	if err := command.Validate(); err != nil {
		return ArchiveState{}, err
	}

	via, _ := transition.ReopenFor(command.Entity())
	var result ArchiveState
	err := retryOnConflict(ctx, command.Entity(), via, func() error {
		var err error
		result, err = archiveOrReopen(ctx, h.uowFactory, command.Entity(), command.ID(), reopenActions(command.Actor()))
		return err
	})
	return result, err
}

// archiveSteps bundles the per-entity change an archive or reopen applies.
// Each returns whether anything changed.
type archiveSteps struct {
	purchaseOrder func(*purchaseorder.PurchaseOrder) (bool, error)
	salesOrder    func(*salesorder.SalesOrder) (bool, error)
}

func archiveActions(by kernel.Actor) archiveSteps {
	return archiveSteps{
		purchaseOrder: func(po *purchaseorder.PurchaseOrder) (bool, error) { return po.Archive(by) },
		salesOrder:    func(o *salesorder.SalesOrder) (bool, error) { return o.Archive(by) },
	}
}

func reopenActions(by kernel.Actor) archiveSteps {
	return archiveSteps{
		purchaseOrder: func(po *purchaseorder.PurchaseOrder) (bool, error) { return true, po.Reopen(by) },
		salesOrder:    func(o *salesorder.SalesOrder) (bool, error) { return true, o.Reopen(by) },
	}
}

func archiveOrReopen(
	ctx context.Context,
	factory UoWFactory,
	entity transition.EntityType,
	id kernel.UUID,
	actions archiveSteps,
) (ArchiveState, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ArchiveState{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var (
		state   ArchiveState
		changed bool
		err     error
	)
	switch entity {
	case transition.PurchaseOrder:
		repo := uow.PurchaseOrderRepository()
		po, getErr := repo.Get(ctx, kernel.PurchaseOrderID{UUID: id})
		if getErr != nil {
			return ArchiveState{}, getErr
		}
		if changed, err = actions.purchaseOrder(po); err != nil {
			return ArchiveState{}, err
		}
		if changed {
			err = repo.Update(ctx, po)
		}
		state = ArchiveState{Entity: entity, ID: id, Status: po.Status().String(), ArchivedAt: po.ArchivedAt()}
	default:
		repo := uow.SalesOrderRepository()
		order, getErr := repo.Get(ctx, kernel.SalesOrderID{UUID: id})
		if getErr != nil {
			return ArchiveState{}, getErr
		}
		if changed, err = actions.salesOrder(order); err != nil {
			return ArchiveState{}, err
		}
		if changed {
			err = repo.Update(ctx, order)
		}
		state = ArchiveState{Entity: entity, ID: id, Status: order.Status().String(), ArchivedAt: order.ArchivedAt()}
	}
	if err != nil {
		return ArchiveState{}, err
	}

	if changed {
		if err = uow.Commit(ctx); err != nil {
			return ArchiveState{}, err
		}
	}

	return state, nil
}
