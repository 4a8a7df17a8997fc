package services

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/purchaseorder"
	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/model/salesquote"
	"marketplace/internal/core/domain/model/supplierquote"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"
)

// LifecycleValidator answers "may role apply transition to an entity in
// state" for any entity type, using persisted status strings. The HTTP
// adapter renders Available into every entity response.
type LifecycleValidator struct {
	tables map[transition.EntityType]transition.Validator
}

func NewLifecycleValidator() LifecycleValidator {
	return LifecycleValidator{
		tables: map[transition.EntityType]transition.Validator{
			transition.RFQ:           rfq.Lifecycle,
			transition.SupplierQuote: supplierquote.Lifecycle,
			transition.SalesQuote:    salesquote.Lifecycle,
			transition.PurchaseOrder: purchaseorder.Lifecycle,
			transition.SalesOrder:    salesorder.Lifecycle,
		},
	}
}

// Validate returns the next state or a denial. An unregistered entity type
// is reported as UnknownTransition.
func (v LifecycleValidator) Validate(
	entity transition.EntityType,
	state string,
	via transition.Name,
	role kernel.Role,
) (string, error) {
	table, ok := v.tables[entity]
	if !ok {
		return "", errs.NewTransitionDeniedError(errs.ErrUnknownTransition, entity.String(), via.String(), state, role.String())
	}
	return table.ValidateString(state, via, role)
}

// Available lists the transitions role may apply from state.
func (v LifecycleValidator) Available(entity transition.EntityType, state string, role kernel.Role) []transition.Name {
	table, ok := v.tables[entity]
	if !ok {
		return nil
	}
	var names []transition.Name
	for _, via := range table.Transitions() {
		if _, err := table.ValidateString(state, via, role); err == nil {
			names = append(names, via)
		}
	}
	return names
}
