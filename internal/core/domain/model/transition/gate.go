package transition

import (
	"slices"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	adminOnly       = []kernel.Role{kernel.Admin}
	customerOnly    = []kernel.Role{kernel.Customer}
	supplierOnly    = []kernel.Role{kernel.Supplier}
	supplierOrAdmin = []kernel.Role{kernel.Supplier, kernel.Admin}

	// roleGateTransitions is the Role Gate: transition -> roles allowed to invoke it.
	roleGateTransitions = map[Name][]kernel.Role{
		CreateRFQ:           customerOnly,
		SubmitSupplierQuote: supplierOnly,
		Reorder:             customerOnly,

		ReviewRFQ:         adminOnly,
		AssignToSuppliers: adminOnly,
		PublishQuote:      adminOnly,
		CancelRFQ:         adminOnly,

		SelectSupplierQuote: adminOnly,
		RejectSupplierQuote: adminOnly,
		AcceptQuote:         customerOnly,
		DeclineQuote:        customerOnly,
		AttachPurchaseOrder: customerOnly,
		OverrideQuoteStatus: adminOnly,
		ConvertToSalesOrder: adminOnly,
		IssuePurchaseOrder:  adminOnly,

		AcceptPurchaseOrder:   supplierOrAdmin,
		StartProduction:       supplierOrAdmin,
		ShipPurchaseOrder:     supplierOrAdmin,
		DeliverPurchaseOrder:  adminOnly,
		CancelPurchaseOrder:   adminOnly,
		AttachSupplierInvoice: supplierOnly,
		ArchivePurchaseOrder:  adminOnly,
		ReopenPurchaseOrder:   adminOnly,

		StartMaterialProcurement: adminOnly,
		StartManufacturing:       adminOnly,
		StartFinishing:           adminOnly,
		StartQualityCheck:        adminOnly,
		StartPacking:             adminOnly,
		ShipOrder:                adminOnly,
		DeliverOrder:             adminOnly,
		MarkPaid:                 adminOnly,
		ArchiveSalesOrder:        adminOnly,
		ReopenSalesOrder:         adminOnly,
	}
)

// Known reports whether the Role Gate has an entry for n.
func Known(n Name) bool {
	_, ok := roleGateTransitions[n]
	return ok
}

// Permits reports whether role may invoke n. Unknown transitions permit nobody.
func Permits(n Name, role kernel.Role) bool {
	return slices.Contains(roleGateTransitions[n], role)
}

// RolesFor returns a copy of the roles allowed to invoke n.
func RolesFor(n Name) []kernel.Role {
	return slices.Clone(roleGateTransitions[n])
}

// Names returns every transition known to the Role Gate, sorted.
func Names() []Name {
	names := make([]Name, 0, len(roleGateTransitions))
	for n := range roleGateTransitions {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Authorize runs the Role Gate alone. It is used for creation operations and
// for checks that must happen before the source state is known.
func Authorize(entity EntityType, via Name, role kernel.Role) error {
	if !Known(via) {
		return errs.NewTransitionDeniedError(errs.ErrUnknownTransition, entity.String(), via.String(), "", role.String())
	}
	if !Permits(via, role) {
		return errs.NewTransitionDeniedError(errs.ErrRoleNotPermitted, entity.String(), via.String(), "", role.String())
	}
	return nil
}
