// Package queries contains the read side of the order lifecycle. Handlers
// read straight from the store with SQL and return flat response structs;
// they never load aggregates. What an actor may see follows the same
// ownership rules the commands enforce.
package queries

import (
	"context"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArchiveFilter selects one side of the archived/active partition, or both.
type ArchiveFilter int

const (
	ActiveOnly ArchiveFilter = iota
	ArchivedOnly
	AnyArchiveState
)

// ArchiveFilterFromFlag maps the ?archived= query flag.
func ArchiveFilterFromFlag(archived bool) ArchiveFilter {
	if archived {
		return ArchivedOnly
	}
	return ActiveOnly
}

func (f ArchiveFilter) condition(column string) string {
	switch f {
	case ActiveOnly:
		return column + " IS NULL"
	case ArchivedOnly:
		return column + " IS NOT NULL"
	default:
		return "TRUE"
	}
}

type ownerColumn struct {
	table  string
	column string
	role   kernel.Role
}

var owners = map[transition.EntityType]ownerColumn{
	transition.RFQ:           {table: "rfqs", column: "owner_id", role: kernel.Customer},
	transition.SupplierQuote: {table: "supplier_quotes", column: "supplier_id", role: kernel.Supplier},
	transition.SalesQuote:    {table: "sales_quotes", column: "customer_id", role: kernel.Customer},
	transition.PurchaseOrder: {table: "purchase_orders", column: "supplier_id", role: kernel.Supplier},
	transition.SalesOrder:    {table: "sales_orders", column: "customer_id", role: kernel.Customer},
}

// ensureVisible returns nil for admins and for the customer or supplier the
// entity belongs to. Suppliers also see the RFQs they are assigned to.
func ensureVisible(
	ctx context.Context,
	db *gorm.DB,
	entity transition.EntityType,
	id kernel.UUID,
	actor kernel.Actor,
) error {
	if actor.Role() == kernel.Admin {
		return nil
	}

	var query string
	switch owner, ok := owners[entity]; {
	case !ok:
		return entity.Validate()
	case entity == transition.RFQ && actor.Role() == kernel.Supplier:
		query = `SELECT EXISTS (SELECT 1 FROM rfq_suppliers WHERE rfq_id = ? AND supplier_id = ?)`
	case owner.role == actor.Role():
		query = fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = ? AND %s = ?)`, owner.table, owner.column)
	default:
		return errs.NewNotOwnerError(entity.String(), id, actor.ID())
	}

	var visible bool
	if err := db.WithContext(ctx).Raw(query, id.Bytes(), actor.ID().Bytes()).Scan(&visible).Error; err != nil {
		return err
	}
	if !visible {
		return errs.NewNotOwnerError(entity.String(), id, actor.ID())
	}
	return nil
}

func denyListing(entity transition.EntityType, role kernel.Role) error {
	return errs.NewTransitionDeniedError(errs.ErrRoleNotPermitted, entity.String(), "list", "", role.String())
}

func uuidFrom(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.FromRaw(raw)
}
