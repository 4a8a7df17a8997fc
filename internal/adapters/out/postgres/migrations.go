package postgres

import (
	"context"
	"fmt"

	"marketplace/internal/adapters/out/postgres/purchaseorderrepo"
	"marketplace/internal/adapters/out/postgres/rfqrepo"
	"marketplace/internal/adapters/out/postgres/salesorderrepo"
	"marketplace/internal/adapters/out/postgres/salesquoterepo"
	"marketplace/internal/adapters/out/postgres/supplierquoterepo"
	"marketplace/internal/adapters/out/postgres/transitionlog"

	"gorm.io/gorm"
)

// OrderNumberSequence backs SequenceNumberer.
const OrderNumberSequence = "sales_order_number_seq"

type foreignKey struct {
	table, name, column, references string
}

var foreignKeys = []foreignKey{
	{"rfq_suppliers", "fk_rfq_suppliers_rfq", "rfq_id", "rfqs(id) ON DELETE CASCADE"},
	{"supplier_quotes", "fk_supplier_quotes_rfq", "rfq_id", "rfqs(id)"},
	{"sales_quotes", "fk_sales_quotes_rfq", "rfq_id", "rfqs(id)"},
	{"sales_quotes", "fk_sales_quotes_supplier_quote", "supplier_quote_id", "supplier_quotes(id)"},
	{"purchase_orders", "fk_purchase_orders_sales_quote", "sales_quote_id", "sales_quotes(id)"},
	{"sales_orders", "fk_sales_orders_quote", "quote_id", "sales_quotes(id)"},
	{"sales_orders", "fk_sales_orders_rfq", "rfq_id", "rfqs(id)"},
	{"rfqs", "fk_rfqs_origin_order", "origin_order_id", "sales_orders(id)"},
}

// Migrate creates or upgrades the schema. It is idempotent.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	err := db.AutoMigrate(
		&rfqrepo.RFQDTO{},
		&rfqrepo.SupplierDTO{},
		&supplierquoterepo.SupplierQuoteDTO{},
		&salesquoterepo.SalesQuoteDTO{},
		&purchaseorderrepo.PurchaseOrderDTO{},
		&salesorderrepo.SalesOrderDTO{},
		&transitionlog.RecordDTO{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, fk := range foreignKeys {
		if db.Migrator().HasConstraint(fk.table, fk.name) {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s",
			fk.table, fk.name, fk.column, fk.references)
		if err = db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("add %s: %w", fk.name, err)
		}
	}

	statements := []string{
		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s ON supplier_quotes (rfq_id) WHERE status = 'accepted'`,
			supplierquoterepo.AcceptedPerRFQIndex),
		fmt.Sprintf(`CREATE SEQUENCE IF NOT EXISTS %s`, OrderNumberSequence),
	}
	for _, stmt := range statements {
		if err = db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}
