package http

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func presenterFor(role kernel.Role) presenter {
	return presenter{lifecycle: services.NewLifecycleValidator(), role: role}
}

func orderSummary(status salesorder.Status, archivedAt *time.Time) queries.SalesOrderSummary {
	return queries.SalesOrderSummary{
		ID:            kernel.NewSalesOrderID(),
		OrderNumber:   "SO-000001",
		RFQID:         kernel.NewRFQID(),
		QuoteID:       kernel.NewSalesQuoteID(),
		CustomerID:    kernel.CustomerID{UUID: kernel.NewUUID()},
		Amount:        kernel.MustMoney("130.00", "EUR"),
		Status:        status,
		PaymentStatus: salesorder.Unpaid,
		ArchivedAt:    archivedAt,
		CreatedAt:     time.Now(),
	}
}

func TestPresenter_SalesOrderActions(t *testing.T) {
	archivedAt := time.Now()

	tests := []struct {
		name       string
		role       kernel.Role
		status     salesorder.Status
		archivedAt *time.Time
		want       []string
	}{
		{"admin on pending order", kernel.Admin, salesorder.Pending, nil, []string{"markPaid", "startMaterialProcurement"}},
		{"admin on delivered order", kernel.Admin, salesorder.Delivered, nil, []string{"archiveSalesOrder", "markPaid"}},
		{"admin on archived order", kernel.Admin, salesorder.Delivered, &archivedAt, []string{"reopenSalesOrder"}},
		{"customer on pending order", kernel.Customer, salesorder.Pending, nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := presenterFor(tt.role).salesOrderSummary(orderSummary(tt.status, tt.archivedAt))
			assert.Equal(t, tt.want, resp.AvailableTransitions)
		})
	}
}

func TestPresenter_RFQActionsDependOnRole(t *testing.T) {
	summary := queries.RFQSummary{
		ID:          kernel.NewRFQID(),
		OwnerID:     kernel.CustomerID{UUID: kernel.NewUUID()},
		ProjectName: "Enclosure",
		Material:    "steel",
		Quantity:    10,
		Status:      rfq.Quoted,
		CreatedAt:   time.Now(),
	}

	assert.Equal(t, []string{"acceptQuote", "declineQuote"}, presenterFor(kernel.Customer).rfqSummary(summary).AvailableTransitions)
	assert.Equal(t, []string{"cancelRfq"}, presenterFor(kernel.Admin).rfqSummary(summary).AvailableTransitions)
	assert.Empty(t, presenterFor(kernel.Supplier).rfqSummary(summary).AvailableTransitions)
}
