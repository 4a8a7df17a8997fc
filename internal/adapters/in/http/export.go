package http

import (
	"fmt"
	"time"

	"marketplace/internal/core/application/usecases/queries"

	"github.com/xuri/excelize/v2"
)

const (
	salesOrderSheet = "Sales orders"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var salesOrderExportHeaders = []string{
	"Order number", "Project", "Customer", "Status", "Payment",
	"Amount", "Currency", "Tracking number", "Carrier", "Paid at", "Created at", "Archived at",
}

// buildSalesOrderWorkbook renders orders as a single-sheet workbook with a
// styled header row and a count row at the bottom.
func buildSalesOrderWorkbook(orders []queries.SalesOrderSummary) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", salesOrderSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return nil, err
	}
	header := make([]any, 0, len(salesOrderExportHeaders))
	for _, h := range salesOrderExportHeaders {
		header = append(header, h)
	}
	if err := f.SetSheetRow(salesOrderSheet, "A1", &header); err != nil {
		return nil, err
	}
	last, _ := excelize.ColumnNumberToName(len(salesOrderExportHeaders))
	if err := f.SetCellStyle(salesOrderSheet, "A1", last+"1", headerStyle); err != nil {
		return nil, err
	}

	for i, o := range orders {
		row := []any{
			o.OrderNumber,
			o.ProjectName,
			o.CustomerID.String(),
			o.Status.String(),
			o.PaymentStatus.String(),
			o.Amount.Amount().InexactFloat64(),
			o.Amount.Currency(),
			deref(o.TrackingNumber),
			deref(o.Carrier),
			formatTime(o.PaidAt),
			o.CreatedAt.UTC().Format(time.RFC3339),
			formatTime(o.ArchivedAt),
		}
		if err := f.SetSheetRow(salesOrderSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	summaryRow := len(orders) + 2
	summary := []any{"Total", fmt.Sprintf("%d orders", len(orders))}
	if err := f.SetSheetRow(salesOrderSheet, fmt.Sprintf("A%d", summaryRow), &summary); err != nil {
		return nil, err
	}

	widths := []float64{14, 24, 38, 20, 10, 12, 10, 20, 14, 22, 22, 22}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(salesOrderSheet, col, col, w); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
