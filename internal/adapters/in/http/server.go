// Package http is the REST adapter of the order lifecycle. Every route runs
// behind bearer authentication and OpenAPI request validation; handlers
// translate requests into commands and queries and map the results back.
package http

import (
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const (
	DefaultDownloadTTL = 15 * time.Minute
	DefaultCurrency    = "EUR"
)

type Options struct {
	// DownloadTTL bounds the lifetime of purchase order download links.
	DownloadTTL time.Duration
	// DefaultCurrency applies to prices submitted without a currency.
	DefaultCurrency string
}

// Handlers groups the use cases the API exposes.
type Handlers struct {
	// Commands
	CreateRFQ             commands.CreateRFQCommandHandler
	RFQTransition         commands.RFQTransitionCommandHandler
	AssignSuppliers       commands.AssignSuppliersCommandHandler
	SubmitSupplierQuote   commands.SubmitSupplierQuoteCommandHandler
	RejectSupplierQuote   commands.RejectSupplierQuoteCommandHandler
	PublishSalesQuote     commands.PublishSalesQuoteCommandHandler
	AcceptQuote           commands.AcceptQuoteCommandHandler
	DeclineQuote          commands.DeclineQuoteCommandHandler
	AttachPurchaseOrder   commands.AttachPurchaseOrderCommandHandler
	OverrideQuoteStatus   commands.OverrideQuoteStatusCommandHandler
	ConvertToSalesOrder   commands.ConvertToSalesOrderCommandHandler
	IssuePurchaseOrder    commands.IssuePurchaseOrderCommandHandler
	AdvancePurchaseOrder  commands.AdvancePurchaseOrderCommandHandler
	AttachSupplierInvoice commands.AttachSupplierInvoiceCommandHandler
	AdvanceOrderStatus    commands.AdvanceOrderStatusCommandHandler
	MarkPaid              commands.MarkPaidCommandHandler
	Reorder               commands.ReorderCommandHandler
	Archive               commands.ArchiveCommandHandler
	Reopen                commands.ReopenCommandHandler
	UploadFile            commands.UploadFileCommandHandler

	// Queries
	ListRFQs             queries.ListRFQsQueryHandler
	GetRFQ               queries.GetRFQQueryHandler
	ListSalesOrders      queries.ListSalesOrdersQueryHandler
	ListPurchaseOrders   queries.ListPurchaseOrdersQueryHandler
	GetHistory           queries.GetHistoryQueryHandler
	GetPurchaseOrderFile queries.GetPurchaseOrderFileQueryHandler
}

// Server holds the API handlers.
type Server struct {
	h               Handlers
	files           ports.FileStore
	downloadTTL     time.Duration
	defaultCurrency string
	lifecycle       services.LifecycleValidator
}

func NewServer(handlers Handlers, files ports.FileStore, opts Options) *Server {
	if opts.DownloadTTL <= 0 {
		opts.DownloadTTL = DefaultDownloadTTL
	}
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = DefaultCurrency
	}
	return &Server{
		h:               handlers,
		files:           files,
		downloadTTL:     opts.DownloadTTL,
		defaultCurrency: opts.DefaultCurrency,
		lifecycle:       services.NewLifecycleValidator(),
	}
}

// Register mounts every API route on g, which is expected to carry the
// authentication and validation middleware.
func (s *Server) Register(g *echo.Group) {
	g.POST("/rfqs", s.CreateRFQ)
	g.GET("/rfqs", s.ListRFQs)
	g.GET("/rfqs/:id", s.GetRFQ)
	g.POST("/rfqs/:id/review", s.ReviewRFQ)
	g.POST("/rfqs/:id/assignments", s.AssignSuppliers)
	g.POST("/rfqs/:id/cancel", s.CancelRFQ)
	g.POST("/rfqs/:id/supplier-quotes", s.SubmitSupplierQuote)
	g.POST("/rfqs/:id/sales-quotes", s.PublishSalesQuote)

	g.POST("/supplier-quotes/:id/reject", s.RejectSupplierQuote)

	g.POST("/sales-quotes/:id/accept", s.AcceptQuote)
	g.POST("/sales-quotes/:id/decline", s.DeclineQuote)
	g.POST("/sales-quotes/:id/purchase-order", s.AttachPurchaseOrder)
	g.GET("/sales-quotes/:id/purchase-order", s.DownloadPurchaseOrder)
	g.POST("/sales-quotes/:id/override", s.OverrideQuoteStatus)
	g.POST("/sales-quotes/:id/sales-order", s.ConvertToSalesOrder)
	g.POST("/sales-quotes/:id/purchase-orders", s.IssuePurchaseOrder)

	g.GET("/purchase-orders", s.ListPurchaseOrders)
	g.POST("/purchase-orders/:id/transitions", s.AdvancePurchaseOrder)
	g.POST("/purchase-orders/:id/invoice", s.AttachSupplierInvoice)

	g.GET("/sales-orders", s.ListSalesOrders)
	g.GET("/sales-orders/export", s.ExportSalesOrders)
	g.POST("/sales-orders/:id/advance", s.AdvanceOrderStatus)
	g.POST("/sales-orders/:id/payment", s.MarkPaid)
	g.POST("/sales-orders/:id/reorder", s.Reorder)

	g.POST("/archive/:entityType/:id", s.Archive)
	g.POST("/reopen/:entityType/:id", s.Reopen)
	g.GET("/history/:entityType/:id", s.GetHistory)

	g.POST("/files", s.UploadFile)
}
