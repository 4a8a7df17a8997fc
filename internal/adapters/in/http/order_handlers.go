package http

import (
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/salesorder"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListPurchaseOrders handles GET /api/v1/purchase-orders.
func (s *Server) ListPurchaseOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	filter, err := archiveFilter(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListPurchaseOrdersQuery(actor, filter)
	if err != nil {
		return err
	}
	orders, err := s.h.ListPurchaseOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(orders, s.present(actor).purchaseOrderSummary))
}

// AdvancePurchaseOrder handles POST /api/v1/purchase-orders/{id}/transitions.
func (s *Server) AdvancePurchaseOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req PurchaseOrderTransitionRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	cmd, err := commands.NewAdvancePurchaseOrderCommand(
		kernel.PurchaseOrderID{UUID: id}, actor, transition.Name(req.Transition),
	)
	if err != nil {
		return err
	}
	po, err := s.h.AdvancePurchaseOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.present(actor).purchaseOrder(po))
}

// AttachSupplierInvoice handles POST /api/v1/purchase-orders/{id}/invoice.
func (s *Server) AttachSupplierInvoice(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req AttachInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	cmd, err := commands.NewAttachSupplierInvoiceCommand(kernel.PurchaseOrderID{UUID: id}, actor, req.FileRef)
	if err != nil {
		return err
	}
	po, err := s.h.AttachSupplierInvoice.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.present(actor).purchaseOrder(po))
}

// ListSalesOrders handles GET /api/v1/sales-orders.
func (s *Server) ListSalesOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	orders, err := s.salesOrders(c, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(orders, s.present(actor).salesOrderSummary))
}

// ExportSalesOrders handles GET /api/v1/sales-orders/export. Only admins
// may export; the workbook honours the same archived flag as the listing.
func (s *Server) ExportSalesOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if actor.Role() != kernel.Admin {
		return errs.NewTransitionDeniedError(errs.ErrRoleNotPermitted, "sales_order", "export", "", actor.Role().String())
	}
	orders, err := s.salesOrders(c, actor)
	if err != nil {
		return err
	}

	f, err := buildSalesOrderWorkbook(orders)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	filename := "sales-orders-" + time.Now().UTC().Format("20060102") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}

func (s *Server) salesOrders(c echo.Context, actor kernel.Actor) ([]queries.SalesOrderSummary, error) {
	filter, err := archiveFilter(c)
	if err != nil {
		return nil, err
	}
	query, err := queries.NewListSalesOrdersQuery(actor, filter)
	if err != nil {
		return nil, err
	}
	return s.h.ListSalesOrders.Handle(c.Request().Context(), query)
}

// AdvanceOrderStatus handles POST /api/v1/sales-orders/{id}/advance.
func (s *Server) AdvanceOrderStatus(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req AdvanceOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	next, err := salesorder.StatusFromString(req.Status)
	if err != nil {
		return err
	}
	var shipping *salesorder.Shipping
	if next == salesorder.Shipped || req.TrackingNumber != "" || req.ShippingCarrier != "" {
		sh, err := salesorder.NewShipping(req.TrackingNumber, req.ShippingCarrier)
		if err != nil {
			return err
		}
		shipping = &sh
	}
	cmd, err := commands.NewAdvanceOrderStatusCommand(kernel.SalesOrderID{UUID: id}, actor, next, shipping)
	if err != nil {
		return err
	}
	order, err := s.h.AdvanceOrderStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.present(actor).salesOrder(order))
}

// MarkPaid handles POST /api/v1/sales-orders/{id}/payment.
func (s *Server) MarkPaid(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkPaidCommand(kernel.SalesOrderID{UUID: id}, actor)
	if err != nil {
		return err
	}
	order, err := s.h.MarkPaid.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.present(actor).salesOrder(order))
}

// Reorder handles POST /api/v1/sales-orders/{id}/reorder.
func (s *Server) Reorder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewReorderCommand(kernel.NewRFQID(), kernel.SalesOrderID{UUID: id}, actor)
	if err != nil {
		return err
	}
	created, err := s.h.Reorder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s.present(actor).rfq(created))
}
