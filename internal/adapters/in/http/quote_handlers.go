package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/salesquote"

	"github.com/labstack/echo/v4"
)

// AcceptQuote handles POST /api/v1/sales-quotes/{id}/accept.
func (s *Server) AcceptQuote(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewAcceptQuoteCommand(kernel.SalesQuoteID{UUID: id}, actor)
	if err != nil {
		return err
	}
	quote, err := s.h.AcceptQuote.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.present(actor).salesQuote(quote))
}

// DeclineQuote handles POST /api/v1/sales-quotes/{id}/decline.
func (s *Server) DeclineQuote(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req ReasonRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	cmd, err := commands.NewDeclineQuoteCommand(kernel.SalesQuoteID{UUID: id}, actor, req.Reason)
	if err != nil {
		return err
	}
	quote, err := s.h.DeclineQuote.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.present(actor).salesQuote(quote))
}

// AttachPurchaseOrder handles POST /api/v1/sales-quotes/{id}/purchase-order.
func (s *Server) AttachPurchaseOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req AttachPurchaseOrderRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	cmd, err := commands.NewAttachPurchaseOrderCommand(kernel.SalesQuoteID{UUID: id}, actor, req.FileRef, req.PONumber)
	if err != nil {
		return err
	}
	quote, err := s.h.AttachPurchaseOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.present(actor).salesQuote(quote))
}

// DownloadPurchaseOrder handles GET /api/v1/sales-quotes/{id}/purchase-order
// by redirecting to a short-lived download URL.
func (s *Server) DownloadPurchaseOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetPurchaseOrderFileQuery(kernel.SalesQuoteID{UUID: id}, actor)
	if err != nil {
		return err
	}
	file, err := s.h.GetPurchaseOrderFile.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	url, err := s.files.DownloadURL(c.Request().Context(), file.FileRef, s.downloadTTL)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, url)
}

// OverrideQuoteStatus handles POST /api/v1/sales-quotes/{id}/override.
func (s *Server) OverrideQuoteStatus(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req OverrideQuoteStatusRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	target, err := salesquote.StatusFromString(req.Target)
	if err != nil {
		return err
	}
	cmd, err := commands.NewOverrideQuoteStatusCommand(kernel.SalesQuoteID{UUID: id}, actor, target, req.Note)
	if err != nil {
		return err
	}
	quote, err := s.h.OverrideQuoteStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.present(actor).salesQuote(quote))
}

// ConvertToSalesOrder handles POST /api/v1/sales-quotes/{id}/sales-order.
func (s *Server) ConvertToSalesOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewConvertToSalesOrderCommand(kernel.NewSalesOrderID(), kernel.SalesQuoteID{UUID: id}, actor)
	if err != nil {
		return err
	}
	order, err := s.h.ConvertToSalesOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s.present(actor).salesOrder(order))
}

// IssuePurchaseOrder handles POST /api/v1/sales-quotes/{id}/purchase-orders.
func (s *Server) IssuePurchaseOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req IssuePurchaseOrderRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	cmd, err := commands.NewIssuePurchaseOrderCommand(
		kernel.NewPurchaseOrderID(), kernel.SalesQuoteID{UUID: id}, actor, req.DeliveryDate,
	)
	if err != nil {
		return err
	}
	po, err := s.h.IssuePurchaseOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s.present(actor).purchaseOrder(po))
}
