package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rfq"
	"marketplace/internal/core/domain/model/transition"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// CreateRFQ handles POST /api/v1/rfqs.
func (s *Server) CreateRFQ(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req CreateRFQRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	spec, err := rfq.NewSpecification(
		req.Specification.Material,
		req.Specification.Grade,
		req.Specification.Finishing,
		req.Specification.Tolerance,
		req.Specification.Quantity,
		req.Specification.ManufacturingProcess,
	)
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateRFQCommand(kernel.NewRFQID(), actor, req.ProjectName, spec)
	if err != nil {
		return err
	}

	created, err := s.h.CreateRFQ.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s.present(actor).rfq(created))
}

// ListRFQs handles GET /api/v1/rfqs.
func (s *Server) ListRFQs(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	query, err := queries.NewListRFQsQuery(actor)
	if err != nil {
		return err
	}
	rfqs, err := s.h.ListRFQs.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(rfqs, s.present(actor).rfqSummary))
}

// GetRFQ handles GET /api/v1/rfqs/{id}.
func (s *Server) GetRFQ(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetRFQQuery(kernel.RFQID{UUID: id}, actor)
	if err != nil {
		return err
	}
	detail, err := s.h.GetRFQ.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.present(actor).rfqDetail(detail))
}

// ReviewRFQ handles POST /api/v1/rfqs/{id}/review.
func (s *Server) ReviewRFQ(c echo.Context) error {
	return s.rfqTransition(c, transition.ReviewRFQ, "")
}

// CancelRFQ handles POST /api/v1/rfqs/{id}/cancel.
func (s *Server) CancelRFQ(c echo.Context) error {
	var req ReasonRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return s.rfqTransition(c, transition.CancelRFQ, req.Reason)
}

func (s *Server) rfqTransition(c echo.Context, via transition.Name, reason string) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewRFQTransitionCommand(kernel.RFQID{UUID: id}, actor, via, reason)
	if err != nil {
		return err
	}
	updated, err := s.h.RFQTransition.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.present(actor).rfq(updated))
}

// AssignSuppliers handles POST /api/v1/rfqs/{id}/assignments.
func (s *Server) AssignSuppliers(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req AssignSuppliersRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	suppliers := make([]kernel.SupplierID, 0, len(req.SupplierIDs))
	for _, raw := range req.SupplierIDs {
		supplierID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return err
		}
		suppliers = append(suppliers, kernel.SupplierID{UUID: supplierID})
	}
	cmd, err := commands.NewAssignSuppliersCommand(kernel.RFQID{UUID: id}, actor, suppliers)
	if err != nil {
		return err
	}
	updated, err := s.h.AssignSuppliers.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.present(actor).rfq(updated))
}

// SubmitSupplierQuote handles POST /api/v1/rfqs/{id}/supplier-quotes.
func (s *Server) SubmitSupplierQuote(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req SubmitSupplierQuoteRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	price, err := s.parseMoney("price", req.Price)
	if err != nil {
		return err
	}
	cmd, err := commands.NewSubmitSupplierQuoteCommand(
		kernel.NewSupplierQuoteID(), kernel.RFQID{UUID: id}, actor, price, req.LeadTimeDays,
	)
	if err != nil {
		return err
	}
	quote, err := s.h.SubmitSupplierQuote.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s.present(actor).supplierQuote(quote))
}

// PublishSalesQuote handles POST /api/v1/rfqs/{id}/sales-quotes.
func (s *Server) PublishSalesQuote(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req PublishSalesQuoteRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	supplierQuoteID, err := kernel.UUIDFromString(req.SupplierQuoteID)
	if err != nil {
		return err
	}
	markup, err := decimal.NewFromString(req.Markup)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("markup", err)
	}
	cmd, err := commands.NewPublishSalesQuoteCommand(
		kernel.NewSalesQuoteID(),
		kernel.RFQID{UUID: id},
		kernel.SupplierQuoteID{UUID: supplierQuoteID},
		actor,
		markup,
		req.ValidUntil,
	)
	if err != nil {
		return err
	}
	quote, err := s.h.PublishSalesQuote.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s.present(actor).salesQuote(quote))
}

// RejectSupplierQuote handles POST /api/v1/supplier-quotes/{id}/reject.
func (s *Server) RejectSupplierQuote(c echo.Context) error {
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
	cmd, err := commands.NewRejectSupplierQuoteCommand(kernel.SupplierQuoteID{UUID: id}, actor, req.Reason)
	if err != nil {
		return err
	}
	quote, err := s.h.RejectSupplierQuote.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.present(actor).supplierQuote(quote))
}

func (s *Server) parseMoney(field string, m Money) (kernel.Money, error) {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	currency := m.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}
	return kernel.NewMoney(amount, currency)
}
