// Package salesquoterepo persists customer-facing sales quotes.
package salesquoterepo

import (
	"time"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/salesquote"

	"github.com/google/uuid"
)

type SalesQuoteDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RFQID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierQuoteID     uuid.UUID       `gorm:"type:uuid;not null"`
	CustomerID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount              pgutil.MoneyDTO `gorm:"embedded;embeddedPrefix:amount_"`
	ValidUntil          time.Time       `gorm:"not null"`
	EstimatedDelivery   time.Time       `gorm:"not null"`
	Status              string          `gorm:"not null"`
	PurchaseOrderURL    *string
	PurchaseOrderNumber *string
	DecisionNote        string
	AcceptedAt          *time.Time
	CreatedAt           time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt           time.Time `gorm:"not null;autoUpdateTime:false"`
	Version             int       `gorm:"not null"`
}

func (SalesQuoteDTO) TableName() string {
	return "sales_quotes"
}

func fromDomain(q *salesquote.SalesQuote) SalesQuoteDTO {
	dto := SalesQuoteDTO{
		ID:                q.ID().Bytes(),
		RFQID:             q.RFQID().Bytes(),
		SupplierQuoteID:   q.SupplierQuoteID().Bytes(),
		CustomerID:        q.CustomerID().Bytes(),
		Amount:            pgutil.FromMoney(q.Amount()),
		ValidUntil:        q.ValidUntil(),
		EstimatedDelivery: q.EstimatedDelivery(),
		Status:            q.Status().String(),
		DecisionNote:      q.DecisionNote(),
		AcceptedAt:        q.AcceptedAt(),
		CreatedAt:         q.CreatedAt(),
		UpdatedAt:         q.UpdatedAt(),
		Version:           q.Version(),
	}
	if po := q.PurchaseOrder(); po != nil {
		url, number := po.URL(), po.Number()
		dto.PurchaseOrderURL = &url
		dto.PurchaseOrderNumber = &number
	}
	return dto
}

func toDomain(dto SalesQuoteDTO) (*salesquote.SalesQuote, error) {
	id, err := kernel.FromRaw(dto.ID)
	if err != nil {
		return nil, err
	}
	rfqID, err := kernel.FromRaw(dto.RFQID)
	if err != nil {
		return nil, err
	}
	supplierQuoteID, err := kernel.FromRaw(dto.SupplierQuoteID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.FromRaw(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	amount, err := dto.Amount.ToMoney()
	if err != nil {
		return nil, err
	}
	status, err := salesquote.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var po *salesquote.PurchaseOrderRef
	if dto.PurchaseOrderURL != nil && dto.PurchaseOrderNumber != nil {
		ref, refErr := salesquote.NewPurchaseOrderRef(*dto.PurchaseOrderURL, *dto.PurchaseOrderNumber)
		if refErr != nil {
			return nil, refErr
		}
		po = &ref
	}

	terms := salesquote.Terms{
		Amount:            amount,
		ValidUntil:        dto.ValidUntil.UTC(),
		EstimatedDelivery: dto.EstimatedDelivery.UTC(),
	}
	return salesquote.RestoreSalesQuote(
		kernel.SalesQuoteID{UUID: id},
		kernel.RFQID{UUID: rfqID},
		kernel.SupplierQuoteID{UUID: supplierQuoteID},
		kernel.CustomerID{UUID: customerID},
		terms,
		status,
		po,
		dto.DecisionNote,
		pgutil.UTC(dto.AcceptedAt),
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
		dto.Version,
	), nil
}
