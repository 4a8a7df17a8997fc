// Package supplierquoterepo persists supplier bids.
package supplierquoterepo

import (
	"time"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/supplierquote"

	"github.com/google/uuid"
)

// AcceptedPerRFQIndex is the partial unique index created by the migrations:
// at most one accepted quote per RFQ.
const AcceptedPerRFQIndex = "ux_supplier_quotes_accepted_per_rfq"

type SupplierQuoteDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RFQID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_supplier_quotes_rfq_supplier,priority:1"`
	SupplierID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_supplier_quotes_rfq_supplier,priority:2"`
	Price        pgutil.MoneyDTO `gorm:"embedded;embeddedPrefix:price_"`
	LeadTimeDays int             `gorm:"not null"`
	Status       string          `gorm:"not null"`
	SubmittedAt  time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime:false"`
	Version      int             `gorm:"not null"`
}

func (SupplierQuoteDTO) TableName() string {
	return "supplier_quotes"
}

func fromDomain(q *supplierquote.SupplierQuote) SupplierQuoteDTO {
	return SupplierQuoteDTO{
		ID:           q.ID().Bytes(),
		RFQID:        q.RFQID().Bytes(),
		SupplierID:   q.SupplierID().Bytes(),
		Price:        pgutil.FromMoney(q.Price()),
		LeadTimeDays: q.LeadTimeDays(),
		Status:       q.Status().String(),
		SubmittedAt:  q.SubmittedAt(),
		UpdatedAt:    q.UpdatedAt(),
		Version:      q.Version(),
	}
}

func toDomain(dto SupplierQuoteDTO) (*supplierquote.SupplierQuote, error) {
	id, err := kernel.FromRaw(dto.ID)
	if err != nil {
		return nil, err
	}
	rfqID, err := kernel.FromRaw(dto.RFQID)
	if err != nil {
		return nil, err
	}
	supplierID, err := kernel.FromRaw(dto.SupplierID)
	if err != nil {
		return nil, err
	}
	price, err := dto.Price.ToMoney()
	if err != nil {
		return nil, err
	}
	status, err := supplierquote.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return supplierquote.RestoreSupplierQuote(
		kernel.SupplierQuoteID{UUID: id},
		kernel.RFQID{UUID: rfqID},
		kernel.SupplierID{UUID: supplierID},
		price,
		dto.LeadTimeDays,
		status,
		dto.SubmittedAt.UTC(),
		dto.UpdatedAt.UTC(),
		dto.Version,
	), nil
}
