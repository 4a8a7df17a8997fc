// Package salesorderrepo persists customer sales orders.
package salesorderrepo

import (
	"time"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/salesorder"

	"github.com/google/uuid"
)

// Unique indexes of sales_orders. Insert failures are told apart by name.
const (
	QuoteIndex  = "idx_sales_orders_quote_id"
	NumberIndex = "idx_sales_orders_order_number"
)

type SalesOrderDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RFQID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	QuoteID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_sales_orders_quote_id"`
	CustomerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderNumber    string     `gorm:"not null;uniqueIndex:idx_sales_orders_order_number"`
	Status         string     `gorm:"not null"`
	PaymentStatus  string     `gorm:"not null"`
	TrackingNumber *string
	Carrier        *string
	PaidAt         *time.Time
	ArchivedAt     *time.Time `gorm:"index"`
	CreatedAt      time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt      time.Time  `gorm:"not null;autoUpdateTime:false"`
	Version        int        `gorm:"not null"`
}

func (SalesOrderDTO) TableName() string {
	return "sales_orders"
}

func fromDomain(o *salesorder.SalesOrder) SalesOrderDTO {
	dto := SalesOrderDTO{
		ID:            o.ID().Bytes(),
		RFQID:         o.RFQID().Bytes(),
		QuoteID:       o.QuoteID().Bytes(),
		CustomerID:    o.CustomerID().Bytes(),
		OrderNumber:   o.OrderNumber(),
		Status:        o.Status().String(),
		PaymentStatus: o.PaymentStatus().String(),
		PaidAt:        o.PaidAt(),
		ArchivedAt:    o.ArchivedAt(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		Version:       o.Version(),
	}
	if s := o.Shipping(); s != nil {
		tracking, carrier := s.TrackingNumber(), s.Carrier()
		dto.TrackingNumber = &tracking
		dto.Carrier = &carrier
	}
	return dto
}

func toDomain(dto SalesOrderDTO) (*salesorder.SalesOrder, error) {
	id, err := kernel.FromRaw(dto.ID)
	if err != nil {
		return nil, err
	}
	rfqID, err := kernel.FromRaw(dto.RFQID)
	if err != nil {
		return nil, err
	}
	quoteID, err := kernel.FromRaw(dto.QuoteID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.FromRaw(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	status, err := salesorder.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	payment, err := salesorder.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	var shipping *salesorder.Shipping
	if dto.TrackingNumber != nil {
		carrier := ""
		if dto.Carrier != nil {
			carrier = *dto.Carrier
		}
		s, shipErr := salesorder.NewShipping(*dto.TrackingNumber, carrier)
		if shipErr != nil {
			return nil, shipErr
		}
		shipping = &s
	}

	return salesorder.RestoreSalesOrder(
		kernel.SalesOrderID{UUID: id},
		kernel.RFQID{UUID: rfqID},
		kernel.SalesQuoteID{UUID: quoteID},
		kernel.CustomerID{UUID: customerID},
		dto.OrderNumber,
		status,
		payment,
		shipping,
		pgutil.UTC(dto.PaidAt),
		pgutil.UTC(dto.ArchivedAt),
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
		dto.Version,
	), nil
}
