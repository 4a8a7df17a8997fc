// Package purchaseorderrepo persists the orders placed with suppliers.
package purchaseorderrepo

import (
	"time"

	"marketplace/internal/adapters/out/postgres/pgutil"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/purchaseorder"

	"github.com/google/uuid"
)

type PurchaseOrderDTO struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SalesQuoteID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	SupplierID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Total              pgutil.MoneyDTO `gorm:"embedded;embeddedPrefix:total_"`
	DeliveryDate       time.Time       `gorm:"not null"`
	Status             string          `gorm:"not null"`
	ArchivedAt         *time.Time      `gorm:"index"`
	SupplierInvoiceURL *string
	CreatedAt          time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"not null;autoUpdateTime:false"`
	Version            int       `gorm:"not null"`
}

func (PurchaseOrderDTO) TableName() string {
	return "purchase_orders"
}

func fromDomain(po *purchaseorder.PurchaseOrder) PurchaseOrderDTO {
	return PurchaseOrderDTO{
		ID:                 po.ID().Bytes(),
		SalesQuoteID:       po.SalesQuoteID().Bytes(),
		SupplierID:         po.SupplierID().Bytes(),
		Total:              pgutil.FromMoney(po.Total()),
		DeliveryDate:       po.DeliveryDate(),
		Status:             po.Status().String(),
		ArchivedAt:         po.ArchivedAt(),
		SupplierInvoiceURL: po.SupplierInvoiceURL(),
		CreatedAt:          po.CreatedAt(),
		UpdatedAt:          po.UpdatedAt(),
		Version:            po.Version(),
	}
}

func toDomain(dto PurchaseOrderDTO) (*purchaseorder.PurchaseOrder, error) {
	id, err := kernel.FromRaw(dto.ID)
	if err != nil {
		return nil, err
	}
	salesQuoteID, err := kernel.FromRaw(dto.SalesQuoteID)
	if err != nil {
		return nil, err
	}
	supplierID, err := kernel.FromRaw(dto.SupplierID)
	if err != nil {
		return nil, err
	}
	total, err := dto.Total.ToMoney()
	if err != nil {
		return nil, err
	}
	status, err := purchaseorder.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return purchaseorder.RestorePurchaseOrder(
		kernel.PurchaseOrderID{UUID: id},
		kernel.SalesQuoteID{UUID: salesQuoteID},
		kernel.SupplierID{UUID: supplierID},
		total,
		dto.DeliveryDate.UTC(),
		status,
		pgutil.UTC(dto.ArchivedAt),
		dto.SupplierInvoiceURL,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
		dto.Version,
	), nil
}
