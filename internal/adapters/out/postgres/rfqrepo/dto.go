// Package rfqrepo persists RFQs and their assigned supplier sets.
package rfqrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rfq"

	"github.com/google/uuid"
)

type RFQDTO struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OwnerID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	ProjectName   string           `gorm:"not null"`
	Spec          SpecificationDTO `gorm:"embedded;embeddedPrefix:spec_"`
	Status        string           `gorm:"not null;index"`
	OriginOrderID *uuid.UUID       `gorm:"type:uuid"`
	Suppliers     []SupplierDTO    `gorm:"foreignKey:RFQID"`
	CreatedAt     time.Time        `gorm:"not null;autoCreateTime:false"`
	UpdatedAt     time.Time        `gorm:"not null;autoUpdateTime:false"`
	Version       int              `gorm:"not null"`
}

func (RFQDTO) TableName() string {
	return "rfqs"
}

type SpecificationDTO struct {
	Material             string `gorm:"not null"`
	Grade                string
	Finishing            string
	Tolerance            string
	Quantity             int    `gorm:"not null"`
	ManufacturingProcess string `gorm:"not null"`
}

// SupplierDTO is one row of the assigned supplier set. Position keeps the
// assignment order.
type SupplierDTO struct {
	RFQID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	SupplierID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position   int       `gorm:"not null"`
}

func (SupplierDTO) TableName() string {
	return "rfq_suppliers"
}

func fromDomain(r *rfq.RFQ) RFQDTO {
	spec := r.Specification()
	dto := RFQDTO{
		ID:          r.ID().Bytes(),
		OwnerID:     r.Owner().Bytes(),
		ProjectName: r.ProjectName(),
		Spec: SpecificationDTO{
			Material:             spec.Material(),
			Grade:                spec.Grade(),
			Finishing:            spec.Finishing(),
			Tolerance:            spec.Tolerance(),
			Quantity:             spec.Quantity(),
			ManufacturingProcess: spec.ManufacturingProcess(),
		},
		Status:        r.Status().String(),
		OriginOrderID: kernel.OptionalRaw(r.OriginOrderID()),
		CreatedAt:     r.CreatedAt(),
		UpdatedAt:     r.UpdatedAt(),
		Version:       r.Version(),
	}
	dto.Suppliers = suppliersOf(r)
	return dto
}

func suppliersOf(r *rfq.RFQ) []SupplierDTO {
	suppliers := r.Suppliers()
	rows := make([]SupplierDTO, 0, len(suppliers))
	for i, s := range suppliers {
		rows = append(rows, SupplierDTO{RFQID: r.ID().Bytes(), SupplierID: s.Bytes(), Position: i})
	}
	return rows
}

func toDomain(dto RFQDTO) (*rfq.RFQ, error) {
	id, err := kernel.FromRaw(dto.ID)
	if err != nil {
		return nil, err
	}
	owner, err := kernel.FromRaw(dto.OwnerID)
	if err != nil {
		return nil, err
	}
	spec, err := rfq.NewSpecification(dto.Spec.Material, dto.Spec.Grade, dto.Spec.Finishing,
		dto.Spec.Tolerance, dto.Spec.Quantity, dto.Spec.ManufacturingProcess)
	if err != nil {
		return nil, err
	}
	status, err := rfq.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var origin *kernel.SalesOrderID
	if dto.OriginOrderID != nil {
		raw, originErr := kernel.FromRaw(*dto.OriginOrderID)
		if originErr != nil {
			return nil, originErr
		}
		origin = &kernel.SalesOrderID{UUID: raw}
	}

	suppliers := make([]kernel.SupplierID, 0, len(dto.Suppliers))
	for _, row := range dto.Suppliers {
		supplierID, supplierErr := kernel.FromRaw(row.SupplierID)
		if supplierErr != nil {
			return nil, supplierErr
		}
		suppliers = append(suppliers, kernel.SupplierID{UUID: supplierID})
	}

	return rfq.RestoreRFQ(
		kernel.RFQID{UUID: id},
		kernel.CustomerID{UUID: owner},
		dto.ProjectName,
		spec,
		status,
		suppliers,
		origin,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
		dto.Version,
	), nil
}
