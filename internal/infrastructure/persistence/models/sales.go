package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/sales"
)

// SaleModel is the persistence model for the Sale domain entity.
type SaleModel struct {
	BaseModel
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index"`
	TotalItems int64     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// SaleItemModel is the persistence model for the SaleItem domain entity.
// One row per batch the sale drew from.
type SaleItemModel struct {
	BaseModel
	SaleID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	InventoryBatchID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity         int64           `gorm:"not null"`
	CostPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// ToDomain converts the persistence model to a domain Sale entity without items.
func (m *SaleModel) ToDomain() *sales.Sale {
	return &sales.Sale{
		BaseEntity: m.BaseModel.ToDomain(),
		BusinessID: m.BusinessID,
		TotalItems: m.TotalItems,
	}
}

// FromDomain populates the persistence model from a domain Sale entity.
func (m *SaleModel) FromDomain(s *sales.Sale) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.BusinessID = s.BusinessID
	m.TotalItems = s.TotalItems
}

// ToDomain converts the persistence model to a domain SaleItem entity.
func (m *SaleItemModel) ToDomain() sales.SaleItem {
	return sales.SaleItem{
		BaseEntity:       m.BaseModel.ToDomain(),
		SaleID:           m.SaleID,
		ProductID:        m.ProductID,
		InventoryBatchID: m.InventoryBatchID,
		Quantity:         m.Quantity,
		CostPrice:        m.CostPrice,
	}
}

// FromDomain populates the persistence model from a domain SaleItem entity.
func (m *SaleItemModel) FromDomain(it sales.SaleItem) {
	m.FromDomainBaseEntity(it.BaseEntity)
	m.SaleID = it.SaleID
	m.ProductID = it.ProductID
	m.InventoryBatchID = it.InventoryBatchID
	m.Quantity = it.Quantity
	m.CostPrice = it.CostPrice
}
