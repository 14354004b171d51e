package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/inventory"
)

// InventoryBatchModel is the persistence model for the InventoryBatch domain entity.
// The (product_id, batch_no) pair is unique: re-ingesting a known batch number
// grows the existing row instead of inserting a new one.
type InventoryBatchModel struct {
	BaseModel
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_batch_product_no,priority:1;index"`
	BatchNo           string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_batch_product_no,priority:2"`
	Quantity          int64           `gorm:"not null;default:0"`
	RemainingQuantity int64           `gorm:"not null;default:0"`
	PurchaseDate      time.Time       `gorm:"not null"`
	ExpiryDate        *time.Time      `gorm:"index"`
	CostPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (InventoryBatchModel) TableName() string {
	return "inventory_batches"
}

// ToDomain converts the persistence model to a domain InventoryBatch entity.
func (m *InventoryBatchModel) ToDomain() *inventory.InventoryBatch {
	return &inventory.InventoryBatch{
		BaseEntity:        m.BaseModel.ToDomain(),
		ProductID:         m.ProductID,
		BatchNo:           m.BatchNo,
		Quantity:          m.Quantity,
		RemainingQuantity: m.RemainingQuantity,
		PurchaseDate:      m.PurchaseDate,
		ExpiryDate:        m.ExpiryDate,
		CostPrice:         m.CostPrice,
	}
}

// FromDomain populates the persistence model from a domain InventoryBatch entity.
func (m *InventoryBatchModel) FromDomain(b *inventory.InventoryBatch) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.ProductID = b.ProductID
	m.BatchNo = b.BatchNo
	m.Quantity = b.Quantity
	m.RemainingQuantity = b.RemainingQuantity
	m.PurchaseDate = b.PurchaseDate
	m.ExpiryDate = b.ExpiryDate
	m.CostPrice = b.CostPrice
}

// InventoryBatchModelFromDomain creates a new persistence model from a domain InventoryBatch entity.
func InventoryBatchModelFromDomain(b *inventory.InventoryBatch) *InventoryBatchModel {
	m := &InventoryBatchModel{}
	m.FromDomain(b)
	return m
}
