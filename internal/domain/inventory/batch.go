package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
)

// InventoryBatch represents a dated, priced lot of a product. Stock arrives
// in batches and every sale draws down one or more of them.
type InventoryBatch struct {
	shared.BaseEntity
	ProductID         uuid.UUID
	BatchNo           string // unique per product
	Quantity          int64  // total quantity ever received into this batch
	RemainingQuantity int64  // quantity still available for sale
	PurchaseDate      time.Time
	ExpiryDate        *time.Time // nil when the batch never expires
	CostPrice         decimal.Decimal
}

// NewInventoryBatch creates a new inventory batch with the full quantity available
func NewInventoryBatch(
	productID uuid.UUID,
	batchNo string,
	quantity int64,
	purchaseDate time.Time,
	expiryDate *time.Time,
	costPrice decimal.Decimal,
) *InventoryBatch {
	return &InventoryBatch{
		BaseEntity:        shared.NewBaseEntity(),
		ProductID:         productID,
		BatchNo:           batchNo,
		Quantity:          quantity,
		RemainingQuantity: quantity,
		PurchaseDate:      purchaseDate,
		ExpiryDate:        expiryDate,
		CostPrice:         costPrice,
	}
}

// Receive adds re-ingested stock to an existing batch. Both the total and the
// remaining quantity grow by the received amount; cost price and dates keep
// their first-seen values.
func (b *InventoryBatch) Receive(quantity int64) {
	b.Quantity += quantity
	b.RemainingQuantity += quantity
	b.Touch()
}

// IsExpired reports whether the batch is expired at the given time.
// A batch whose expiry equals the evaluation time counts as expired.
func (b *InventoryBatch) IsExpired(at time.Time) bool {
	if b.ExpiryDate == nil {
		return false
	}
	return !b.ExpiryDate.After(at)
}

// HasStock returns true if the batch has quantity available for sale
func (b *InventoryBatch) HasStock() bool {
	return b.RemainingQuantity > 0
}

// SoldQuantity returns the quantity drawn down from this batch so far
func (b *InventoryBatch) SoldQuantity() int64 {
	return b.Quantity - b.RemainingQuantity
}
