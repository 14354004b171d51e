package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
)

// Sale records one committed sale. It is created exactly once per successful
// sale request and is immutable thereafter; its items are written atomically
// with it.
type Sale struct {
	shared.BaseEntity
	BusinessID uuid.UUID
	TotalItems int64
	Items      []SaleItem
}

// SaleItem records the draw-down of a single inventory batch within a sale.
// A sale touching three batches carries three items.
type SaleItem struct {
	shared.BaseEntity
	SaleID           uuid.UUID
	ProductID        uuid.UUID
	InventoryBatchID uuid.UUID
	Quantity         int64
	CostPrice        decimal.Decimal
}

// NewSale creates a sale with its items. Item SaleIDs are filled in here.
func NewSale(businessID uuid.UUID, totalItems int64, items []SaleItem) *Sale {
	sale := &Sale{
		BaseEntity: shared.NewBaseEntity(),
		BusinessID: businessID,
		TotalItems: totalItems,
		Items:      items,
	}
	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
	}
	return sale
}

// NewSaleItem creates an item recording a deduction from one batch
func NewSaleItem(productID, batchID uuid.UUID, quantity int64, costPrice decimal.Decimal) SaleItem {
	return SaleItem{
		BaseEntity:       shared.NewBaseEntity(),
		ProductID:        productID,
		InventoryBatchID: batchID,
		Quantity:         quantity,
		CostPrice:        costPrice,
	}
}

// TotalQuantity sums the quantities of all items
func (s *Sale) TotalQuantity() int64 {
	var total int64
	for i := range s.Items {
		total += s.Items[i].Quantity
	}
	return total
}
