package sales

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleInput carries the inputs of a sale request
type CreateSaleInput struct {
	BusinessID string // business UUID
	Product    string // product UUID or unique product code
	Quantity   int64
	BatchNo    string // required when the business sells in BATCH mode
}

// DeductionResult is one batch draw-down within a committed sale
type DeductionResult struct {
	BatchNo   string          `json:"batch_no"`
	Quantity  int64           `json:"quantity"`
	CostPrice decimal.Decimal `json:"cost_price"`
}

// CreateSaleResult is returned after a sale commits
type CreateSaleResult struct {
	SaleID      string            `json:"sale_id"`
	BusinessID  string            `json:"business_id"`
	ProductID   string            `json:"product_id"`
	ProductCode string            `json:"product_code"`
	Quantity    int64             `json:"quantity"`
	Strategy    string            `json:"strategy"`
	Deductions  []DeductionResult `json:"deductions"`
	CreatedAt   time.Time         `json:"created_at"`
}

// SaleItemDetails describes one item of a previously committed sale
type SaleItemDetails struct {
	ProductID        string          `json:"product_id"`
	InventoryBatchID string          `json:"inventory_batch_id"`
	Quantity         int64           `json:"quantity"`
	CostPrice        decimal.Decimal `json:"cost_price"`
}

// SaleDetails describes a committed sale with its items
type SaleDetails struct {
	SaleID     string            `json:"sale_id"`
	BusinessID string            `json:"business_id"`
	TotalItems int64             `json:"total_items"`
	Items      []SaleItemDetails `json:"items"`
	CreatedAt  time.Time         `json:"created_at"`
}
