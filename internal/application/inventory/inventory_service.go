package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InventoryService handles stock inward and inventory queries
type InventoryService struct {
	ledger      inventory.BatchLedger
	productRepo catalog.ProductRepository
	log         *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(ledger inventory.BatchLedger, productRepo catalog.ProductRepository, log *zap.Logger) *InventoryService {
	return &InventoryService{
		ledger:      ledger,
		productRepo: productRepo,
		log:         log,
	}
}

// AddStockInput carries the inputs of a stock inward
type AddStockInput struct {
	Product      string // product UUID or unique product code
	BatchNo      string
	Quantity     int64
	PurchaseDate time.Time
	ExpiryDate   *time.Time
	CostPrice    decimal.Decimal
}

// AddStock records inbound stock. Re-ingesting a batch number already known
// for the product grows that batch's quantity and remaining quantity instead
// of creating a duplicate record; the batch keeps its first-seen cost price
// and dates.
func (s *InventoryService) AddStock(ctx context.Context, input AddStockInput) (*inventory.InventoryBatch, error) {
	if input.Quantity <= 0 {
		return nil, shared.NewDomainError(shared.ErrInvalidRequest.Code, "quantity must be a positive integer")
	}
	if input.BatchNo == "" {
		return nil, shared.NewDomainError(shared.ErrInvalidRequest.Code, "batch number is required")
	}

	product, err := s.resolveProduct(ctx, input.Product)
	if err != nil {
		return nil, err
	}

	batch, err := s.ledger.FindByBatchNo(ctx, product.ID, input.BatchNo)
	switch {
	case err == nil:
		// Grow the existing batch with a relative increment rather than
		// writing back this read's snapshot, so a sale decrementing the batch
		// concurrently is never overwritten.
		if err := s.ledger.Increment(ctx, batch.ID, input.Quantity); err != nil {
			return nil, err
		}
		batch, err = s.ledger.FindByBatchNo(ctx, product.ID, input.BatchNo)
		if err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		purchaseDate := input.PurchaseDate
		if purchaseDate.IsZero() {
			purchaseDate = time.Now()
		}
		batch = inventory.NewInventoryBatch(
			product.ID,
			input.BatchNo,
			input.Quantity,
			purchaseDate,
			input.ExpiryDate,
			input.CostPrice,
		)
		if err := s.ledger.Save(ctx, batch); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	s.log.Info("stock received",
		zap.String("product_code", product.Code),
		zap.String("batch_no", batch.BatchNo),
		zap.Int64("received", input.Quantity),
		zap.Int64("remaining", batch.RemainingQuantity),
	)
	return batch, nil
}

// BatchSummary describes one batch in a product inventory summary
type BatchSummary struct {
	BatchNo           string          `json:"batch_no"`
	Quantity          int64           `json:"quantity"`
	RemainingQuantity int64           `json:"remaining_quantity"`
	PurchaseDate      time.Time       `json:"purchase_date"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	CostPrice         decimal.Decimal `json:"cost_price"`
}

// ProductSummary aggregates a product's stock position over all its batches
type ProductSummary struct {
	ProductID         string         `json:"product_id"`
	ProductCode       string         `json:"product_code"`
	ProductName       string         `json:"product_name"`
	TotalQuantity     int64          `json:"total_quantity"`
	AvailableQuantity int64          `json:"available_quantity"`
	SoldQuantity      int64          `json:"sold_quantity"`
	Batches           []BatchSummary `json:"batches"`
}

// Summary returns the stock position of a product across all its batches
func (s *InventoryService) Summary(ctx context.Context, idOrCode string) (*ProductSummary, error) {
	product, err := s.resolveProduct(ctx, idOrCode)
	if err != nil {
		return nil, err
	}

	batches, err := s.ledger.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	summary := &ProductSummary{
		ProductID:   product.ID.String(),
		ProductCode: product.Code,
		ProductName: product.Name,
		Batches:     make([]BatchSummary, len(batches)),
	}
	for i, b := range batches {
		summary.TotalQuantity += b.Quantity
		summary.AvailableQuantity += b.RemainingQuantity
		summary.Batches[i] = BatchSummary{
			BatchNo:           b.BatchNo,
			Quantity:          b.Quantity,
			RemainingQuantity: b.RemainingQuantity,
			PurchaseDate:      b.PurchaseDate,
			ExpiryDate:        b.ExpiryDate,
			CostPrice:         b.CostPrice,
		}
	}
	summary.SoldQuantity = summary.TotalQuantity - summary.AvailableQuantity
	return summary, nil
}

// ListAvailable returns the batches of a product that still have stock
func (s *InventoryService) ListAvailable(ctx context.Context, idOrCode string) ([]inventory.InventoryBatch, error) {
	product, err := s.resolveProduct(ctx, idOrCode)
	if err != nil {
		return nil, err
	}
	return s.ledger.ListAvailable(ctx, product.ID)
}

func (s *InventoryService) resolveProduct(ctx context.Context, idOrCode string) (*catalog.Product, error) {
	if id, err := uuid.Parse(idOrCode); err == nil {
		product, err := s.productRepo.FindByID(ctx, id)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	return s.productRepo.FindByCode(ctx, idOrCode)
}
