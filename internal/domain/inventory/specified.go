package inventory

import "github.com/stockflow/backend/internal/domain/shared"

// SpecifiedBatchStrategy deducts from one explicitly named batch and nothing
// else. If the named batch cannot cover the full quantity the allocation
// fails; there is no fallback to sibling batches.
type SpecifiedBatchStrategy struct{}

// NewSpecifiedBatchStrategy creates a new specified-batch strategy
func NewSpecifiedBatchStrategy() *SpecifiedBatchStrategy {
	return &SpecifiedBatchStrategy{}
}

// Name returns the strategy name
func (s *SpecifiedBatchStrategy) Name() string {
	return OutboundModeBatch.String()
}

// Allocate emits exactly one deduction line against the named batch
func (s *SpecifiedBatchStrategy) Allocate(batches []InventoryBatch, req AllocationRequest) ([]DeductionLine, error) {
	if req.BatchNo == "" {
		return nil, ErrBatchNoRequired
	}

	for _, b := range batches {
		if b.BatchNo != req.BatchNo || !b.HasStock() {
			continue
		}
		if b.RemainingQuantity < req.Quantity {
			return nil, shared.NewInsufficientStockError(req.Quantity, b.RemainingQuantity)
		}
		return []DeductionLine{{
			BatchID:           b.ID,
			BatchNo:           b.BatchNo,
			Quantity:          req.Quantity,
			ExpectedRemaining: b.RemainingQuantity,
			CostPrice:         b.CostPrice,
		}}, nil
	}

	// Named batch absent or depleted: the sale cannot draw anything from it.
	return nil, shared.NewInsufficientStockError(req.Quantity, 0)
}
