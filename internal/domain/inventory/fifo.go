package inventory

import (
	"bytes"
	"sort"
)

// FIFOStrategy implements First In First Out batch selection.
// Batches are drawn down in ascending purchase date order, so the oldest
// stock leaves the shelf first.
type FIFOStrategy struct{}

// NewFIFOStrategy creates a new FIFO strategy
func NewFIFOStrategy() *FIFOStrategy {
	return &FIFOStrategy{}
}

// Name returns the strategy name
func (s *FIFOStrategy) Name() string {
	return OutboundModeFIFO.String()
}

// Allocate builds a deduction plan in FIFO order
func (s *FIFOStrategy) Allocate(batches []InventoryBatch, req AllocationRequest) ([]DeductionLine, error) {
	eligible := make([]InventoryBatch, 0, len(batches))
	for _, b := range batches {
		if b.HasStock() {
			eligible = append(eligible, b)
		}
	}

	// Oldest purchase first; batch ID breaks ties for determinism.
	sort.Slice(eligible, func(i, j int) bool {
		if !eligible[i].PurchaseDate.Equal(eligible[j].PurchaseDate) {
			return eligible[i].PurchaseDate.Before(eligible[j].PurchaseDate)
		}
		return lessByID(eligible[i], eligible[j])
	})

	return greedyFill(eligible, req.Quantity)
}

// lessByID orders batches by the byte order of their IDs
func lessByID(a, b InventoryBatch) bool {
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}
