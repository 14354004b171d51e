package inventory

import (
	"sort"
	"time"
)

// FEFOStrategy implements First Expired First Out batch selection.
// Batches closest to expiry are drawn down first and batches that are
// already expired are never eligible, regardless of remaining stock.
// Suited to perishables and pharmaceuticals.
type FEFOStrategy struct{}

// NewFEFOStrategy creates a new FEFO strategy
func NewFEFOStrategy() *FEFOStrategy {
	return &FEFOStrategy{}
}

// Name returns the strategy name
func (s *FEFOStrategy) Name() string {
	return OutboundModeFEFO.String()
}

// Allocate builds a deduction plan in FEFO order
func (s *FEFOStrategy) Allocate(batches []InventoryBatch, req AllocationRequest) ([]DeductionLine, error) {
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	eligible := make([]InventoryBatch, 0, len(batches))
	for _, b := range batches {
		if b.HasStock() && !b.IsExpired(now) {
			eligible = append(eligible, b)
		}
	}

	// Earliest expiry first; batches without an expiry date are treated as
	// expiring last. Ties fall back to purchase date, then batch ID.
	sort.Slice(eligible, func(i, j int) bool {
		iExpiry := eligible[i].ExpiryDate
		jExpiry := eligible[j].ExpiryDate

		switch {
		case iExpiry == nil && jExpiry == nil:
			// fall through to purchase date
		case iExpiry == nil:
			return false
		case jExpiry == nil:
			return true
		case !iExpiry.Equal(*jExpiry):
			return iExpiry.Before(*jExpiry)
		}

		if !eligible[i].PurchaseDate.Equal(eligible[j].PurchaseDate) {
			return eligible[i].PurchaseDate.Before(eligible[j].PurchaseDate)
		}
		return lessByID(eligible[i], eligible[j])
	})

	return greedyFill(eligible, req.Quantity)
}
