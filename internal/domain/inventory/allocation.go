package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
)

// OutboundMode identifies the policy a business uses to pick batches on sale
type OutboundMode string

// Supported outbound modes
const (
	OutboundModeFIFO  OutboundMode = "FIFO"  // oldest purchase first
	OutboundModeFEFO  OutboundMode = "FEFO"  // earliest expiry first, expired excluded
	OutboundModeBatch OutboundMode = "BATCH" // explicitly named batch only
)

// IsValid returns true when the mode is one of the supported modes
func (m OutboundMode) IsValid() bool {
	switch m {
	case OutboundModeFIFO, OutboundModeFEFO, OutboundModeBatch:
		return true
	}
	return false
}

// String returns the mode as a string
func (m OutboundMode) String() string {
	return string(m)
}

// AllOutboundModes returns the closed set of supported modes
func AllOutboundModes() []OutboundMode {
	return []OutboundMode{OutboundModeFIFO, OutboundModeFEFO, OutboundModeBatch}
}

// DeductionLine is one entry of a deduction plan: draw Quantity units from
// the identified batch. ExpectedRemaining carries the remaining quantity
// observed in the snapshot the plan was built from, which the orchestrator
// uses as the compare-and-decrement guard.
type DeductionLine struct {
	BatchID           uuid.UUID
	BatchNo           string
	Quantity          int64
	ExpectedRemaining int64
	CostPrice         decimal.Decimal
}

// AllocationRequest carries the inputs of a single allocation
type AllocationRequest struct {
	Quantity int64
	BatchNo  string    // required for the BATCH mode, ignored otherwise
	Now      time.Time // evaluation time for expiry checks
}

// AllocationStrategy maps a batch snapshot and a requested quantity to an
// ordered deduction plan. Strategies are pure functions of the snapshot they
// are handed; they never touch the ledger.
type AllocationStrategy interface {
	// Name returns the strategy name
	Name() string

	// Allocate builds a deduction plan summing exactly to the requested
	// quantity, or fails with shared.ErrInsufficientStock (wrapped in an
	// InsufficientStockError) or shared.ErrInvalidRequest. The snapshot is
	// not modified.
	Allocate(batches []InventoryBatch, req AllocationRequest) ([]DeductionLine, error)
}

// ErrBatchNoRequired is returned by the BATCH strategy when no batch number
// selector was supplied.
var ErrBatchNoRequired = shared.NewDomainError(
	shared.ErrInvalidRequest.Code,
	"batch number is required for BATCH outbound mode",
)

// StrategyForMode resolves the outbound mode to its allocation strategy.
// The variant set is small and closed, so this is a plain mapping rather
// than a registry.
func StrategyForMode(mode OutboundMode) (AllocationStrategy, error) {
	switch mode {
	case OutboundModeFIFO:
		return NewFIFOStrategy(), nil
	case OutboundModeFEFO:
		return NewFEFOStrategy(), nil
	case OutboundModeBatch:
		return NewSpecifiedBatchStrategy(), nil
	}
	return nil, shared.NewDomainError(shared.ErrInvalidRequest.Code, "unrecognized outbound mode: "+mode.String())
}

// greedyFill walks the ordered eligible batches and takes min(needed,
// remaining) from each until the requested quantity is covered. The total
// availability check happens first, so an insufficient request fails before
// any deduction line is emitted.
func greedyFill(ordered []InventoryBatch, quantity int64) ([]DeductionLine, error) {
	var available int64
	for i := range ordered {
		available += ordered[i].RemainingQuantity
	}
	if available < quantity {
		return nil, shared.NewInsufficientStockError(quantity, available)
	}

	lines := make([]DeductionLine, 0, len(ordered))
	needed := quantity
	for i := range ordered {
		if needed == 0 {
			break
		}
		take := min(needed, ordered[i].RemainingQuantity)
		lines = append(lines, DeductionLine{
			BatchID:           ordered[i].ID,
			BatchNo:           ordered[i].BatchNo,
			Quantity:          take,
			ExpectedRemaining: ordered[i].RemainingQuantity,
			CostPrice:         ordered[i].CostPrice,
		})
		needed -= take
	}
	return lines, nil
}
