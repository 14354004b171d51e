package inventory

import (
	"context"

	"github.com/google/uuid"
)

// BatchLedger is the persisted store of inventory batches. It is the only
// shared mutable resource in the allocation path: strategies read a snapshot
// from it and the sale orchestrator is its sole mutator.
//
// Decrement is a compare-and-decrement: the update applies only when the
// batch's remaining quantity still equals expectedRemaining, so a plan built
// from a stale snapshot fails with shared.ErrConcurrencyConflict instead of
// silently overdrawing the batch.
type BatchLedger interface {
	// ListAvailable returns all batches of the product with remaining quantity > 0
	ListAvailable(ctx context.Context, productID uuid.UUID) ([]InventoryBatch, error)

	// ListByProduct returns every batch of the product, including depleted ones
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]InventoryBatch, error)

	// FindByBatchNo finds the batch with the given batch number for the product.
	// Returns shared.ErrNotFound when no such batch exists.
	FindByBatchNo(ctx context.Context, productID uuid.UUID, batchNo string) (*InventoryBatch, error)

	// Save creates or updates a batch
	Save(ctx context.Context, batch *InventoryBatch) error

	// Increment atomically adds amount to both the batch's total and remaining
	// quantity. The update is relative, so it composes with concurrent
	// decrements instead of overwriting them. Returns shared.ErrNotFound when
	// the batch does not exist.
	Increment(ctx context.Context, batchID uuid.UUID, amount int64) error

	// Decrement atomically subtracts amount from the batch's remaining quantity,
	// but only if the current remaining quantity equals expectedRemaining.
	// Returns shared.ErrConcurrencyConflict when the guard no longer holds;
	// nothing is mutated in that case.
	Decrement(ctx context.Context, batchID uuid.UUID, amount, expectedRemaining int64) error
}
