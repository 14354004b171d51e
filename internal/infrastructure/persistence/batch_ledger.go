package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBatchLedger implements BatchLedger using GORM
type GormBatchLedger struct {
	db *gorm.DB
}

// NewGormBatchLedger creates a new GormBatchLedger
func NewGormBatchLedger(db *gorm.DB) *GormBatchLedger {
	return &GormBatchLedger{db: db}
}

// ListAvailable returns all batches of the product with remaining quantity > 0.
// Ordering is left to the allocation strategies, which sort in memory.
func (r *GormBatchLedger) ListAvailable(ctx context.Context, productID uuid.UUID) ([]inventory.InventoryBatch, error) {
	var rows []models.InventoryBatchModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND remaining_quantity > 0", productID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainBatches(rows), nil
}

// ListByProduct returns every batch of the product, including depleted ones
func (r *GormBatchLedger) ListByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.InventoryBatch, error) {
	var rows []models.InventoryBatchModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("purchase_date ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainBatches(rows), nil
}

// FindByBatchNo finds the batch with the given batch number for the product
func (r *GormBatchLedger) FindByBatchNo(ctx context.Context, productID uuid.UUID, batchNo string) (*inventory.InventoryBatch, error) {
	var model models.InventoryBatchModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND batch_no = ?", productID, batchNo).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a batch
func (r *GormBatchLedger) Save(ctx context.Context, batch *inventory.InventoryBatch) error {
	model := models.InventoryBatchModelFromDomain(batch)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// Increment adds re-ingested stock to an existing batch. Both quantities grow
// by a relative UPDATE, never a full-row write, so a sale that decrements
// remaining_quantity between the caller's read and this write keeps its effect.
func (r *GormBatchLedger) Increment(ctx context.Context, batchID uuid.UUID, amount int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryBatchModel{}).
		Where("id = ?", batchID).
		Updates(map[string]any{
			"quantity":           gorm.Expr("quantity + ?", amount),
			"remaining_quantity": gorm.Expr("remaining_quantity + ?", amount),
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Decrement atomically subtracts amount from the batch's remaining quantity.
// The WHERE clause carries the expected remaining quantity, so the single
// UPDATE both checks and applies: if another transaction drained the batch
// since the caller's snapshot, zero rows match and the caller gets
// shared.ErrConcurrencyConflict back without any mutation.
func (r *GormBatchLedger) Decrement(ctx context.Context, batchID uuid.UUID, amount, expectedRemaining int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.InventoryBatchModel{}).
		Where("id = ? AND remaining_quantity = ?", batchID, expectedRemaining).
		Updates(map[string]any{
			"remaining_quantity": gorm.Expr("remaining_quantity - ?", amount),
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func toDomainBatches(rows []models.InventoryBatchModel) []inventory.InventoryBatch {
	batches := make([]inventory.InventoryBatch, 0, len(rows))
	for i := range rows {
		batches = append(batches, *rows[i].ToDomain())
	}
	return batches
}

var _ inventory.BatchLedger = (*GormBatchLedger)(nil)
