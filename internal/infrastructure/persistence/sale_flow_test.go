package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	appsales "github.com/stockflow/backend/internal/application/sales"
	"github.com/stockflow/backend/internal/domain/business"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the full schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.BusinessModel{},
		&models.ProductModel{},
		&models.InventoryBatchModel{},
		&models.SaleModel{},
		&models.SaleItemModel{},
	)
	require.NoError(t, err)
	return db
}

type saleFlowFixture struct {
	db       *gorm.DB
	service  *appsales.SaleService
	ledger   *GormBatchLedger
	business *business.Business
	product  *catalog.Product
}

func newSaleFlowFixture(t *testing.T, mode inventory.OutboundMode) *saleFlowFixture {
	t.Helper()
	ctx := context.Background()
	db := newTestDB(t)

	businessRepo := NewGormBusinessRepository(db)
	productRepo := NewGormProductRepository(db)
	saleRepo := NewGormSaleRepository(db)
	ledger := NewGormBatchLedger(db)

	biz, err := business.NewBusiness("Apex Auto Parts", mode)
	require.NoError(t, err)
	require.NoError(t, businessRepo.Save(ctx, biz))

	product, err := catalog.NewProduct("BRK-PAD-01", "Brake Pad Set", "")
	require.NoError(t, err)
	require.NoError(t, productRepo.Save(ctx, product))

	service := appsales.NewSaleService(
		businessRepo, productRepo, saleRepo,
		NewGormTransactionScope(db),
		zap.NewNop(),
	)

	return &saleFlowFixture{
		db:       db,
		service:  service,
		ledger:   ledger,
		business: biz,
		product:  product,
	}
}

func (f *saleFlowFixture) seedBatch(t *testing.T, batchNo string, qty int64, purchaseDate time.Time) *inventory.InventoryBatch {
	t.Helper()
	batch := inventory.NewInventoryBatch(
		f.product.ID, batchNo, qty, purchaseDate, nil, decimal.NewFromFloat(3.25),
	)
	require.NoError(t, f.ledger.Save(context.Background(), batch))
	return batch
}

func (f *saleFlowFixture) remaining(t *testing.T, batchNo string) int64 {
	t.Helper()
	batch, err := f.ledger.FindByBatchNo(context.Background(), f.product.ID, batchNo)
	require.NoError(t, err)
	return batch.RemainingQuantity
}

func TestSaleFlow_FIFOAcrossBatches(t *testing.T) {
	f := newSaleFlowFixture(t, inventory.OutboundModeFIFO)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	f.seedBatch(t, "B-OLD", 60, base)
	f.seedBatch(t, "B-NEW", 50, base.AddDate(0, 1, 0))

	result, err := f.service.CreateSale(ctx, appsales.CreateSaleInput{
		BusinessID: f.business.ID.String(),
		Product:    f.product.ID.String(),
		Quantity:   80,
	})
	require.NoError(t, err)

	require.Len(t, result.Deductions, 2)
	assert.Equal(t, "B-OLD", result.Deductions[0].BatchNo)
	assert.Equal(t, int64(60), result.Deductions[0].Quantity)
	assert.Equal(t, "B-NEW", result.Deductions[1].BatchNo)
	assert.Equal(t, int64(20), result.Deductions[1].Quantity)

	assert.Equal(t, int64(0), f.remaining(t, "B-OLD"))
	assert.Equal(t, int64(30), f.remaining(t, "B-NEW"))

	// The sale and its items landed in the same commit
	listed, err := f.service.ListByBusiness(ctx, f.business.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, result.SaleID, listed[0].SaleID)
	assert.Len(t, listed[0].Items, 2)
}

func TestSaleFlow_SpecifiedBatch(t *testing.T) {
	f := newSaleFlowFixture(t, inventory.OutboundModeBatch)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	f.seedBatch(t, "B-A", 40, base)
	f.seedBatch(t, "B-B", 40, base)

	result, err := f.service.CreateSale(ctx, appsales.CreateSaleInput{
		BusinessID: f.business.ID.String(),
		Product:    "BRK-PAD-01",
		Quantity:   15,
		BatchNo:    "B-B",
	})
	require.NoError(t, err)

	require.Len(t, result.Deductions, 1)
	assert.Equal(t, "B-B", result.Deductions[0].BatchNo)
	assert.Equal(t, int64(40), f.remaining(t, "B-A"))
	assert.Equal(t, int64(25), f.remaining(t, "B-B"))
}

func TestSaleFlow_InsufficientStockRollsBack(t *testing.T) {
	f := newSaleFlowFixture(t, inventory.OutboundModeFIFO)
	ctx := context.Background()

	f.seedBatch(t, "B-ONLY", 10, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	_, err := f.service.CreateSale(ctx, appsales.CreateSaleInput{
		BusinessID: f.business.ID.String(),
		Product:    f.product.ID.String(),
		Quantity:   25,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)

	// Nothing was decremented and no sale row exists
	assert.Equal(t, int64(10), f.remaining(t, "B-ONLY"))
	listed, err := f.service.ListByBusiness(ctx, f.business.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
