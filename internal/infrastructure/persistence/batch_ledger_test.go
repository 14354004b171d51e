package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockBatchLedger creates a GormBatchLedger with a mocked SQL connection
func newMockBatchLedger(t *testing.T) (*GormBatchLedger, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormBatchLedger(gormDB), mock, mockDB
}

func batchColumns() []string {
	return []string{
		"id", "created_at", "updated_at",
		"product_id", "batch_no", "quantity", "remaining_quantity",
		"purchase_date", "expiry_date", "cost_price",
	}
}

func TestGormBatchLedger_Decrement(t *testing.T) {
	t.Run("applies when remaining quantity matches the expectation", func(t *testing.T) {
		ledger, mock, mockDB := newMockBatchLedger(t)
		defer mockDB.Close()

		batchID := uuid.New()
		mock.ExpectExec(`UPDATE "inventory_batches" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := ledger.Decrement(context.Background(), batchID, 10, 100)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports a conflict when no row matches the guard", func(t *testing.T) {
		ledger, mock, mockDB := newMockBatchLedger(t)
		defer mockDB.Close()

		batchID := uuid.New()
		mock.ExpectExec(`UPDATE "inventory_batches" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := ledger.Decrement(context.Background(), batchID, 10, 100)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates database errors", func(t *testing.T) {
		ledger, mock, mockDB := newMockBatchLedger(t)
		defer mockDB.Close()

		batchID := uuid.New()
		mock.ExpectExec(`UPDATE "inventory_batches" SET`).
			WillReturnError(sql.ErrConnDone)

		err := ledger.Decrement(context.Background(), batchID, 10, 100)

		require.Error(t, err)
		assert.NotErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBatchLedger_Increment(t *testing.T) {
	t.Run("grows both quantities with a relative update", func(t *testing.T) {
		ledger, mock, mockDB := newMockBatchLedger(t)
		defer mockDB.Close()

		batchID := uuid.New()
		mock.ExpectExec(`UPDATE "inventory_batches" SET "quantity"=quantity \+ \$1,"remaining_quantity"=remaining_quantity \+ \$2`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := ledger.Increment(context.Background(), batchID, 20)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports not-found when the batch row is missing", func(t *testing.T) {
		ledger, mock, mockDB := newMockBatchLedger(t)
		defer mockDB.Close()

		batchID := uuid.New()
		mock.ExpectExec(`UPDATE "inventory_batches" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := ledger.Increment(context.Background(), batchID, 20)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBatchLedger_ListAvailable(t *testing.T) {
	t.Run("returns batches with stock", func(t *testing.T) {
		ledger, mock, mockDB := newMockBatchLedger(t)
		defer mockDB.Close()

		productID := uuid.New()
		batchID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(batchColumns()).
			AddRow(batchID, now, now, productID, "B-001", int64(100), int64(40), now, nil, decimal.NewFromFloat(2.5))

		mock.ExpectQuery(`SELECT \* FROM "inventory_batches" WHERE product_id = \$1 AND remaining_quantity > 0`).
			WithArgs(productID).
			WillReturnRows(rows)

		batches, err := ledger.ListAvailable(context.Background(), productID)

		require.NoError(t, err)
		require.Len(t, batches, 1)
		assert.Equal(t, batchID, batches[0].ID)
		assert.Equal(t, "B-001", batches[0].BatchNo)
		assert.Equal(t, int64(40), batches[0].RemainingQuantity)
		assert.Nil(t, batches[0].ExpiryDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBatchLedger_FindByBatchNo(t *testing.T) {
	t.Run("translates record-not-found", func(t *testing.T) {
		ledger, mock, mockDB := newMockBatchLedger(t)
		defer mockDB.Close()

		productID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "inventory_batches" WHERE product_id = \$1 AND batch_no = \$2`).
			WithArgs(productID, "B-MISSING", 1).
			WillReturnRows(sqlmock.NewRows(batchColumns()))

		batch, err := ledger.FindByBatchNo(context.Background(), productID, "B-MISSING")

		assert.Nil(t, batch)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
