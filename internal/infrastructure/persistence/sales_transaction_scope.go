package persistence

import (
	"context"

	appsales "github.com/stockflow/backend/internal/application/sales"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// GormTransactionScope implements the sale TransactionScope using GORM
// transactions. The batch decrements and the sale insert of one allocation
// attempt all run on the same transaction and commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides the sale-path repositories bound to
// one open transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Ledger returns the batch ledger scoped to the current transaction
func (r *gormTransactionalRepositories) Ledger() inventory.BatchLedger {
	return NewGormBatchLedger(r.tx)
}

// SaleRepo returns the sale repository scoped to the current transaction
func (r *gormTransactionalRepositories) SaleRepo() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

var _ appsales.TransactionScope = (*GormTransactionScope)(nil)
var _ appsales.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
