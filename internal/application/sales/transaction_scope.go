package sales

import (
	"context"

	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/sales"
)

// TransactionScope provides transactional access to the repositories a sale
// touches. When a function is executed within a transaction scope, all
// repository operations are part of the same database transaction and commit
// or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the sale-path repositories
// within a transaction. Both share the same underlying database transaction.
type TransactionalRepositories interface {
	// Ledger returns the batch ledger scoped to the current transaction
	Ledger() inventory.BatchLedger
	// SaleRepo returns the sale repository scoped to the current transaction
	SaleRepo() sales.SaleRepository
}

// NoOpTransactionScope runs the scoped function without a real transaction.
// Useful for tests and for stores that don't support transactions.
type NoOpTransactionScope struct {
	ledger   inventory.BatchLedger
	saleRepo sales.SaleRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(ledger inventory.BatchLedger, saleRepo sales.SaleRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{ledger: ledger, saleRepo: saleRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Ledger returns the batch ledger
func (s *NoOpTransactionScope) Ledger() inventory.BatchLedger {
	return s.ledger
}

// SaleRepo returns the sale repository
func (s *NoOpTransactionScope) SaleRepo() sales.SaleRepository {
	return s.saleRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
