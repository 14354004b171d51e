package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/business"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/sales"
	"github.com/stockflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultAllocationRetries is the default number of fresh-snapshot retries
// after a compare-and-decrement conflict.
const DefaultAllocationRetries = 3

// SaleService orchestrates sales: it resolves the business and product,
// selects the allocation strategy from the business's outbound mode, and runs
// snapshot, plan and decrements inside one atomic scope. A decrement conflict
// aborts the scope and the whole allocation is retried against a fresh
// snapshot, up to a bounded retry count.
type SaleService struct {
	businessRepo business.BusinessRepository
	productRepo  catalog.ProductRepository
	saleRepo     sales.SaleRepository
	scope        TransactionScope
	retries      int
	log          *zap.Logger
	now          func() time.Time
}

// NewSaleService creates a new SaleService. The saleRepo is used for reads;
// writes always go through the transaction scope.
func NewSaleService(
	businessRepo business.BusinessRepository,
	productRepo catalog.ProductRepository,
	saleRepo sales.SaleRepository,
	scope TransactionScope,
	log *zap.Logger,
) *SaleService {
	return &SaleService{
		businessRepo: businessRepo,
		productRepo:  productRepo,
		saleRepo:     saleRepo,
		scope:        scope,
		retries:      DefaultAllocationRetries,
		log:          log,
		now:          time.Now,
	}
}

// SetAllocationRetries overrides the bounded retry count for decrement conflicts
func (s *SaleService) SetAllocationRetries(n int) {
	if n >= 0 {
		s.retries = n
	}
}

// SetClock overrides the time source (used by tests for expiry evaluation)
func (s *SaleService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateSale executes one sale request end to end. On success exactly one
// Sale row and one SaleItem per touched batch exist; on any failure nothing
// is observable.
func (s *SaleService) CreateSale(ctx context.Context, input CreateSaleInput) (*CreateSaleResult, error) {
	if input.Quantity <= 0 {
		return nil, shared.NewDomainError(shared.ErrInvalidRequest.Code, "quantity must be a positive integer")
	}

	businessID, err := uuid.Parse(input.BusinessID)
	if err != nil {
		return nil, shared.NewDomainError(shared.ErrInvalidRequest.Code, "invalid business ID")
	}
	biz, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	product, err := s.resolveProduct(ctx, input.Product)
	if err != nil {
		return nil, err
	}

	// The BATCH mode's requirement for a batch selector is enforced by the
	// strategy itself during Allocate.
	strat, err := inventory.StrategyForMode(biz.OutboundMode)
	if err != nil {
		return nil, err
	}

	req := inventory.AllocationRequest{
		Quantity: input.Quantity,
		BatchNo:  input.BatchNo,
		Now:      s.now(),
	}

	var result *CreateSaleResult
	for attempt := 0; ; attempt++ {
		result, err = s.allocateAndCommit(ctx, biz, product, strat, req)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) || attempt >= s.retries {
			return nil, err
		}
		s.log.Warn("allocation conflicted with a concurrent sale, retrying",
			zap.String("product_id", product.ID.String()),
			zap.Int("attempt", attempt+1),
		)
	}
}

// allocateAndCommit runs one allocation attempt inside a single atomic scope:
// fresh snapshot, deduction plan, conditional decrements, then the sale rows.
func (s *SaleService) allocateAndCommit(
	ctx context.Context,
	biz *business.Business,
	product *catalog.Product,
	strat inventory.AllocationStrategy,
	req inventory.AllocationRequest,
) (*CreateSaleResult, error) {
	var result *CreateSaleResult

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		snapshot, err := repos.Ledger().ListAvailable(ctx, product.ID)
		if err != nil {
			return err
		}

		plan, err := strat.Allocate(snapshot, req)
		if err != nil {
			return err
		}

		// Each decrement is guarded by the remaining quantity observed in the
		// snapshot the plan was built from. Any mismatch aborts the scope.
		for _, line := range plan {
			if err := repos.Ledger().Decrement(ctx, line.BatchID, line.Quantity, line.ExpectedRemaining); err != nil {
				return err
			}
		}

		items := make([]sales.SaleItem, len(plan))
		for i, line := range plan {
			items[i] = sales.NewSaleItem(product.ID, line.BatchID, line.Quantity, line.CostPrice)
		}
		sale := sales.NewSale(biz.ID, req.Quantity, items)
		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}

		deductions := make([]DeductionResult, len(plan))
		for i, line := range plan {
			deductions[i] = DeductionResult{
				BatchNo:   line.BatchNo,
				Quantity:  line.Quantity,
				CostPrice: line.CostPrice,
			}
		}
		result = &CreateSaleResult{
			SaleID:      sale.ID.String(),
			BusinessID:  biz.ID.String(),
			ProductID:   product.ID.String(),
			ProductCode: product.Code,
			Quantity:    req.Quantity,
			Strategy:    strat.Name(),
			Deductions:  deductions,
			CreatedAt:   sale.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("sale committed",
		zap.String("sale_id", result.SaleID),
		zap.String("business_id", result.BusinessID),
		zap.String("product_code", result.ProductCode),
		zap.String("strategy", result.Strategy),
		zap.Int64("quantity", result.Quantity),
		zap.Int("batches_touched", len(result.Deductions)),
	)
	return result, nil
}

// resolveProduct accepts either a product UUID or a unique product code
func (s *SaleService) resolveProduct(ctx context.Context, idOrCode string) (*catalog.Product, error) {
	if id, err := uuid.Parse(idOrCode); err == nil {
		product, err := s.productRepo.FindByID(ctx, id)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}
	return s.productRepo.FindByCode(ctx, idOrCode)
}

// GetSale returns a committed sale with its items
func (s *SaleService) GetSale(ctx context.Context, saleID uuid.UUID) (*SaleDetails, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return toSaleDetails(sale), nil
}

// ListByBusiness returns all sales of a business, newest first
func (s *SaleService) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]SaleDetails, error) {
	if _, err := s.businessRepo.FindByID(ctx, businessID); err != nil {
		return nil, err
	}
	found, err := s.saleRepo.FindByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	details := make([]SaleDetails, len(found))
	for i := range found {
		details[i] = *toSaleDetails(&found[i])
	}
	return details, nil
}

func toSaleDetails(sale *sales.Sale) *SaleDetails {
	items := make([]SaleItemDetails, len(sale.Items))
	for i, item := range sale.Items {
		items[i] = SaleItemDetails{
			ProductID:        item.ProductID.String(),
			InventoryBatchID: item.InventoryBatchID.String(),
			Quantity:         item.Quantity,
			CostPrice:        item.CostPrice,
		}
	}
	return &SaleDetails{
		SaleID:     sale.ID.String(),
		BusinessID: sale.BusinessID.String(),
		TotalItems: sale.TotalItems,
		Items:      items,
		CreatedAt:  sale.CreatedAt,
	}
}
