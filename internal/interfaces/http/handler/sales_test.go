package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	salesapp "github.com/stockflow/backend/internal/application/sales"
	"github.com/stockflow/backend/internal/domain/business"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	domainsales "github.com/stockflow/backend/internal/domain/sales"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memBusinessRepo struct {
	items map[uuid.UUID]*business.Business
}

func (r *memBusinessRepo) FindByID(_ context.Context, id uuid.UUID) (*business.Business, error) {
	if b, ok := r.items[id]; ok {
		return b, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memBusinessRepo) FindAll(_ context.Context) ([]business.Business, error) {
	result := make([]business.Business, 0, len(r.items))
	for _, b := range r.items {
		result = append(result, *b)
	}
	return result, nil
}

func (r *memBusinessRepo) Save(_ context.Context, b *business.Business) error {
	r.items[b.ID] = b
	return nil
}

type memProductRepo struct {
	items map[uuid.UUID]*catalog.Product
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := r.items[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindByCode(_ context.Context, code string) (*catalog.Product, error) {
	for _, p := range r.items {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindAll(_ context.Context) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0, len(r.items))
	for _, p := range r.items {
		result = append(result, *p)
	}
	return result, nil
}

func (r *memProductRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := r.FindByCode(ctx, code)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *memProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.items[p.ID] = p
	return nil
}

type memLedger struct {
	batches map[uuid.UUID]*inventory.InventoryBatch
}

func (l *memLedger) ListAvailable(_ context.Context, productID uuid.UUID) ([]inventory.InventoryBatch, error) {
	var result []inventory.InventoryBatch
	for _, b := range l.batches {
		if b.ProductID == productID && b.HasStock() {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (l *memLedger) ListByProduct(_ context.Context, productID uuid.UUID) ([]inventory.InventoryBatch, error) {
	var result []inventory.InventoryBatch
	for _, b := range l.batches {
		if b.ProductID == productID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (l *memLedger) FindByBatchNo(_ context.Context, productID uuid.UUID, batchNo string) (*inventory.InventoryBatch, error) {
	for _, b := range l.batches {
		if b.ProductID == productID && b.BatchNo == batchNo {
			return b, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (l *memLedger) Save(_ context.Context, batch *inventory.InventoryBatch) error {
	l.batches[batch.ID] = batch
	return nil
}

func (l *memLedger) Increment(_ context.Context, batchID uuid.UUID, amount int64) error {
	b, ok := l.batches[batchID]
	if !ok {
		return shared.ErrNotFound
	}
	b.Receive(amount)
	return nil
}

func (l *memLedger) Decrement(_ context.Context, batchID uuid.UUID, amount, expectedRemaining int64) error {
	b, ok := l.batches[batchID]
	if !ok || b.RemainingQuantity != expectedRemaining {
		return shared.ErrConcurrencyConflict
	}
	b.RemainingQuantity -= amount
	return nil
}

type memSaleRepo struct {
	sales map[uuid.UUID]*domainsales.Sale
}

func (r *memSaleRepo) Save(_ context.Context, sale *domainsales.Sale) error {
	r.sales[sale.ID] = sale
	return nil
}

func (r *memSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*domainsales.Sale, error) {
	if s, ok := r.sales[id]; ok {
		return s, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memSaleRepo) FindByBusiness(_ context.Context, businessID uuid.UUID) ([]domainsales.Sale, error) {
	var result []domainsales.Sale
	for _, s := range r.sales {
		if s.BusinessID == businessID {
			result = append(result, *s)
		}
	}
	return result, nil
}

type salesHandlerFixture struct {
	engine   *gin.Engine
	business *business.Business
	product  *catalog.Product
	ledger   *memLedger
}

func newSalesHandlerFixture(t *testing.T, mode inventory.OutboundMode) *salesHandlerFixture {
	t.Helper()

	biz, err := business.NewBusiness("Corner Pharmacy", mode)
	require.NoError(t, err)
	product, err := catalog.NewProduct("MED-001", "Aspirin 100mg", "")
	require.NoError(t, err)

	businessRepo := &memBusinessRepo{items: map[uuid.UUID]*business.Business{biz.ID: biz}}
	productRepo := &memProductRepo{items: map[uuid.UUID]*catalog.Product{product.ID: product}}
	ledger := &memLedger{batches: map[uuid.UUID]*inventory.InventoryBatch{}}
	saleRepo := &memSaleRepo{sales: map[uuid.UUID]*domainsales.Sale{}}

	service := salesapp.NewSaleService(
		businessRepo, productRepo, saleRepo,
		salesapp.NewNoOpTransactionScope(ledger, saleRepo),
		zap.NewNop(),
	)

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewSalesHandler(service).RegisterRoutes(api)

	return &salesHandlerFixture{
		engine:   engine,
		business: biz,
		product:  product,
		ledger:   ledger,
	}
}

func (f *salesHandlerFixture) seedBatch(t *testing.T, batchNo string, qty int64, purchaseDate time.Time) {
	t.Helper()
	batch := inventory.NewInventoryBatch(f.product.ID, batchNo, qty, purchaseDate, nil, decimal.NewFromFloat(1.1))
	require.NoError(t, f.ledger.Save(context.Background(), batch))
}

func (f *salesHandlerFixture) postSale(t *testing.T, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/sales", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	f.engine.ServeHTTP(w, req)
	return w
}

func TestSalesHandler_Create(t *testing.T) {
	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("commits a FIFO sale across batches", func(t *testing.T) {
		f := newSalesHandlerFixture(t, inventory.OutboundModeFIFO)
		f.seedBatch(t, "B-OLD", 100, base)
		f.seedBatch(t, "B-NEW", 20, base.AddDate(0, 1, 0))

		w := f.postSale(t, map[string]any{
			"business_id": f.business.ID.String(),
			"product":     "MED-001",
			"quantity":    110,
		})

		require.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			Success bool                      `json:"success"`
			Data    salesapp.CreateSaleResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "FIFO", resp.Data.Strategy)
		require.Len(t, resp.Data.Deductions, 2)
		assert.Equal(t, "B-OLD", resp.Data.Deductions[0].BatchNo)
		assert.Equal(t, int64(100), resp.Data.Deductions[0].Quantity)
		assert.Equal(t, "B-NEW", resp.Data.Deductions[1].BatchNo)
		assert.Equal(t, int64(10), resp.Data.Deductions[1].Quantity)
	})

	t.Run("rejects an oversell with 422 and the shortfall", func(t *testing.T) {
		f := newSalesHandlerFixture(t, inventory.OutboundModeFIFO)
		f.seedBatch(t, "B-ONLY", 30, base)

		w := f.postSale(t, map[string]any{
			"business_id": f.business.ID.String(),
			"product":     "MED-001",
			"quantity":    31,
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_INSUFFICIENT_STOCK")
		assert.Contains(t, w.Body.String(), "required 31")
	})

	t.Run("rejects a missing batch selector in BATCH mode", func(t *testing.T) {
		f := newSalesHandlerFixture(t, inventory.OutboundModeBatch)
		f.seedBatch(t, "B-A", 30, base)

		w := f.postSale(t, map[string]any{
			"business_id": f.business.ID.String(),
			"product":     "MED-001",
			"quantity":    5,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "batch number is required")
	})

	t.Run("rejects a non-positive quantity at binding", func(t *testing.T) {
		f := newSalesHandlerFixture(t, inventory.OutboundModeFIFO)

		w := f.postSale(t, map[string]any{
			"business_id": f.business.ID.String(),
			"product":     "MED-001",
			"quantity":    0,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown business yields 404", func(t *testing.T) {
		f := newSalesHandlerFixture(t, inventory.OutboundModeFIFO)
		f.seedBatch(t, "B-A", 30, base)

		w := f.postSale(t, map[string]any{
			"business_id": uuid.New().String(),
			"product":     "MED-001",
			"quantity":    5,
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
