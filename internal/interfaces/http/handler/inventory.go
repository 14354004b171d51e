package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	inventoryapp "github.com/stockflow/backend/internal/application/inventory"
	"github.com/stockflow/backend/internal/domain/inventory"
)

// InventoryHandler handles stock inward and inventory query endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// AddStockRequest represents a stock inward request
type AddStockRequest struct {
	Product      string          `json:"product" binding:"required"` // product UUID or unique code
	BatchNo      string          `json:"batch_no" binding:"required,min=1,max=100"`
	Quantity     int64           `json:"quantity" binding:"required,gt=0"`
	PurchaseDate *time.Time      `json:"purchase_date"`
	ExpiryDate   *time.Time      `json:"expiry_date"`
	CostPrice    decimal.Decimal `json:"cost_price"`
}

// BatchResponse represents an inventory batch in API responses
type BatchResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	BatchNo           string          `json:"batch_no"`
	Quantity          int64           `json:"quantity"`
	RemainingQuantity int64           `json:"remaining_quantity"`
	PurchaseDate      time.Time       `json:"purchase_date"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func toBatchResponse(b *inventory.InventoryBatch) BatchResponse {
	return BatchResponse{
		ID:                b.ID.String(),
		ProductID:         b.ProductID.String(),
		BatchNo:           b.BatchNo,
		Quantity:          b.Quantity,
		RemainingQuantity: b.RemainingQuantity,
		PurchaseDate:      b.PurchaseDate,
		ExpiryDate:        b.ExpiryDate,
		CostPrice:         b.CostPrice,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// AddStock records inbound stock into a batch
func (h *InventoryHandler) AddStock(c *gin.Context) {
	var req AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := inventoryapp.AddStockInput{
		Product:    req.Product,
		BatchNo:    req.BatchNo,
		Quantity:   req.Quantity,
		ExpiryDate: req.ExpiryDate,
		CostPrice:  req.CostPrice,
	}
	if req.PurchaseDate != nil {
		input.PurchaseDate = *req.PurchaseDate
	}

	batch, err := h.inventoryService.AddStock(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toBatchResponse(batch))
}

// Summary returns a product's stock position across all its batches
func (h *InventoryHandler) Summary(c *gin.Context) {
	summary, err := h.inventoryService.Summary(c.Request.Context(), c.Param("product"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ListAvailable returns a product's batches that still have stock
func (h *InventoryHandler) ListAvailable(c *gin.Context) {
	batches, err := h.inventoryService.ListAvailable(c.Request.Context(), c.Param("product"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]BatchResponse, len(batches))
	for i := range batches {
		responses[i] = toBatchResponse(&batches[i])
	}
	h.Success(c, responses)
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	{
		inv.POST("", h.AddStock)
		inv.GET("/:product/summary", h.Summary)
		inv.GET("/:product/batches", h.ListAvailable)
	}
}
