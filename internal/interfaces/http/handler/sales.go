package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	salesapp "github.com/stockflow/backend/internal/application/sales"
)

// SalesHandler handles sale-related API endpoints
type SalesHandler struct {
	BaseHandler
	saleService *salesapp.SaleService
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(saleService *salesapp.SaleService) *SalesHandler {
	return &SalesHandler{saleService: saleService}
}

// CreateSaleRequest represents a sale request
type CreateSaleRequest struct {
	BusinessID string `json:"business_id" binding:"required,uuid"`
	Product    string `json:"product" binding:"required"` // product UUID or unique code
	Quantity   int64  `json:"quantity" binding:"required,gt=0"`
	BatchNo    string `json:"batch_no"` // required when the business sells in BATCH mode
}

// Create executes a sale: allocates batches per the business's outbound
// policy, decrements them and records the sale atomically
func (h *SalesHandler) Create(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.saleService.CreateSale(c.Request.Context(), salesapp.CreateSaleInput{
		BusinessID: req.BusinessID,
		Product:    req.Product,
		Quantity:   req.Quantity,
		BatchNo:    req.BatchNo,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Get returns a committed sale with its items
func (h *SalesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// ListByBusiness returns all sales of a business, newest first
func (h *SalesHandler) ListByBusiness(c *gin.Context) {
	businessID, err := uuid.Parse(c.Query("business_id"))
	if err != nil {
		h.BadRequest(c, "business_id query parameter must be a valid UUID")
		return
	}

	sales, err := h.saleService.ListByBusiness(c.Request.Context(), businessID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sales)
}

// RegisterRoutes registers sales routes
func (h *SalesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.Create)
		sales.GET("", h.ListByBusiness)
		sales.GET("/:id", h.Get)
	}
}
