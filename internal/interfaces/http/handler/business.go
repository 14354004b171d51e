package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	businessapp "github.com/stockflow/backend/internal/application/business"
	"github.com/stockflow/backend/internal/domain/business"
	"github.com/stockflow/backend/internal/domain/inventory"
)

// BusinessHandler handles business-related API endpoints
type BusinessHandler struct {
	BaseHandler
	businessService *businessapp.BusinessService
}

// NewBusinessHandler creates a new BusinessHandler
func NewBusinessHandler(businessService *businessapp.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// CreateBusinessRequest represents a request to register a business
type CreateBusinessRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=200"`
	OutboundMode string `json:"outbound_mode" binding:"required,oneof=FIFO FEFO BATCH"`
}

// UpdateOutboundModeRequest represents a request to change the outbound policy
type UpdateOutboundModeRequest struct {
	OutboundMode string `json:"outbound_mode" binding:"required,oneof=FIFO FEFO BATCH"`
}

// BusinessResponse represents a business in API responses
type BusinessResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	OutboundMode string    `json:"outbound_mode"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toBusinessResponse(b *business.Business) BusinessResponse {
	return BusinessResponse{
		ID:           b.ID.String(),
		Name:         b.Name,
		OutboundMode: b.OutboundMode.String(),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// Create registers a business with its outbound policy
func (h *BusinessHandler) Create(c *gin.Context) {
	var req CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	biz, err := h.businessService.CreateBusiness(c.Request.Context(), req.Name, inventory.OutboundMode(req.OutboundMode))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toBusinessResponse(biz))
}

// Get returns a business by ID
func (h *BusinessHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid business ID")
		return
	}

	biz, err := h.businessService.GetBusiness(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBusinessResponse(biz))
}

// List returns all businesses
func (h *BusinessHandler) List(c *gin.Context) {
	found, err := h.businessService.ListBusinesses(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]BusinessResponse, len(found))
	for i := range found {
		responses[i] = toBusinessResponse(&found[i])
	}
	h.Success(c, responses)
}

// UpdateOutboundMode switches a business to a different outbound policy
func (h *BusinessHandler) UpdateOutboundMode(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "invalid business ID")
		return
	}

	var req UpdateOutboundModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	biz, err := h.businessService.ChangeOutboundMode(c.Request.Context(), id, inventory.OutboundMode(req.OutboundMode))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBusinessResponse(biz))
}

// RegisterRoutes registers business routes
func (h *BusinessHandler) RegisterRoutes(rg *gin.RouterGroup) {
	businesses := rg.Group("/businesses")
	{
		businesses.POST("", h.Create)
		businesses.GET("", h.List)
		businesses.GET("/:id", h.Get)
		businesses.PATCH("/:id/outbound-mode", h.UpdateOutboundMode)
	}
}
