package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/stockledger/backend/internal/application/catalog"
	inventoryapp "github.com/stockledger/backend/internal/application/inventory"
)

// InventoryHandler handles stock adjustment and ledger history endpoints
type InventoryHandler struct {
	BaseHandler
	adjustments *inventoryapp.AdjustmentService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(adjustments *inventoryapp.AdjustmentService) *InventoryHandler {
	return &InventoryHandler{
		adjustments: adjustments,
	}
}

// Adjust godoc
// @Summary      Adjust product quantity
// @Description  Apply a signed quantity delta to a product, recording a ledger entry atomically
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID (UUID)"
// @Param        request body inventoryapp.AdjustInventoryRequest true "Adjustment request"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products/{id}/adjust [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req inventoryapp.AdjustInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.adjustments.Adjust(c.Request.Context(), id, req.Delta, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, catalogapp.ToProductResponse(product))
}

// History godoc
// @Summary      Get product ledger history
// @Description  List a product's inventory ledger entries, newest first
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Product ID (UUID)"
// @Param        limit query int false "Maximum entries to return" default(50)
// @Success      200 {object} dto.Response{data=[]inventoryapp.LedgerEntryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/products/{id}/history [get]
func (h *InventoryHandler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var filter inventoryapp.HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	entries, err := h.adjustments.GetHistory(c.Request.Context(), id, filter.Limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entries)
}
