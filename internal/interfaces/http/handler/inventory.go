package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	inventoryapp "github.com/ledgerline/backend/internal/application/inventory"
)

// InventoryHandler handles inventory item endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// Create adds a new inventory item
func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.inventoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// GetByID retrieves an item by ID
func (h *InventoryHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.inventoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// GetBySKU retrieves an item by its SKU
func (h *InventoryHandler) GetBySKU(c *gin.Context) {
	sku := c.Param("sku")
	item, err := h.inventoryService.GetBySKU(c.Request.Context(), sku)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update changes item details. Stock is not updatable here; use AdjustStock.
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req inventoryapp.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.inventoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// AdjustStock applies a manual signed stock delta with an audit reason
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if actorID, err := getUserID(c); err == nil {
		req.ActorID = &actorID
	}

	item, err := h.inventoryService.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// StockHistory retrieves an item's stock adjustment audit trail, newest first
func (h *InventoryHandler) StockHistory(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	history, err := h.inventoryService.StockHistory(c.Request.Context(), id, page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history)
}

// Delete removes an item that no order references
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// List retrieves items with filtering and pagination
func (h *InventoryHandler) List(c *gin.Context) {
	var filter inventoryapp.InventoryItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	items, total, err := h.inventoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, items, total, page, pageSize)
}

// ListBelowReorderLevel retrieves items at or below their reorder level
func (h *InventoryHandler) ListBelowReorderLevel(c *gin.Context) {
	items, err := h.inventoryService.ListBelowReorderLevel(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}
