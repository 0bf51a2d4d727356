package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/inventory"
)

// InventoryHandler handles stock entry endpoints (admin only)
type InventoryHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(stockService *inventoryapp.StockService) *InventoryHandler {
	return &InventoryHandler{
		stockService: stockService,
	}
}

// CreateReceipt godoc
// @Summary      Record a stock receipt from a supplier
// @Description  Increases the book's stock and updates its entry price.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateReceiptRequest true "Receipt details"
// @Success      201 {object} dto.Response{data=inventoryapp.StockEntryResponse}
// @Failure      404 {object} dto.ErrorResponse
// @Failure      422 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/receipts [post]
func (h *InventoryHandler) CreateReceipt(c *gin.Context) {
	var req inventoryapp.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	entry, err := h.stockService.CreateReceipt(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// CreateAdjustment godoc
// @Summary      Record a signed manual stock correction
// @Description  Negative quantities decrease stock; stock never goes below zero.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateAdjustmentRequest true "Adjustment details"
// @Success      201 {object} dto.Response{data=inventoryapp.StockEntryResponse}
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/adjustments [post]
func (h *InventoryHandler) CreateAdjustment(c *gin.Context) {
	var req inventoryapp.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	entry, err := h.stockService.CreateAdjustment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// GetByID godoc
// @Summary      Get a stock entry by ID
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Stock entry ID" format(uuid)
// @Success      200 {object} dto.Response{data=inventoryapp.StockEntryResponse}
// @Failure      404 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/entries/{id} [get]
func (h *InventoryHandler) GetByID(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid stock entry ID format")
		return
	}

	entry, err := h.stockService.GetByID(c.Request.Context(), entryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// List godoc
// @Summary      List stock entries
// @Tags         inventory
// @Produce      json
// @Param        bookId query string false "Book filter" format(uuid)
// @Param        supplierId query string false "Supplier filter" format(uuid)
// @Param        type query string false "Entry type filter" Enums(receipt, adjustment)
// @Param        page query int false "Page number" default(1)
// @Param        take query int false "Items per page" default(10)
// @Success      200 {object} dto.PaginatedResponse{data=[]inventoryapp.StockEntryResponse}
// @Security     BearerAuth
// @Router       /inventory/entries [get]
func (h *InventoryHandler) List(c *gin.Context) {
	var filter inventoryapp.StockEntryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	entries, total, err := h.stockService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, entries, total, filter.Page, filter.Take)
}
