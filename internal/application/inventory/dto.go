package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/inventory"
)

// CreateReceiptRequest records stock received from a supplier
type CreateReceiptRequest struct {
	BookID     string          `json:"bookId" binding:"required,uuid"`
	SupplierID string          `json:"supplierId" binding:"required,uuid"`
	Quantity   int             `json:"quantity" binding:"required,min=1"`
	UnitCost   decimal.Decimal `json:"unitCost" binding:"required"`
	Note       string          `json:"note"`
}

// CreateAdjustmentRequest records a signed manual stock correction
type CreateAdjustmentRequest struct {
	BookID   string `json:"bookId" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"required"`
	Note     string `json:"note"`
}

// StockEntryListFilter captures stock entry list query parameters
type StockEntryListFilter struct {
	Page       int    `form:"page"`
	Take       int    `form:"take"`
	SortBy     string `form:"sortBy"`
	Order      string `form:"order"`
	BookID     string `form:"bookId"`
	SupplierID string `form:"supplierId"`
	Type       string `form:"type"`
}

// StockEntryResponse is the API representation of a stock movement
type StockEntryResponse struct {
	ID         uuid.UUID       `json:"id"`
	BookID     uuid.UUID       `json:"bookId"`
	SupplierID *uuid.UUID      `json:"supplierId,omitempty"`
	Type       string          `json:"type"`
	Quantity   int             `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unitCost"`
	Note       string          `json:"note,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ToStockEntryResponse converts a domain stock entry to its API representation
func ToStockEntryResponse(e *inventory.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		ID:         e.ID,
		BookID:     e.BookID,
		SupplierID: e.SupplierID,
		Type:       string(e.Type),
		Quantity:   e.Quantity,
		UnitCost:   e.UnitCost,
		Note:       e.Note,
		CreatedAt:  e.CreatedAt,
	}
}

// ToStockEntryResponses converts a slice of domain stock entries
func ToStockEntryResponses(entries []inventory.StockEntry) []StockEntryResponse {
	responses := make([]StockEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToStockEntryResponse(&entries[i])
	}
	return responses
}
