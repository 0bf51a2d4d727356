package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/cart"
)

// AddItemRequest adds a book to the cart
type AddItemRequest struct {
	BookID   uuid.UUID `json:"bookId" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest sets a cart line's quantity; zero removes the line
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// CartItemResponse represents one cart line in API responses
type CartItemResponse struct {
	BookID     uuid.UUID       `json:"bookId"`
	Title      string          `json:"title"`
	CoverURLs  []string        `json:"coverUrls,omitempty"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
	LineTotal  decimal.Decimal `json:"lineTotal"`
	InStock    bool            `json:"inStock"`
	StockLeft  int             `json:"stockLeft"`
}

// CartResponse represents the cart in API responses
type CartResponse struct {
	ID            uuid.UUID          `json:"id"`
	UserID        uuid.UUID          `json:"userId"`
	Items         []CartItemResponse `json:"items"`
	TotalQuantity int                `json:"totalQuantity"`
	TotalPrice    decimal.Decimal    `json:"totalPrice"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// ToCartResponse converts a domain Cart to CartResponse. Line totals
// use the book's current effective price; carts never snapshot prices,
// only orders do.
func ToCartResponse(c *cart.Cart) CartResponse {
	resp := CartResponse{
		ID:         c.ID,
		UserID:     c.UserID,
		Items:      make([]CartItemResponse, 0, len(c.Items)),
		TotalPrice: decimal.Zero,
		UpdatedAt:  c.UpdatedAt,
	}

	for i := range c.Items {
		item := &c.Items[i]
		line := CartItemResponse{
			BookID:   item.BookID,
			Quantity: item.Quantity,
		}
		if item.Book != nil {
			price := item.Book.EffectivePrice().Amount()
			line.Title = item.Book.Title
			line.CoverURLs = item.Book.CoverURLs
			line.UnitPrice = price
			line.LineTotal = price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			line.InStock = item.Book.InStock()
			line.StockLeft = item.Book.StockQuantity
			resp.TotalPrice = resp.TotalPrice.Add(line.LineTotal)
		}
		resp.Items = append(resp.Items, line)
		resp.TotalQuantity += item.Quantity
	}

	return resp
}
