package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/order"
)

// CheckoutRequest turns the caller's cart into an order
type CheckoutRequest struct {
	FullName        string `json:"fullName" binding:"required,min=1,max=255"`
	PhoneNumber     string `json:"phoneNumber" binding:"required,min=8,max=20"`
	ShippingAddress string `json:"shippingAddress" binding:"required,min=1"`
}

// UpdateStatusRequest moves an order through its lifecycle
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing delivered cancelled rejected"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=pending processing delivered cancelled rejected"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Take   int    `form:"take" binding:"omitempty,min=1,max=50"`
	SortBy string `form:"sortBy"`
	Order  string `form:"order" binding:"omitempty,oneof=ASC DESC"`
}

// OrderItemResponse represents one purchased line in API responses
type OrderItemResponse struct {
	BookID     uuid.UUID       `json:"bookId"`
	BookTitle  string          `json:"bookTitle"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"userId"`
	Status          string              `json:"status"`
	TotalPrice      decimal.Decimal     `json:"totalPrice"`
	FullName        string              `json:"fullName"`
	PhoneNumber     string              `json:"phoneNumber"`
	ShippingAddress string              `json:"shippingAddress"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		TotalPrice:      o.TotalPrice,
		FullName:        o.FullName,
		PhoneNumber:     o.PhoneNumber,
		ShippingAddress: o.ShippingAddress,
		Items:           make([]OrderItemResponse, 0, len(o.Items)),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for i := range o.Items {
		item := &o.Items[i]
		resp.Items = append(resp.Items, OrderItemResponse{
			BookID:     item.BookID,
			BookTitle:  item.BookTitle,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
			TotalPrice: item.TotalPrice,
		})
	}
	return resp
}

// ToOrderResponses converts a slice of domain Orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses
}
