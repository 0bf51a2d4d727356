package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// Status represents the state of an order in its lifecycle
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRejected   Status = "rejected"
)

// legalTransitions is the order lifecycle graph. Delivered, cancelled
// and rejected are terminal.
var legalTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled, StatusRejected},
	StatusProcessing: {StatusDelivered, StatusCancelled, StatusRejected},
}

// ValidStatus reports whether s is a known order status
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusDelivered, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// Order is the aggregate root for a customer purchase. Orders are
// never deleted; they only move through the status lifecycle. Each
// line snapshots the book's title and price at purchase time so later
// catalog edits never change historical totals.
type Order struct {
	shared.BaseEntity
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status          Status          `gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	FullName        string          `gorm:"type:varchar(255);not null"`
	PhoneNumber     string          `gorm:"type:varchar(20);not null"`
	ShippingAddress string          `gorm:"type:text;not null"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one purchased line with price data frozen at checkout
type OrderItem struct {
	shared.BaseEntity
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	BookID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BookTitle  string          `gorm:"type:varchar(255);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity   int             `gorm:"not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// ShippingInfo carries the delivery details captured at checkout
type ShippingInfo struct {
	FullName    string
	PhoneNumber string
	Address     string
}

// Line is the input for one order line: a book snapshot plus quantity
type Line struct {
	BookID    uuid.UUID
	BookTitle string
	UnitPrice decimal.Decimal
	Quantity  int
}

// NewOrder builds a pending order from checkout lines. The order total
// is the sum of the line totals; each line total is unit price times
// quantity.
func NewOrder(userID uuid.UUID, shipping ShippingInfo, lines []Line) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Order must belong to a user")
	}
	if len(lines) == 0 {
		return nil, shared.ErrEmptyCart
	}
	if shipping.FullName == "" || shipping.PhoneNumber == "" || shipping.Address == "" {
		return nil, shared.NewDomainError("INVALID_SHIPPING", "Shipping name, phone and address are required")
	}

	o := &Order{
		BaseEntity:      shared.NewBaseEntity(),
		UserID:          userID,
		Status:          StatusPending,
		FullName:        shipping.FullName,
		PhoneNumber:     shipping.PhoneNumber,
		ShippingAddress: shipping.Address,
	}

	total := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Order line quantity must be positive")
		}
		if line.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_PRICE", "Order line price cannot be negative")
		}
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		o.Items = append(o.Items, OrderItem{
			BaseEntity: shared.NewBaseEntity(),
			OrderID:    o.ID,
			BookID:     line.BookID,
			BookTitle:  line.BookTitle,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
			TotalPrice: lineTotal,
		})
		total = total.Add(lineTotal)
	}
	o.TotalPrice = total

	return o, nil
}

// TransitionTo moves the order to the next status, enforcing the
// lifecycle graph.
func (o *Order) TransitionTo(next Status) error {
	if !ValidStatus(next) {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	for _, allowed := range legalTransitions[o.Status] {
		if allowed == next {
			o.Status = next
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("INVALID_TRANSITION",
		"Order cannot move from "+string(o.Status)+" to "+string(next))
}

// Cancel cancels the order if it has not yet been delivered
func (o *Order) Cancel() error {
	return o.TransitionTo(StatusCancelled)
}

// IsTerminal returns true when no further transition is possible
func (o *Order) IsTerminal() bool {
	return len(legalTransitions[o.Status]) == 0
}

// ItemCount returns the total number of books across all lines
func (o *Order) ItemCount() int {
	count := 0
	for i := range o.Items {
		count += o.Items[i].Quantity
	}
	return count
}
