package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/catalog"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// Cart is a customer's single active shopping cart. Each user has at
// most one cart; line quantities are always clamped to the book's
// current stock rather than rejected.
type Cart struct {
	shared.BaseEntity
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// CartItem is one line of a cart: a book and a desired quantity
type CartItem struct {
	shared.BaseEntity
	CartID   uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_cart_book,priority:1"`
	BookID   uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_cart_book,priority:2"`
	Book     *catalog.Book `gorm:"foreignKey:BookID"`
	Quantity int           `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Cart must belong to a user")
	}
	return &Cart{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
	}, nil
}

// AddItem adds a book to the cart or increases an existing line. The
// resulting quantity is clamped to the book's stock; the clamped
// quantity is returned. A line that clamps to zero is still kept so the
// customer sees the out-of-stock title in their cart.
func (c *Cart) AddItem(book *catalog.Book, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for i := range c.Items {
		if c.Items[i].BookID == book.ID {
			clamped := book.ClampQuantity(c.Items[i].Quantity + quantity)
			c.Items[i].Quantity = clamped
			c.Items[i].UpdatedAt = time.Now()
			c.UpdatedAt = time.Now()
			return clamped, nil
		}
	}

	clamped := book.ClampQuantity(quantity)
	c.Items = append(c.Items, CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     c.ID,
		BookID:     book.ID,
		Quantity:   clamped,
	})
	c.UpdatedAt = time.Now()
	return clamped, nil
}

// UpdateItem sets a line's quantity directly, clamped to stock.
// Setting zero removes the line.
func (c *Cart) UpdateItem(book *catalog.Book, quantity int) (int, error) {
	if quantity < 0 {
		return 0, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	for i := range c.Items {
		if c.Items[i].BookID == book.ID {
			if quantity == 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				c.UpdatedAt = time.Now()
				return 0, nil
			}
			clamped := book.ClampQuantity(quantity)
			c.Items[i].Quantity = clamped
			c.Items[i].UpdatedAt = time.Now()
			c.UpdatedAt = time.Now()
			return clamped, nil
		}
	}

	return 0, shared.ErrNotFound
}

// RemoveItem deletes a line from the cart
func (c *Cart) RemoveItem(bookID uuid.UUID) error {
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Clear removes every line from the cart
func (c *Cart) Clear() {
	c.Items = nil
	c.UpdatedAt = time.Now()
}

// IsEmpty returns true when the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalQuantity returns the sum of all line quantities
func (c *Cart) TotalQuantity() int {
	total := 0
	for i := range c.Items {
		total += c.Items[i].Quantity
	}
	return total
}
