package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared/valueobject"
)

// BookStatus represents the visibility of a book in the storefront
type BookStatus string

const (
	BookStatusActive   BookStatus = "active"
	BookStatusInactive BookStatus = "inactive"
)

// Book represents a title in the catalog.
// It is the aggregate root for catalog operations: pricing, stock and
// review aggregates all live here.
type Book struct {
	shared.BaseEntity
	Title           string          `gorm:"type:varchar(255);not null;index"`
	Description     string          `gorm:"type:text"`
	ISBN            string          `gorm:"type:varchar(20);uniqueIndex"`
	CategoryID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category        *Category       `gorm:"foreignKey:CategoryID"`
	Authors         []Author        `gorm:"many2many:book_authors"`
	Price           decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // list price
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	FinalPrice      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // price after discount
	EntryPrice      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // latest supplier cost
	StockQuantity   int             `gorm:"not null;default:0"`
	SoldQuantity    int             `gorm:"not null;default:0"`
	AvgStars        decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0"`
	TotalReviews    int             `gorm:"not null;default:0"`
	CoverURLs       []string        `gorm:"type:text[];serializer:json"`
	Status          BookStatus      `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Book) TableName() string {
	return "books"
}

// NewBook creates a new book in the active state
func NewBook(title string, categoryID uuid.UUID, price decimal.Decimal) (*Book, error) {
	if err := validateBookTitle(title); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Book must belong to a category")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Book{
		BaseEntity:      shared.NewBaseEntity(),
		Title:           title,
		CategoryID:      categoryID,
		Price:           price,
		DiscountPercent: decimal.Zero,
		FinalPrice:      price,
		Status:          BookStatusActive,
	}, nil
}

// Update updates the book's descriptive fields
func (b *Book) Update(title, description, isbn string) error {
	if err := validateBookTitle(title); err != nil {
		return err
	}
	if len(isbn) > 20 {
		return shared.NewDomainError("INVALID_ISBN", "ISBN cannot exceed 20 characters")
	}

	b.Title = title
	b.Description = description
	b.ISBN = isbn
	b.UpdatedAt = time.Now()

	return nil
}

// SetPricing sets the list price and discount. FinalPrice is kept in
// sync: it equals the list price when no discount applies.
func (b *Book) SetPricing(price, discountPercent decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount must be between 0 and 100 percent")
	}

	b.Price = price
	b.DiscountPercent = discountPercent
	if discountPercent.IsZero() {
		b.FinalPrice = price
	} else {
		b.FinalPrice = valueobject.NewMoneyVND(price).ApplyDiscount(discountPercent).Amount()
	}
	b.UpdatedAt = time.Now()

	return nil
}

// EffectivePrice returns the price a customer pays right now:
// the discounted price when a discount applies, the list price otherwise.
func (b *Book) EffectivePrice() valueobject.Money {
	if b.DiscountPercent.IsZero() {
		return valueobject.NewMoneyVND(b.Price)
	}
	return valueobject.NewMoneyVND(b.FinalPrice)
}

// ClampQuantity truncates a requested quantity to the available stock.
// Requests are never rejected for exceeding stock; they are silently
// reduced. A non-positive request clamps to zero.
func (b *Book) ClampQuantity(requested int) int {
	if requested <= 0 {
		return 0
	}
	if requested > b.StockQuantity {
		return b.StockQuantity
	}
	return requested
}

// AdjustStock applies a signed stock delta. Stock never goes negative.
func (b *Book) AdjustStock(delta int) error {
	next := b.StockQuantity + delta
	if next < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot become negative")
	}
	b.StockQuantity = next
	b.UpdatedAt = time.Now()
	return nil
}

// SetEntryPrice records the latest supplier cost for the book
func (b *Book) SetEntryPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Entry price cannot be negative")
	}
	b.EntryPrice = price
	b.UpdatedAt = time.Now()
	return nil
}

// RecordSold increments the sold counter after an order is delivered
func (b *Book) RecordSold(quantity int) {
	if quantity > 0 {
		b.SoldQuantity += quantity
		b.UpdatedAt = time.Now()
	}
}

// ApplyReviewStats replaces the review aggregates after a review is
// created or updated.
func (b *Book) ApplyReviewStats(avgStars decimal.Decimal, totalReviews int) {
	b.AvgStars = avgStars
	b.TotalReviews = totalReviews
	b.UpdatedAt = time.Now()
}

// SetCoverURLs replaces the stored cover image URLs
func (b *Book) SetCoverURLs(urls []string) {
	b.CoverURLs = urls
	b.UpdatedAt = time.Now()
}

// Activate makes the book visible in the storefront
func (b *Book) Activate() error {
	if b.Status == BookStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Book is already active")
	}
	b.Status = BookStatusActive
	b.UpdatedAt = time.Now()
	return nil
}

// Deactivate hides the book from the storefront without deleting it
func (b *Book) Deactivate() error {
	if b.Status == BookStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Book is already inactive")
	}
	b.Status = BookStatusInactive
	b.UpdatedAt = time.Now()
	return nil
}

// IsActive returns true if the book is visible in the storefront
func (b *Book) IsActive() bool {
	return b.Status == BookStatusActive
}

// InStock returns true if at least one copy is available
func (b *Book) InStock() bool {
	return b.StockQuantity > 0
}

func validateBookTitle(title string) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Book title cannot be empty")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_TITLE", "Book title cannot exceed 255 characters")
	}
	return nil
}
