package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// EntryType distinguishes receipts from corrections
type EntryType string

const (
	EntryTypeReceipt    EntryType = "receipt"    // stock received from a supplier
	EntryTypeAdjustment EntryType = "adjustment" // manual correction, may be negative
)

// StockEntry records a stock movement against a book. Receipts carry
// the supplier and the unit cost paid; the book's entry price is
// updated from the latest receipt.
type StockEntry struct {
	shared.BaseEntity
	BookID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierID *uuid.UUID      `gorm:"type:uuid;index"`
	Type       EntryType       `gorm:"type:varchar(20);not null"`
	Quantity   int             `gorm:"not null"` // signed for adjustments
	UnitCost   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Note       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StockEntry) TableName() string {
	return "stock_entries"
}

// NewReceipt creates a supplier receipt entry. Quantity must be
// positive and the supplier is required.
func NewReceipt(bookID, supplierID uuid.UUID, quantity int, unitCost decimal.Decimal, note string) (*StockEntry, error) {
	if bookID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BOOK", "Stock entry must reference a book")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Receipt must reference a supplier")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Receipt quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit cost cannot be negative")
	}

	return &StockEntry{
		BaseEntity: shared.NewBaseEntity(),
		BookID:     bookID,
		SupplierID: &supplierID,
		Type:       EntryTypeReceipt,
		Quantity:   quantity,
		UnitCost:   unitCost,
		Note:       note,
	}, nil
}

// NewAdjustment creates a manual stock correction. Quantity is signed
// and must not be zero.
func NewAdjustment(bookID uuid.UUID, quantity int, note string) (*StockEntry, error) {
	if bookID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BOOK", "Stock entry must reference a book")
	}
	if quantity == 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjustment quantity cannot be zero")
	}

	return &StockEntry{
		BaseEntity: shared.NewBaseEntity(),
		BookID:     bookID,
		Type:       EntryTypeAdjustment,
		Quantity:   quantity,
		Note:       note,
	}, nil
}

// StockEntryRepository defines the interface for stock entry persistence
type StockEntryRepository interface {
	// FindByID finds a stock entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockEntry, error)

	// FindAll finds stock entries matching the filter. Filters
	// supports book_id, supplier_id and type keys.
	FindAll(ctx context.Context, filter shared.Filter) ([]StockEntry, error)

	// Save creates a stock entry
	Save(ctx context.Context, entry *StockEntry) error

	// Count counts stock entries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
