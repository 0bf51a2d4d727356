package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/catalog"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/inventory"
)

// GormStockStore persists a stock movement atomically: the entry and
// the book's stock/entry-price update commit in one transaction or
// not at all.
type GormStockStore struct {
	db *gorm.DB
}

// NewGormStockStore creates a new GormStockStore
func NewGormStockStore(db *gorm.DB) *GormStockStore {
	return &GormStockStore{db: db}
}

// RecordTx inserts the stock entry and saves the already-adjusted book
// in a single transaction.
func (s *GormStockStore) RecordTx(ctx context.Context, entry *inventory.StockEntry, book *catalog.Book) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return tx.Omit("Authors", "Category").Save(book).Error
	})
}
