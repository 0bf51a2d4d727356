package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/cart"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/order"
)

// GormCheckoutStore persists a checkout atomically: the order, its
// items and the cart clear commit in one transaction or not at all.
type GormCheckoutStore struct {
	db *gorm.DB
}

// NewGormCheckoutStore creates a new GormCheckoutStore
func NewGormCheckoutStore(db *gorm.DB) *GormCheckoutStore {
	return &GormCheckoutStore{db: db}
}

// CheckoutTx inserts the order with its items and empties the cart in
// a single transaction.
func (s *GormCheckoutStore) CheckoutTx(ctx context.Context, o *order.Order, cartID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(o).Error; err != nil {
			return err
		}
		for i := range o.Items {
			o.Items[i].OrderID = o.ID
		}
		if err := tx.Create(&o.Items).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cartID).Delete(&cart.CartItem{}).Error
	})
}
