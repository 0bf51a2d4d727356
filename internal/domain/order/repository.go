package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with its items preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll finds all orders matching the filter. Filters supports
	// user_id and status keys.
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order and its items
	Save(ctx context.Context, o *Order) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByUserBefore counts orders a user placed strictly before the
	// given time. Used to classify customers as new or returning.
	CountByUserBefore(ctx context.Context, userID uuid.UUID, before time.Time) (int64, error)
}
