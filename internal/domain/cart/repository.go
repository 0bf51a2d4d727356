package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// FindByID finds a cart by its ID with items and books preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Cart, error)

	// FindByUserID finds a user's cart with items and books preloaded.
	// Returns shared.ErrNotFound when the user has no cart yet.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save creates or updates a cart and replaces its items
	Save(ctx context.Context, cart *Cart) error

	// DeleteItems removes every line from a cart
	DeleteItems(ctx context.Context, cartID uuid.UUID) error

	// Delete deletes a cart and its items
	Delete(ctx context.Context, id uuid.UUID) error
}
