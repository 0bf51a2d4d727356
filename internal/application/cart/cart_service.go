package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/cart"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/catalog"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// CartService handles a customer's shopping cart. Quantities are always
// clamped to the book's current stock; requests are never rejected for
// exceeding it.
type CartService struct {
	cartRepo cart.CartRepository
	bookRepo catalog.BookRepository
}

// NewCartService creates a new CartService
func NewCartService(cartRepo cart.CartRepository, bookRepo catalog.BookRepository) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

// Get returns the user's cart, creating an empty one on first use
func (s *CartService) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	c, err := s.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToCartResponse(c)
	return &response, nil
}

// AddItem adds a book to the cart or increases its quantity. The stored
// quantity is clamped to the book's stock and returned in the response.
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if !book.IsActive() {
		return nil, shared.NewDomainError("BOOK_INACTIVE", "Book is not available")
	}

	c, err := s.findOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := c.AddItem(book, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.reload(ctx, userID)
}

// UpdateItem sets a line's quantity, clamped to stock. Zero removes it.
func (s *CartService) UpdateItem(ctx context.Context, userID uuid.UUID, bookID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := c.UpdateItem(book, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.reload(ctx, userID)
}

// RemoveItem deletes a line from the cart
func (s *CartService) RemoveItem(ctx context.Context, userID, bookID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := c.RemoveItem(bookID); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.reload(ctx, userID)
}

// Clear removes every line from the user's cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil // nothing to clear
		}
		return err
	}

	return s.cartRepo.DeleteItems(ctx, c.ID)
}

func (s *CartService) findOrCreate(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	c, err = cart.NewCart(userID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// reload re-reads the cart so responses carry preloaded book data
func (s *CartService) reload(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(c)
	return &response, nil
}
