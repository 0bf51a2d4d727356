package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// BookRepository defines the interface for book persistence
type BookRepository interface {
	// FindByID finds a book by its ID, preloading category and authors
	FindByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// FindByIDs finds all books whose IDs are in the given set
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Book, error)

	// FindByISBN finds a book by its ISBN
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// FindAll finds all books matching the filter. Search matches
	// title case-insensitively; Filters supports category_id, author_id
	// and status keys.
	FindAll(ctx context.Context, filter shared.Filter) ([]Book, error)

	// Save creates or updates a book together with its author links
	Save(ctx context.Context, book *Book) error

	// Delete deletes a book
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts books matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByISBN checks whether a book with the given ISBN exists
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
}

// AuthorRepository defines the interface for author persistence
type AuthorRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Author, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Author, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Author, error)
	Save(ctx context.Context, author *Author) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// HasBooks checks if any book references the category
	HasBooks(ctx context.Context, categoryID uuid.UUID) (bool, error)
}
