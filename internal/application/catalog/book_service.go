package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/catalog"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// BookService handles catalog book operations
type BookService struct {
	bookRepo     catalog.BookRepository
	authorRepo   catalog.AuthorRepository
	categoryRepo catalog.CategoryRepository
}

// NewBookService creates a new BookService
func NewBookService(
	bookRepo catalog.BookRepository,
	authorRepo catalog.AuthorRepository,
	categoryRepo catalog.CategoryRepository,
) *BookService {
	return &BookService{
		bookRepo:     bookRepo,
		authorRepo:   authorRepo,
		categoryRepo: categoryRepo,
	}
}

// Create creates a new book
func (s *BookService) Create(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	if req.ISBN != "" {
		exists, err := s.bookRepo.ExistsByISBN(ctx, req.ISBN)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Book with this ISBN already exists")
		}
	}

	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		return nil, err
	}

	book, err := catalog.NewBook(req.Title, req.CategoryID, req.Price)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.ISBN != "" {
		if err := book.Update(req.Title, req.Description, req.ISBN); err != nil {
			return nil, err
		}
	}

	if req.DiscountPercent != nil {
		if err := book.SetPricing(req.Price, *req.DiscountPercent); err != nil {
			return nil, err
		}
	}

	if req.StockQuantity != nil {
		if err := book.AdjustStock(*req.StockQuantity); err != nil {
			return nil, err
		}
	}

	if len(req.AuthorIDs) > 0 {
		authors, err := s.resolveAuthors(ctx, req.AuthorIDs)
		if err != nil {
			return nil, err
		}
		book.Authors = authors
	}

	if err := s.bookRepo.Save(ctx, book); err != nil {
		return nil, err
	}

	response := ToBookResponse(book)
	return &response, nil
}

// GetByID retrieves a book by ID
func (s *BookService) GetByID(ctx context.Context, bookID uuid.UUID) (*BookResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	response := ToBookResponse(book)
	return &response, nil
}

// GetByISBN retrieves a book by ISBN
func (s *BookService) GetByISBN(ctx context.Context, isbn string) (*BookResponse, error) {
	book, err := s.bookRepo.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	response := ToBookResponse(book)
	return &response, nil
}

// List retrieves books with filtering and pagination
func (s *BookService) List(ctx context.Context, filter BookListFilter) ([]BookResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:    filter.Page,
		Take:    filter.Take,
		SortBy:  filter.SortBy,
		Order:   filter.Order,
		Search:  filter.Search,
		Filters: make(map[string]interface{}),
	}
	domainFilter.Normalize()

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.AuthorID != nil {
		domainFilter.Filters["author_id"] = *filter.AuthorID
	}

	books, err := s.bookRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.bookRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToBookResponses(books), total, nil
}

// Update updates a book
func (s *BookService) Update(ctx context.Context, bookID uuid.UUID, req UpdateBookRequest) (*BookResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	title := book.Title
	description := book.Description
	isbn := book.ISBN
	if req.Title != nil {
		title = *req.Title
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.ISBN != nil {
		isbn = *req.ISBN
	}

	if isbn != "" && isbn != book.ISBN {
		exists, err := s.bookRepo.ExistsByISBN(ctx, isbn)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Book with this ISBN already exists")
		}
	}

	if err := book.Update(title, description, isbn); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
		book.CategoryID = *req.CategoryID
	}

	if req.Price != nil || req.DiscountPercent != nil {
		price := book.Price
		discount := book.DiscountPercent
		if req.Price != nil {
			price = *req.Price
		}
		if req.DiscountPercent != nil {
			discount = *req.DiscountPercent
		}
		if err := book.SetPricing(price, discount); err != nil {
			return nil, err
		}
	}

	if req.AuthorIDs != nil {
		authors, err := s.resolveAuthors(ctx, req.AuthorIDs)
		if err != nil {
			return nil, err
		}
		book.Authors = authors
	}

	if err := s.bookRepo.Save(ctx, book); err != nil {
		return nil, err
	}

	response := ToBookResponse(book)
	return &response, nil
}

// SetDiscount applies a discount percentage to a book
func (s *BookService) SetDiscount(ctx context.Context, bookID uuid.UUID, discountPercent decimal.Decimal) (*BookResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if err := book.SetPricing(book.Price, discountPercent); err != nil {
		return nil, err
	}

	if err := s.bookRepo.Save(ctx, book); err != nil {
		return nil, err
	}

	response := ToBookResponse(book)
	return &response, nil
}

// Activate makes a book visible in the storefront
func (s *BookService) Activate(ctx context.Context, bookID uuid.UUID) (*BookResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if err := book.Activate(); err != nil {
		return nil, err
	}

	if err := s.bookRepo.Save(ctx, book); err != nil {
		return nil, err
	}

	response := ToBookResponse(book)
	return &response, nil
}

// Deactivate hides a book from the storefront
func (s *BookService) Deactivate(ctx context.Context, bookID uuid.UUID) (*BookResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if err := book.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.bookRepo.Save(ctx, book); err != nil {
		return nil, err
	}

	response := ToBookResponse(book)
	return &response, nil
}

func (s *BookService) resolveAuthors(ctx context.Context, ids []uuid.UUID) ([]catalog.Author, error) {
	authors, err := s.authorRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(authors) != len(ids) {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "One or more authors not found")
	}
	return authors, nil
}
