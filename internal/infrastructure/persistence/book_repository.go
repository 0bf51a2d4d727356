package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/catalog"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// GormBookRepository implements catalog.BookRepository using GORM
type GormBookRepository struct {
	db *gorm.DB
}

// NewGormBookRepository creates a new GormBookRepository
func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// FindByID finds a book by its ID with category and authors preloaded
func (r *GormBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	var book catalog.Book
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Authors").
		First(&book, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// FindByIDs finds all books whose IDs are in the given set
func (r *GormBookRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Book, error) {
	if len(ids) == 0 {
		return []catalog.Book{}, nil
	}
	var books []catalog.Book
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// FindByISBN finds a book by its ISBN
func (r *GormBookRepository) FindByISBN(ctx context.Context, isbn string) (*catalog.Book, error) {
	if isbn == "" {
		return nil, shared.NewDomainError("INVALID_ISBN", "ISBN cannot be empty")
	}
	var book catalog.Book
	if err := r.db.WithContext(ctx).
		First(&book, "isbn = ?", isbn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

// FindAll finds all books matching the filter
func (r *GormBookRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Book, error) {
	var books []catalog.Book
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Book{}), filter)

	if err := query.Preload("Category").Preload("Authors").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// Save creates or updates a book together with its author links
func (r *GormBookRepository) Save(ctx context.Context, book *catalog.Book) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Authors", "Category").Save(book).Error; err != nil {
			return err
		}
		return tx.Model(book).Association("Authors").Replace(book.Authors)
	})
}

// Delete deletes a book
func (r *GormBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Book{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts books matching the filter
func (r *GormBookRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Book{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByISBN checks whether a book with the given ISBN exists
func (r *GormBookRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	if isbn == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Book{}).
		Where("isbn = ?", isbn).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormBookRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.Take > 0 {
		offset := (filter.Page - 1) * filter.Take
		query = query.Offset(offset).Limit(filter.Take)
	}

	sortField := ValidateSortField(filter.SortBy, BookSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.Order)
	return query.Order("books." + sortField + " " + orderDir)
}

func (r *GormBookRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("books.title ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "category_id":
			query = query.Where("books.category_id = ?", value)
		case "author_id":
			query = query.
				Joins("JOIN book_authors ON book_authors.book_id = books.id").
				Where("book_authors.author_id = ?", value)
		case "status":
			query = query.Where("books.status = ?", value)
		}
	}

	return query
}

var _ catalog.BookRepository = (*GormBookRepository)(nil)
