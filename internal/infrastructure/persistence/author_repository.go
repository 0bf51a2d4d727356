package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/catalog"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// GormAuthorRepository implements catalog.AuthorRepository using GORM
type GormAuthorRepository struct {
	db *gorm.DB
}

// NewGormAuthorRepository creates a new GormAuthorRepository
func NewGormAuthorRepository(db *gorm.DB) *GormAuthorRepository {
	return &GormAuthorRepository{db: db}
}

// FindByID finds an author by ID
func (r *GormAuthorRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Author, error) {
	var author catalog.Author
	if err := r.db.WithContext(ctx).First(&author, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &author, nil
}

// FindByIDs finds all authors whose IDs are in the given set
func (r *GormAuthorRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Author, error) {
	if len(ids) == 0 {
		return []catalog.Author{}, nil
	}
	var authors []catalog.Author
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}

// FindAll finds all authors matching the filter
func (r *GormAuthorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Author, error) {
	var authors []catalog.Author
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Author{}), filter)

	if err := query.Find(&authors).Error; err != nil {
		return nil, err
	}
	return authors, nil
}

// Save creates or updates an author
func (r *GormAuthorRepository) Save(ctx context.Context, author *catalog.Author) error {
	return r.db.WithContext(ctx).Save(author).Error
}

// Delete deletes an author
func (r *GormAuthorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Author{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts authors matching the filter
func (r *GormAuthorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Author{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAuthorRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.Take > 0 {
		offset := (filter.Page - 1) * filter.Take
		query = query.Offset(offset).Limit(filter.Take)
	}

	sortField := ValidateSortField(filter.SortBy, AuthorSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.Order)
	return query.Order(sortField + " " + orderDir)
}

func (r *GormAuthorRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

var _ catalog.AuthorRepository = (*GormAuthorRepository)(nil)
