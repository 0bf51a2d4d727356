package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/review"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// GormReviewRepository implements review.ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	var rev review.Review
	if err := r.db.WithContext(ctx).First(&rev, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rev, nil
}

// FindByUserAndBook finds the user's review of a book, if any
func (r *GormReviewRepository) FindByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*review.Review, error) {
	var rev review.Review
	if err := r.db.WithContext(ctx).
		First(&rev, "user_id = ? AND book_id = ?", userID, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rev, nil
}

// FindAll finds reviews matching the filter
func (r *GormReviewRepository) FindAll(ctx context.Context, filter shared.Filter) ([]review.Review, error) {
	var reviews []review.Review
	query := r.applyFilter(r.db.WithContext(ctx).Model(&review.Review{}), filter)

	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, rev *review.Review) error {
	return r.db.WithContext(ctx).Save(rev).Error
}

// Delete deletes a review
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&review.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts reviews matching the filter
func (r *GormReviewRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&review.Review{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AggregateForBook returns the average stars and review count of a book
func (r *GormReviewRepository) AggregateForBook(ctx context.Context, bookID uuid.UUID) (float64, int64, error) {
	var result struct {
		AvgStars float64
		Total    int64
	}
	if err := r.db.WithContext(ctx).
		Model(&review.Review{}).
		Select("COALESCE(AVG(stars), 0) AS avg_stars, COUNT(*) AS total").
		Where("book_id = ?", bookID).
		Scan(&result).Error; err != nil {
		return 0, 0, err
	}
	return result.AvgStars, result.Total, nil
}

func (r *GormReviewRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.Take > 0 {
		offset := (filter.Page - 1) * filter.Take
		query = query.Offset(offset).Limit(filter.Take)
	}

	sortField := ValidateSortField(filter.SortBy, ReviewSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.Order)
	return query.Order(sortField + " " + orderDir)
}

func (r *GormReviewRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "book_id":
			query = query.Where("book_id = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "stars":
			query = query.Where("stars = ?", value)
		}
	}

	return query
}

var _ review.ReviewRepository = (*GormReviewRepository)(nil)
