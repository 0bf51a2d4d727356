package review

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// Review is one customer's rating of a book. A user can review a book
// at most once; editing replaces the previous rating.
type Review struct {
	shared.BaseEntity
	BookID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_book,priority:2"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_user_book,priority:1"`
	Stars   int       `gorm:"not null"`
	Title   string    `gorm:"type:varchar(255)"`
	Content string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a new review with a 1-5 star rating
func NewReview(userID, bookID uuid.UUID, stars int, title, content string) (*Review, error) {
	if userID == uuid.Nil || bookID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REVIEW", "Review must reference a user and a book")
	}
	if err := validateStars(stars); err != nil {
		return nil, err
	}

	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		BookID:     bookID,
		UserID:     userID,
		Stars:      stars,
		Title:      title,
		Content:    content,
	}, nil
}

// Update replaces the rating and text of an existing review
func (r *Review) Update(stars int, title, content string) error {
	if err := validateStars(stars); err != nil {
		return err
	}

	r.Stars = stars
	r.Title = title
	r.Content = content
	r.UpdatedAt = time.Now()

	return nil
}

func validateStars(stars int) error {
	if stars < 1 || stars > 5 {
		return shared.NewDomainError("INVALID_STARS", "Stars must be between 1 and 5")
	}
	return nil
}

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	// FindByID finds a review by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)

	// FindByUserAndBook finds the user's review of a book, if any
	FindByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*Review, error)

	// FindAll finds reviews matching the filter. Filters supports
	// book_id, user_id and stars keys.
	FindAll(ctx context.Context, filter shared.Filter) ([]Review, error)

	// Save creates or updates a review
	Save(ctx context.Context, review *Review) error

	// Delete deletes a review
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts reviews matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// AggregateForBook returns the average stars and review count of a book
	AggregateForBook(ctx context.Context, bookID uuid.UUID) (avgStars float64, total int64, err error)
}
