package review

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/catalog"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/review"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// ReviewService handles book ratings and keeps the per-book rating
// aggregates in sync.
type ReviewService struct {
	reviewRepo review.ReviewRepository
	bookRepo   catalog.BookRepository
	logger     *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo review.ReviewRepository, bookRepo catalog.BookRepository, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
		logger:     logger,
	}
}

// Create records a user's rating of a book. A user can review a book
// only once; a second attempt is rejected, use Update instead.
func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid book ID")
	}

	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	existing, err := s.reviewRepo.FindByUserAndBook(ctx, userID, bookID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "You have already reviewed this book")
	}

	r, err := review.NewReview(userID, bookID, req.Stars, req.Title, req.Content)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	s.refreshBookStats(ctx, book)

	response := ToReviewResponse(r)
	return &response, nil
}

// Update replaces the requester's existing review
func (s *ReviewService) Update(ctx context.Context, reviewID, requesterID uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error) {
	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if r.UserID != requesterID {
		return nil, shared.ErrForbidden
	}

	if err := r.Update(req.Stars, req.Title, req.Content); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	s.refreshStatsByBookID(ctx, r.BookID)

	response := ToReviewResponse(r)
	return &response, nil
}

// Delete removes a review. Customers can only delete their own;
// admins can delete any.
func (s *ReviewService) Delete(ctx context.Context, reviewID, requesterID uuid.UUID, isAdmin bool) error {
	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if !isAdmin && r.UserID != requesterID {
		return shared.ErrForbidden
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.refreshStatsByBookID(ctx, r.BookID)
	return nil
}

// GetByID returns a single review
func (s *ReviewService) GetByID(ctx context.Context, reviewID uuid.UUID) (*ReviewResponse, error) {
	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	response := ToReviewResponse(r)
	return &response, nil
}

// List returns reviews matching the filter with a total count
func (s *ReviewService) List(ctx context.Context, filter ReviewListFilter) ([]ReviewResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:    filter.Page,
		Take:    filter.Take,
		SortBy:  filter.SortBy,
		Order:   filter.Order,
		Filters: make(map[string]interface{}),
	}
	domainFilter.Normalize()

	if filter.BookID != "" {
		bookID, err := uuid.Parse(filter.BookID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid book ID")
		}
		domainFilter.Filters["book_id"] = bookID
	}
	if filter.UserID != "" {
		userID, err := uuid.Parse(filter.UserID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid user ID")
		}
		domainFilter.Filters["user_id"] = userID
	}
	if filter.Stars != 0 {
		domainFilter.Filters["stars"] = filter.Stars
	}

	reviews, err := s.reviewRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.reviewRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToReviewResponses(reviews), total, nil
}

// refreshStatsByBookID reloads the book and recomputes its aggregates.
// Rollup failures are logged, not propagated; the review write already
// succeeded.
func (s *ReviewService) refreshStatsByBookID(ctx context.Context, bookID uuid.UUID) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		s.logger.Warn("Cannot refresh rating: book lookup failed",
			zap.String("book_id", bookID.String()), zap.Error(err))
		return
	}
	s.refreshBookStats(ctx, book)
}

func (s *ReviewService) refreshBookStats(ctx context.Context, book *catalog.Book) {
	avg, total, err := s.reviewRepo.AggregateForBook(ctx, book.ID)
	if err != nil {
		s.logger.Warn("Review aggregation failed",
			zap.String("book_id", book.ID.String()), zap.Error(err))
		return
	}

	book.ApplyReviewStats(decimal.NewFromFloat(avg).Round(2), int(total))
	if err := s.bookRepo.Save(ctx, book); err != nil {
		s.logger.Error("Failed to store rating aggregates",
			zap.String("book_id", book.ID.String()), zap.Error(err))
	}
}
