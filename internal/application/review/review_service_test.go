package review

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/catalog"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/review"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// MockReviewRepository is a mock implementation of ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (*review.Review, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewRepository) FindAll(ctx context.Context, filter shared.Filter) ([]review.Review, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewRepository) Save(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) AggregateForBook(ctx context.Context, bookID uuid.UUID) (float64, int64, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

// MockBookRepository is a mock implementation of catalog.BookRepository
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Book), args.Error(1)
}

func (m *MockBookRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Book, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Book), args.Error(1)
}

func (m *MockBookRepository) FindByISBN(ctx context.Context, isbn string) (*catalog.Book, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Book), args.Error(1)
}

func (m *MockBookRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Book, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Book), args.Error(1)
}

func (m *MockBookRepository) Save(ctx context.Context, book *catalog.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	args := m.Called(ctx, isbn)
	return args.Bool(0), args.Error(1)
}

func newTestReviewService() (*ReviewService, *MockReviewRepository, *MockBookRepository) {
	reviewRepo := new(MockReviewRepository)
	bookRepo := new(MockBookRepository)
	return NewReviewService(reviewRepo, bookRepo, zap.NewNop()), reviewRepo, bookRepo
}

func newRatedBook(t *testing.T) *catalog.Book {
	t.Helper()
	book, err := catalog.NewBook("The Left Hand of Darkness", uuid.New(), decimal.NewFromInt(120000))
	require.NoError(t, err)
	return book
}

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("first review updates the book aggregates", func(t *testing.T) {
		service, reviewRepo, bookRepo := newTestReviewService()
		book := newRatedBook(t)
		userID := uuid.New()

		bookRepo.On("FindByID", ctx, book.ID).Return(book, nil)
		reviewRepo.On("FindByUserAndBook", ctx, userID, book.ID).Return(nil, shared.ErrNotFound)
		reviewRepo.On("Save", ctx, mock.AnythingOfType("*review.Review")).Return(nil)
		reviewRepo.On("AggregateForBook", ctx, book.ID).Return(4.0, int64(1), nil)
		bookRepo.On("Save", ctx, book).Return(nil)

		resp, err := service.Create(ctx, userID, CreateReviewRequest{
			BookID:  book.ID.String(),
			Stars:   4,
			Title:   "Haunting",
			Content: "Genly Ai's journey stays with you.",
		})

		require.NoError(t, err)
		assert.Equal(t, 4, resp.Stars)
		assert.True(t, book.AvgStars.Equal(decimal.NewFromInt(4)))
		assert.Equal(t, 1, book.TotalReviews)
	})

	t.Run("second review of the same book is rejected", func(t *testing.T) {
		service, reviewRepo, bookRepo := newTestReviewService()
		book := newRatedBook(t)
		userID := uuid.New()
		existing, err := review.NewReview(userID, book.ID, 5, "", "")
		require.NoError(t, err)

		bookRepo.On("FindByID", ctx, book.ID).Return(book, nil)
		reviewRepo.On("FindByUserAndBook", ctx, userID, book.ID).Return(existing, nil)

		_, err = service.Create(ctx, userID, CreateReviewRequest{
			BookID: book.ID.String(),
			Stars:  3,
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		reviewRepo.AssertNotCalled(t, "Save")
	})

	t.Run("reviewing a missing book fails", func(t *testing.T) {
		service, _, bookRepo := newTestReviewService()
		bookID := uuid.New()

		bookRepo.On("FindByID", ctx, bookID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, uuid.New(), CreateReviewRequest{
			BookID: bookID.String(),
			Stars:  5,
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rollup failure does not fail the review", func(t *testing.T) {
		service, reviewRepo, bookRepo := newTestReviewService()
		book := newRatedBook(t)
		userID := uuid.New()

		bookRepo.On("FindByID", ctx, book.ID).Return(book, nil)
		reviewRepo.On("FindByUserAndBook", ctx, userID, book.ID).Return(nil, shared.ErrNotFound)
		reviewRepo.On("Save", ctx, mock.Anything).Return(nil)
		reviewRepo.On("AggregateForBook", ctx, book.ID).Return(0.0, int64(0), assert.AnError)

		_, err := service.Create(ctx, userID, CreateReviewRequest{
			BookID: book.ID.String(),
			Stars:  5,
		})
		assert.NoError(t, err)
		bookRepo.AssertNotCalled(t, "Save")
	})
}

func TestReviewService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("owner replaces their rating", func(t *testing.T) {
		service, reviewRepo, bookRepo := newTestReviewService()
		book := newRatedBook(t)
		userID := uuid.New()
		r, err := review.NewReview(userID, book.ID, 2, "Meh", "")
		require.NoError(t, err)

		reviewRepo.On("FindByID", ctx, r.ID).Return(r, nil)
		reviewRepo.On("Save", ctx, r).Return(nil)
		bookRepo.On("FindByID", ctx, book.ID).Return(book, nil)
		reviewRepo.On("AggregateForBook", ctx, book.ID).Return(4.5, int64(2), nil)
		bookRepo.On("Save", ctx, book).Return(nil)

		resp, err := service.Update(ctx, r.ID, userID, UpdateReviewRequest{
			Stars: 5, Title: "Grew on me",
		})

		require.NoError(t, err)
		assert.Equal(t, 5, resp.Stars)
		assert.True(t, book.AvgStars.Equal(decimal.NewFromFloat(4.5)))
		assert.Equal(t, 2, book.TotalReviews)
	})

	t.Run("cannot edit someone else's review", func(t *testing.T) {
		service, reviewRepo, _ := newTestReviewService()
		r, err := review.NewReview(uuid.New(), uuid.New(), 2, "", "")
		require.NoError(t, err)

		reviewRepo.On("FindByID", ctx, r.ID).Return(r, nil)

		_, err = service.Update(ctx, r.ID, uuid.New(), UpdateReviewRequest{Stars: 1})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		reviewRepo.AssertNotCalled(t, "Save")
	})
}

func TestReviewService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes and aggregates refresh", func(t *testing.T) {
		service, reviewRepo, bookRepo := newTestReviewService()
		book := newRatedBook(t)
		userID := uuid.New()
		r, err := review.NewReview(userID, book.ID, 1, "", "")
		require.NoError(t, err)

		reviewRepo.On("FindByID", ctx, r.ID).Return(r, nil)
		reviewRepo.On("Delete", ctx, r.ID).Return(nil)
		bookRepo.On("FindByID", ctx, book.ID).Return(book, nil)
		reviewRepo.On("AggregateForBook", ctx, book.ID).Return(0.0, int64(0), nil)
		bookRepo.On("Save", ctx, book).Return(nil)

		err = service.Delete(ctx, r.ID, userID, false)

		require.NoError(t, err)
		assert.Equal(t, 0, book.TotalReviews)
	})

	t.Run("admin deletes any review", func(t *testing.T) {
		service, reviewRepo, bookRepo := newTestReviewService()
		book := newRatedBook(t)
		r, err := review.NewReview(uuid.New(), book.ID, 1, "", "")
		require.NoError(t, err)

		reviewRepo.On("FindByID", ctx, r.ID).Return(r, nil)
		reviewRepo.On("Delete", ctx, r.ID).Return(nil)
		bookRepo.On("FindByID", ctx, book.ID).Return(book, nil)
		reviewRepo.On("AggregateForBook", ctx, book.ID).Return(0.0, int64(0), nil)
		bookRepo.On("Save", ctx, book).Return(nil)

		assert.NoError(t, service.Delete(ctx, r.ID, uuid.New(), true))
	})

	t.Run("customer cannot delete another customer's review", func(t *testing.T) {
		service, reviewRepo, _ := newTestReviewService()
		r, err := review.NewReview(uuid.New(), uuid.New(), 1, "", "")
		require.NoError(t, err)

		reviewRepo.On("FindByID", ctx, r.ID).Return(r, nil)

		err = service.Delete(ctx, r.ID, uuid.New(), false)
		assert.ErrorIs(t, err, shared.ErrForbidden)
		reviewRepo.AssertNotCalled(t, "Delete")
	})
}

func TestReviewService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by book and normalizes paging", func(t *testing.T) {
		service, reviewRepo, _ := newTestReviewService()
		bookID := uuid.New()
		r, err := review.NewReview(uuid.New(), bookID, 4, "", "")
		require.NoError(t, err)

		match := mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1 && f.Take == 10 && f.Filters["book_id"] == bookID
		})
		reviewRepo.On("FindAll", ctx, match).Return([]review.Review{*r}, nil)
		reviewRepo.On("Count", ctx, match).Return(int64(1), nil)

		responses, total, err := service.List(ctx, ReviewListFilter{BookID: bookID.String()})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, responses, 1)
		assert.Equal(t, bookID, responses[0].BookID)
	})
}
