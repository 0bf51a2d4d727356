package report

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/order"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/report"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// MockStatisticsRepository is a mock implementation of StatisticsRepository
type MockStatisticsRepository struct {
	mock.Mock
}

func (m *MockStatisticsRepository) RevenueSummary(ctx context.Context, r report.DateRange) (*report.RevenueSummary, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.RevenueSummary), args.Error(1)
}

func (m *MockStatisticsRepository) TopBooksByRevenue(ctx context.Context, r report.DateRange, limit int) ([]report.TopBook, error) {
	args := m.Called(ctx, r, limit)
	return args.Get(0).([]report.TopBook), args.Error(1)
}

func (m *MockStatisticsRepository) TopBooksByQuantity(ctx context.Context, r report.DateRange, limit int) ([]report.TopBook, error) {
	args := m.Called(ctx, r, limit)
	return args.Get(0).([]report.TopBook), args.Error(1)
}

func (m *MockStatisticsRepository) TopBooksByOrderCount(ctx context.Context, r report.DateRange, limit int) ([]report.TopBook, error) {
	args := m.Called(ctx, r, limit)
	return args.Get(0).([]report.TopBook), args.Error(1)
}

func (m *MockStatisticsRepository) TopBooksByCartAdds(ctx context.Context, r report.DateRange, limit int) ([]report.TopBook, error) {
	args := m.Called(ctx, r, limit)
	return args.Get(0).([]report.TopBook), args.Error(1)
}

func (m *MockStatisticsRepository) RevenueByCustomer(ctx context.Context, r report.DateRange) ([]report.CustomerRevenue, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]report.CustomerRevenue), args.Error(1)
}

func (m *MockStatisticsRepository) RevenueByCategory(ctx context.Context, r report.DateRange) ([]report.CategoryRevenue, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]report.CategoryRevenue), args.Error(1)
}

func (m *MockStatisticsRepository) RevenueByDate(ctx context.Context, r report.DateRange) ([]report.DailyRevenue, error) {
	args := m.Called(ctx, r)
	return args.Get(0).([]report.DailyRevenue), args.Error(1)
}

func augustQuery() StatisticsQuery {
	return StatisticsQuery{FromDate: "2026-08-01", ToDate: "2026-08-31"}
}

func TestStatisticsService_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("parses the range inclusively", func(t *testing.T) {
		repo := new(MockStatisticsRepository)
		service := NewStatisticsService(repo)

		match := mock.MatchedBy(func(r report.DateRange) bool {
			return r.From.Format("2006-01-02") == "2026-08-01" &&
				r.To.Format("2006-01-02") == "2026-08-31" &&
				r.To.Hour() == 23 && r.Status == order.Status("")
		})
		repo.On("RevenueSummary", ctx, match).Return(&report.RevenueSummary{
			TotalRevenue: decimal.NewFromInt(400000),
			TotalOrders:  2,
			TotalBooks:   5,
		}, nil)

		summary, err := service.Summary(ctx, augustQuery())

		require.NoError(t, err)
		assert.True(t, summary.TotalRevenue.Equal(decimal.NewFromInt(400000)))
		assert.Equal(t, int64(2), summary.TotalOrders)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		repo := new(MockStatisticsRepository)
		service := NewStatisticsService(repo)

		_, err := service.Summary(ctx, StatisticsQuery{
			FromDate: "2026-08-31", ToDate: "2026-08-01",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_RANGE", domainErr.Code)
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		repo := new(MockStatisticsRepository)
		service := NewStatisticsService(repo)

		_, err := service.Summary(ctx, StatisticsQuery{
			FromDate: "01/08/2026", ToDate: "2026-08-31",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_RANGE", domainErr.Code)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		repo := new(MockStatisticsRepository)
		service := NewStatisticsService(repo)

		q := augustQuery()
		q.Status = "shipped"

		_, err := service.Summary(ctx, q)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	})
}

func TestStatisticsService_TopBooks(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to revenue with limit 10", func(t *testing.T) {
		repo := new(MockStatisticsRepository)
		service := NewStatisticsService(repo)

		repo.On("TopBooksByRevenue", ctx, mock.Anything, 10).Return([]report.TopBook{
			{BookID: uuid.New(), Title: "Dune", Revenue: decimal.NewFromInt(990000)},
		}, nil)

		books, err := service.TopBooks(ctx, TopBooksQuery{StatisticsQuery: augustQuery()})

		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "Dune", books[0].Title)
	})

	t.Run("metric picks the query", func(t *testing.T) {
		repo := new(MockStatisticsRepository)
		service := NewStatisticsService(repo)

		repo.On("TopBooksByCartAdds", ctx, mock.Anything, 5).Return([]report.TopBook{}, nil)

		books, err := service.TopBooks(ctx, TopBooksQuery{
			StatisticsQuery: augustQuery(),
			Metric:          MetricCartAdds,
			Limit:           5,
		})

		require.NoError(t, err)
		assert.Empty(t, books)
		repo.AssertNotCalled(t, "TopBooksByRevenue")
	})

	t.Run("limit is clamped to 50", func(t *testing.T) {
		repo := new(MockStatisticsRepository)
		service := NewStatisticsService(repo)

		repo.On("TopBooksByQuantity", ctx, mock.Anything, 50).Return([]report.TopBook{}, nil)

		_, err := service.TopBooks(ctx, TopBooksQuery{
			StatisticsQuery: augustQuery(),
			Metric:          MetricQuantity,
			Limit:           500,
		})
		require.NoError(t, err)
	})

	t.Run("unknown metric is rejected", func(t *testing.T) {
		repo := new(MockStatisticsRepository)
		service := NewStatisticsService(repo)

		_, err := service.TopBooks(ctx, TopBooksQuery{
			StatisticsQuery: augustQuery(),
			Metric:          "profit",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_METRIC", domainErr.Code)
	})
}

func TestStatisticsService_RevenueByDate(t *testing.T) {
	ctx := context.Background()

	t.Run("empty range yields an empty slice", func(t *testing.T) {
		repo := new(MockStatisticsRepository)
		service := NewStatisticsService(repo)

		repo.On("RevenueByDate", ctx, mock.Anything).Return([]report.DailyRevenue{}, nil)

		rows, err := service.RevenueByDate(ctx, augustQuery())

		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})
}

func TestStatisticsService_RevenueByCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("passes the status filter through", func(t *testing.T) {
		repo := new(MockStatisticsRepository)
		service := NewStatisticsService(repo)

		match := mock.MatchedBy(func(r report.DateRange) bool {
			return r.Status == order.StatusDelivered
		})
		repo.On("RevenueByCustomer", ctx, match).Return([]report.CustomerRevenue{
			{UserID: uuid.New(), FullName: "Linh Tran", Revenue: decimal.NewFromInt(250000), Returning: true},
		}, nil)

		q := augustQuery()
		q.Status = "delivered"

		rows, err := service.RevenueByCustomer(ctx, q)

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].Returning)
	})
}
