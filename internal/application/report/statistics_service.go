package report

import (
	"context"
	"time"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/order"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/report"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

const dateLayout = "2006-01-02"

const (
	defaultTopLimit = 10
	maxTopLimit     = 50
)

// TopBook ranking metrics. The metric picks which aggregate query
// runs; unknown metrics are rejected rather than passed through.
const (
	MetricRevenue    = "revenue"
	MetricQuantity   = "quantity"
	MetricOrderCount = "orders"
	MetricCartAdds   = "cart_adds"
)

// StatisticsService serves the admin dashboard aggregations
type StatisticsService struct {
	statsRepo report.StatisticsRepository
}

// NewStatisticsService creates a new StatisticsService
func NewStatisticsService(statsRepo report.StatisticsRepository) *StatisticsService {
	return &StatisticsService{statsRepo: statsRepo}
}

// Summary returns total revenue, order count and books sold for the range
func (s *StatisticsService) Summary(ctx context.Context, q StatisticsQuery) (*report.RevenueSummary, error) {
	r, err := parseRange(q)
	if err != nil {
		return nil, err
	}
	return s.statsRepo.RevenueSummary(ctx, r)
}

// TopBooks ranks books over the range by the requested metric
func (s *StatisticsService) TopBooks(ctx context.Context, q TopBooksQuery) ([]report.TopBook, error) {
	r, err := parseRange(q.StatisticsQuery)
	if err != nil {
		return nil, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > maxTopLimit {
		limit = maxTopLimit
	}

	metric := q.Metric
	if metric == "" {
		metric = MetricRevenue
	}

	switch metric {
	case MetricRevenue:
		return s.statsRepo.TopBooksByRevenue(ctx, r, limit)
	case MetricQuantity:
		return s.statsRepo.TopBooksByQuantity(ctx, r, limit)
	case MetricOrderCount:
		return s.statsRepo.TopBooksByOrderCount(ctx, r, limit)
	case MetricCartAdds:
		return s.statsRepo.TopBooksByCartAdds(ctx, r, limit)
	default:
		return nil, shared.NewDomainError("INVALID_METRIC", "Unknown top-books metric")
	}
}

// RevenueByCustomer sums revenue per customer, splitting new from
// returning customers relative to the range start.
func (s *StatisticsService) RevenueByCustomer(ctx context.Context, q StatisticsQuery) ([]report.CustomerRevenue, error) {
	r, err := parseRange(q)
	if err != nil {
		return nil, err
	}
	return s.statsRepo.RevenueByCustomer(ctx, r)
}

// RevenueByCategory sums revenue per book category
func (s *StatisticsService) RevenueByCategory(ctx context.Context, q StatisticsQuery) ([]report.CategoryRevenue, error) {
	r, err := parseRange(q)
	if err != nil {
		return nil, err
	}
	return s.statsRepo.RevenueByCategory(ctx, r)
}

// RevenueByDate buckets revenue by calendar date and order status.
// Ranges matching no orders yield an empty slice.
func (s *StatisticsService) RevenueByDate(ctx context.Context, q StatisticsQuery) ([]report.DailyRevenue, error) {
	r, err := parseRange(q)
	if err != nil {
		return nil, err
	}
	return s.statsRepo.RevenueByDate(ctx, r)
}

// parseRange turns the raw query into a validated DateRange. The end
// date is pushed to the last instant of its day so the range is
// inclusive.
func parseRange(q StatisticsQuery) (report.DateRange, error) {
	from, err := time.Parse(dateLayout, q.FromDate)
	if err != nil {
		return report.DateRange{}, shared.NewDomainError("INVALID_RANGE", "fromDate must use the YYYY-MM-DD format")
	}
	to, err := time.Parse(dateLayout, q.ToDate)
	if err != nil {
		return report.DateRange{}, shared.NewDomainError("INVALID_RANGE", "toDate must use the YYYY-MM-DD format")
	}
	to = to.Add(24*time.Hour - time.Nanosecond)

	return report.NewDateRange(from, to, order.Status(q.Status))
}
