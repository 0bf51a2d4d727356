package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/order"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// DateRange bounds every statistics query to [From, To] inclusive.
// Status optionally narrows the orders counted; empty means all
// statuses.
type DateRange struct {
	From   time.Time
	To     time.Time
	Status order.Status
}

// NewDateRange validates and builds a statistics range
func NewDateRange(from, to time.Time, status order.Status) (DateRange, error) {
	if from.IsZero() || to.IsZero() {
		return DateRange{}, shared.NewDomainError("INVALID_RANGE", "Both fromDate and toDate are required")
	}
	if to.Before(from) {
		return DateRange{}, shared.NewDomainError("INVALID_RANGE", "toDate must not be before fromDate")
	}
	if status != "" && !order.ValidStatus(status) {
		return DateRange{}, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	return DateRange{From: from, To: to, Status: status}, nil
}

// RevenueSummary is the headline dashboard figure for a range
type RevenueSummary struct {
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalOrders  int64           `json:"totalOrders"`
	TotalBooks   int64           `json:"totalBooks"` // quantity across all order lines
}

// TopBook ranks a book inside a range. Which metric filled the Value
// depends on the query that produced it.
type TopBook struct {
	BookID       uuid.UUID       `json:"bookId"`
	Title        string          `json:"title"`
	Revenue      decimal.Decimal `json:"revenue"`
	QuantitySold int64           `json:"quantitySold"`
	OrderCount   int64           `json:"orderCount"`
	CartAdds     int64           `json:"cartAdds"`
}

// CustomerRevenue is a per-customer revenue row. Returning is true
// when the customer had at least one order before the range started.
type CustomerRevenue struct {
	UserID     uuid.UUID       `json:"userId"`
	FullName   string          `json:"fullName"`
	Email      string          `json:"email"`
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int64           `json:"orderCount"`
	Returning  bool            `json:"returning"`
}

// CategoryRevenue is a per-category revenue row
type CategoryRevenue struct {
	CategoryID   uuid.UUID       `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Revenue      decimal.Decimal `json:"revenue"`
	QuantitySold int64           `json:"quantitySold"`
}

// DailyRevenue buckets revenue by calendar date and order status
type DailyRevenue struct {
	Date       time.Time       `json:"date"`
	Status     order.Status    `json:"status"`
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int64           `json:"orderCount"`
}

// StatisticsRepository runs the aggregate queries behind the admin
// dashboard. Every method returns empty collections (never an error)
// when the range matches nothing.
type StatisticsRepository interface {
	// RevenueSummary sums revenue, orders and quantity over the range
	RevenueSummary(ctx context.Context, r DateRange) (*RevenueSummary, error)

	// TopBooksByRevenue ranks the top N books by order revenue
	TopBooksByRevenue(ctx context.Context, r DateRange, limit int) ([]TopBook, error)

	// TopBooksByQuantity ranks the top N books by quantity sold
	TopBooksByQuantity(ctx context.Context, r DateRange, limit int) ([]TopBook, error)

	// TopBooksByOrderCount ranks the top N books by distinct orders
	TopBooksByOrderCount(ctx context.Context, r DateRange, limit int) ([]TopBook, error)

	// TopBooksByCartAdds ranks the top N books by cart line creations
	// in the range. Cart adds are read from cart_items, not orders.
	TopBooksByCartAdds(ctx context.Context, r DateRange, limit int) ([]TopBook, error)

	// RevenueByCustomer sums revenue per customer, classifying each as
	// new or returning relative to the range start.
	RevenueByCustomer(ctx context.Context, r DateRange) ([]CustomerRevenue, error)

	// RevenueByCategory sums revenue per book category
	RevenueByCategory(ctx context.Context, r DateRange) ([]CategoryRevenue, error)

	// RevenueByDate buckets revenue by calendar date and order status
	RevenueByDate(ctx context.Context, r DateRange) ([]DailyRevenue, error)
}
