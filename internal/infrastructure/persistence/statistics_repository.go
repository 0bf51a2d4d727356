package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/order"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/report"
)

// GormStatisticsRepository implements report.StatisticsRepository with
// aggregate SQL over orders, order_items, cart_items and books.
type GormStatisticsRepository struct {
	db *gorm.DB
}

// NewGormStatisticsRepository creates a new GormStatisticsRepository
func NewGormStatisticsRepository(db *gorm.DB) *GormStatisticsRepository {
	return &GormStatisticsRepository{db: db}
}

// orderScope bounds orders to the range and optional status filter
func (r *GormStatisticsRepository) orderScope(ctx context.Context, dr report.DateRange) *gorm.DB {
	query := r.db.WithContext(ctx).Table("orders o").
		Where("o.created_at BETWEEN ? AND ?", dr.From, dr.To)
	if dr.Status != "" {
		query = query.Where("o.status = ?", dr.Status)
	}
	return query
}

// RevenueSummary sums revenue, orders and quantity over the range.
// Revenue and order count come from orders alone; joining order_items
// there would repeat each order's total once per line. The quantity
// runs as its own aggregate over the joined lines.
func (r *GormStatisticsRepository) RevenueSummary(ctx context.Context, dr report.DateRange) (*report.RevenueSummary, error) {
	type summaryResult struct {
		TotalRevenue decimal.Decimal
		TotalOrders  int64
	}

	var result summaryResult
	err := r.orderScope(ctx, dr).
		Select(`
			COALESCE(SUM(o.total_price), 0) as total_revenue,
			COUNT(o.id) as total_orders
		`).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	var quantity struct {
		TotalBooks int64
	}
	err = r.orderScope(ctx, dr).
		Select("COALESCE(SUM(oi.quantity), 0) as total_books").
		Joins("JOIN order_items oi ON oi.order_id = o.id").
		Scan(&quantity).Error
	if err != nil {
		return nil, err
	}

	return &report.RevenueSummary{
		TotalRevenue: result.TotalRevenue,
		TotalOrders:  result.TotalOrders,
		TotalBooks:   quantity.TotalBooks,
	}, nil
}

type topBookResult struct {
	BookID       uuid.UUID
	Title        string
	Revenue      decimal.Decimal
	QuantitySold int64
	OrderCount   int64
	CartAdds     int64
}

func toTopBooks(results []topBookResult) []report.TopBook {
	books := make([]report.TopBook, len(results))
	for i, row := range results {
		books[i] = report.TopBook{
			BookID:       row.BookID,
			Title:        row.Title,
			Revenue:      row.Revenue,
			QuantitySold: row.QuantitySold,
			OrderCount:   row.OrderCount,
			CartAdds:     row.CartAdds,
		}
	}
	return books
}

// topBooksQuery builds the shared order-line aggregation behind the
// top-book rankings; orderBy picks the ranking metric.
func (r *GormStatisticsRepository) topBooksQuery(ctx context.Context, dr report.DateRange, limit int, orderBy string) ([]topBookResult, error) {
	var results []topBookResult
	err := r.orderScope(ctx, dr).
		Select(`
			oi.book_id as book_id,
			oi.book_title as title,
			COALESCE(SUM(oi.total_price), 0) as revenue,
			COALESCE(SUM(oi.quantity), 0) as quantity_sold,
			COUNT(DISTINCT o.id) as order_count
		`).
		Joins("JOIN order_items oi ON oi.order_id = o.id").
		Group("oi.book_id, oi.book_title").
		Order(orderBy).
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// TopBooksByRevenue ranks the top N books by order revenue
func (r *GormStatisticsRepository) TopBooksByRevenue(ctx context.Context, dr report.DateRange, limit int) ([]report.TopBook, error) {
	results, err := r.topBooksQuery(ctx, dr, limit, "revenue DESC")
	if err != nil {
		return nil, err
	}
	return toTopBooks(results), nil
}

// TopBooksByQuantity ranks the top N books by quantity sold
func (r *GormStatisticsRepository) TopBooksByQuantity(ctx context.Context, dr report.DateRange, limit int) ([]report.TopBook, error) {
	results, err := r.topBooksQuery(ctx, dr, limit, "quantity_sold DESC")
	if err != nil {
		return nil, err
	}
	return toTopBooks(results), nil
}

// TopBooksByOrderCount ranks the top N books by distinct orders
func (r *GormStatisticsRepository) TopBooksByOrderCount(ctx context.Context, dr report.DateRange, limit int) ([]report.TopBook, error) {
	results, err := r.topBooksQuery(ctx, dr, limit, "order_count DESC")
	if err != nil {
		return nil, err
	}
	return toTopBooks(results), nil
}

// TopBooksByCartAdds ranks the top N books by cart line creations in
// the range. Cart lines are counted from cart_items, not orders.
func (r *GormStatisticsRepository) TopBooksByCartAdds(ctx context.Context, dr report.DateRange, limit int) ([]report.TopBook, error) {
	var results []topBookResult
	err := r.db.WithContext(ctx).Table("cart_items ci").
		Select(`
			ci.book_id as book_id,
			b.title as title,
			COUNT(ci.id) as cart_adds
		`).
		Joins("JOIN books b ON b.id = ci.book_id").
		Where("ci.created_at BETWEEN ? AND ?", dr.From, dr.To).
		Group("ci.book_id, b.title").
		Order("cart_adds DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return toTopBooks(results), nil
}

// RevenueByCustomer sums revenue per customer. A customer counts as
// returning when they had at least one order before the range start.
func (r *GormStatisticsRepository) RevenueByCustomer(ctx context.Context, dr report.DateRange) ([]report.CustomerRevenue, error) {
	type customerResult struct {
		UserID      uuid.UUID
		FullName    string
		Email       string
		Revenue     decimal.Decimal
		OrderCount  int64
		PriorOrders int64
	}

	var results []customerResult
	err := r.orderScope(ctx, dr).
		Select(`
			o.user_id as user_id,
			u.full_name as full_name,
			u.email as email,
			COALESCE(SUM(o.total_price), 0) as revenue,
			COUNT(o.id) as order_count,
			(SELECT COUNT(*) FROM orders prior WHERE prior.user_id = o.user_id AND prior.created_at < ?) as prior_orders
		`, dr.From).
		Joins("JOIN users u ON u.id = o.user_id").
		Group("o.user_id, u.full_name, u.email").
		Order("revenue DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	customers := make([]report.CustomerRevenue, len(results))
	for i, row := range results {
		customers[i] = report.CustomerRevenue{
			UserID:     row.UserID,
			FullName:   row.FullName,
			Email:      row.Email,
			Revenue:    row.Revenue,
			OrderCount: row.OrderCount,
			Returning:  row.PriorOrders > 0,
		}
	}
	return customers, nil
}

// RevenueByCategory sums revenue per book category
func (r *GormStatisticsRepository) RevenueByCategory(ctx context.Context, dr report.DateRange) ([]report.CategoryRevenue, error) {
	type categoryResult struct {
		CategoryID   uuid.UUID
		CategoryName string
		Revenue      decimal.Decimal
		QuantitySold int64
	}

	var results []categoryResult
	err := r.orderScope(ctx, dr).
		Select(`
			c.id as category_id,
			c.name as category_name,
			COALESCE(SUM(oi.total_price), 0) as revenue,
			COALESCE(SUM(oi.quantity), 0) as quantity_sold
		`).
		Joins("JOIN order_items oi ON oi.order_id = o.id").
		Joins("JOIN books b ON b.id = oi.book_id").
		Joins("JOIN categories c ON c.id = b.category_id").
		Group("c.id, c.name").
		Order("revenue DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	categories := make([]report.CategoryRevenue, len(results))
	for i, row := range results {
		categories[i] = report.CategoryRevenue{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Revenue:      row.Revenue,
			QuantitySold: row.QuantitySold,
		}
	}
	return categories, nil
}

// RevenueByDate buckets revenue by calendar date and order status
func (r *GormStatisticsRepository) RevenueByDate(ctx context.Context, dr report.DateRange) ([]report.DailyRevenue, error) {
	type dailyResult struct {
		Date       time.Time
		Status     string
		Revenue    decimal.Decimal
		OrderCount int64
	}

	var results []dailyResult
	err := r.orderScope(ctx, dr).
		Select(`
			DATE(o.created_at) as date,
			o.status as status,
			COALESCE(SUM(o.total_price), 0) as revenue,
			COUNT(o.id) as order_count
		`).
		Group("DATE(o.created_at), o.status").
		Order("date ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	days := make([]report.DailyRevenue, len(results))
	for i, row := range results {
		days[i] = report.DailyRevenue{
			Date:       row.Date,
			Status:     order.Status(row.Status),
			Revenue:    row.Revenue,
			OrderCount: row.OrderCount,
		}
	}
	return days, nil
}

var _ report.StatisticsRepository = (*GormStatisticsRepository)(nil)
