package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the base interface for all repositories
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Filter represents query filter options. Page is 1-based; Take is
// clamped to [1, MaxPageSize] before it reaches the database.
type Filter struct {
	Page     int
	Take     int
	SortBy   string
	Order    string
	Search   string
	Filters  map[string]interface{}
}

// Pagination bounds shared by every listing endpoint.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:    1,
		Take:    DefaultPageSize,
		SortBy:  "created_at",
		Order:   "DESC",
		Filters: make(map[string]interface{}),
	}
}

// Normalize clamps page/take into their legal ranges and fills defaults.
func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Take < 1 {
		f.Take = DefaultPageSize
	}
	if f.Take > MaxPageSize {
		f.Take = MaxPageSize
	}
	if f.SortBy == "" {
		f.SortBy = "created_at"
	}
	if f.Order != "ASC" && f.Order != "DESC" {
		f.Order = "DESC"
	}
	if f.Filters == nil {
		f.Filters = make(map[string]interface{})
	}
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items     []T   `json:"items"`
	ItemCount int64 `json:"itemCount"`
	Page      int   `json:"page"`
	Take      int   `json:"take"`
	PageCount int   `json:"pageCount"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, itemCount int64, page, take int) Paginated[T] {
	pageCount := int(itemCount) / take
	if int(itemCount)%take > 0 {
		pageCount++
	}
	return Paginated[T]{
		Items:     items,
		ItemCount: itemCount,
		Page:      page,
		Take:      take,
		PageCount: pageCount,
	}
}
