package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/catalog"
)

// CreateBookRequest represents a request to create a new book
type CreateBookRequest struct {
	Title           string           `json:"title" binding:"required,min=1,max=255"`
	Description     string           `json:"description" binding:"max=5000"`
	ISBN            string           `json:"isbn" binding:"max=20"`
	CategoryID      uuid.UUID        `json:"categoryId" binding:"required"`
	AuthorIDs       []uuid.UUID      `json:"authorIds"`
	Price           decimal.Decimal  `json:"price" binding:"required"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
	StockQuantity   *int             `json:"stockQuantity"`
}

// UpdateBookRequest represents a request to update a book
type UpdateBookRequest struct {
	Title           *string          `json:"title" binding:"omitempty,min=1,max=255"`
	Description     *string          `json:"description" binding:"omitempty,max=5000"`
	ISBN            *string          `json:"isbn" binding:"omitempty,max=20"`
	CategoryID      *uuid.UUID       `json:"categoryId"`
	AuthorIDs       []uuid.UUID      `json:"authorIds"`
	Price           *decimal.Decimal `json:"price"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
}

// BookListFilter represents filter options for the book list
type BookListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=active inactive"`
	CategoryID *uuid.UUID `form:"categoryId"`
	AuthorID   *uuid.UUID `form:"authorId"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	Take       int        `form:"take" binding:"omitempty,min=1,max=50"`
	SortBy     string     `form:"sortBy"`
	Order      string     `form:"order" binding:"omitempty,oneof=ASC DESC"`
}

// BookResponse represents a book in API responses
type BookResponse struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	ISBN            string           `json:"isbn"`
	CategoryID      uuid.UUID        `json:"categoryId"`
	Category        *CategoryResponse `json:"category,omitempty"`
	Authors         []AuthorResponse `json:"authors,omitempty"`
	Price           decimal.Decimal  `json:"price"`
	DiscountPercent decimal.Decimal  `json:"discountPercent"`
	FinalPrice      decimal.Decimal  `json:"finalPrice"`
	StockQuantity   int              `json:"stockQuantity"`
	SoldQuantity    int              `json:"soldQuantity"`
	AvgStars        decimal.Decimal  `json:"avgStars"`
	TotalReviews    int              `json:"totalReviews"`
	CoverURLs       []string         `json:"coverUrls"`
	Status          string           `json:"status"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// CreateAuthorRequest represents a request to create an author
type CreateAuthorRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=255"`
	Biography string `json:"biography" binding:"max=5000"`
}

// UpdateAuthorRequest represents a request to update an author
type UpdateAuthorRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=255"`
	Biography *string `json:"biography" binding:"omitempty,max=5000"`
}

// AuthorResponse represents an author in API responses
type AuthorResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Biography string    `json:"biography"`
	AvatarURL string    `json:"avatarUrl"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToBookResponse converts a domain Book to BookResponse
func ToBookResponse(b *catalog.Book) BookResponse {
	resp := BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Description:     b.Description,
		ISBN:            b.ISBN,
		CategoryID:      b.CategoryID,
		Price:           b.Price,
		DiscountPercent: b.DiscountPercent,
		FinalPrice:      b.FinalPrice,
		StockQuantity:   b.StockQuantity,
		SoldQuantity:    b.SoldQuantity,
		AvgStars:        b.AvgStars,
		TotalReviews:    b.TotalReviews,
		CoverURLs:       b.CoverURLs,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.Category != nil {
		category := ToCategoryResponse(b.Category)
		resp.Category = &category
	}
	for i := range b.Authors {
		resp.Authors = append(resp.Authors, ToAuthorResponse(&b.Authors[i]))
	}
	return resp
}

// ToBookResponses converts a slice of domain Books
func ToBookResponses(books []catalog.Book) []BookResponse {
	responses := make([]BookResponse, 0, len(books))
	for i := range books {
		responses = append(responses, ToBookResponse(&books[i]))
	}
	return responses
}

// ToAuthorResponse converts a domain Author to AuthorResponse
func ToAuthorResponse(a *catalog.Author) AuthorResponse {
	return AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Biography: a.Biography,
		AvatarURL: a.AvatarURL,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// ToAuthorResponses converts a slice of domain Authors
func ToAuthorResponses(authors []catalog.Author) []AuthorResponse {
	responses := make([]AuthorResponse, 0, len(authors))
	for i := range authors {
		responses = append(responses, ToAuthorResponse(&authors[i]))
	}
	return responses
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Status:      string(c.Status),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of domain Categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	return responses
}
