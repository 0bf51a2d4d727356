package review

import (
	"time"

	"github.com/google/uuid"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/review"
)

// CreateReviewRequest is the payload for rating a book
type CreateReviewRequest struct {
	BookID  string `json:"bookId" binding:"required,uuid"`
	Stars   int    `json:"stars" binding:"required,min=1,max=5"`
	Title   string `json:"title" binding:"max=255"`
	Content string `json:"content"`
}

// UpdateReviewRequest replaces an existing rating
type UpdateReviewRequest struct {
	Stars   int    `json:"stars" binding:"required,min=1,max=5"`
	Title   string `json:"title" binding:"max=255"`
	Content string `json:"content"`
}

// ReviewListFilter captures review list query parameters
type ReviewListFilter struct {
	Page   int    `form:"page"`
	Take   int    `form:"take"`
	SortBy string `form:"sortBy"`
	Order  string `form:"order"`
	BookID string `form:"bookId"`
	UserID string `form:"userId"`
	Stars  int    `form:"stars"`
}

// ReviewResponse is the API representation of a review
type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"bookId"`
	UserID    uuid.UUID `json:"userId"`
	Stars     int       `json:"stars"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToReviewResponse converts a domain review to its API representation
func ToReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		BookID:    r.BookID,
		UserID:    r.UserID,
		Stars:     r.Stars,
		Title:     r.Title,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ToReviewResponses converts a slice of domain reviews
func ToReviewResponses(reviews []review.Review) []ReviewResponse {
	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = ToReviewResponse(&reviews[i])
	}
	return responses
}
