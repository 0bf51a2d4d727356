package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/identity"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/auth"
)

// RegisterRequest represents a new customer registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=200"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	FullName string `json:"fullName" binding:"required,min=1,max=255"`
	Phone    string `json:"phone" binding:"max=20"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ChangePasswordRequest changes the caller's password
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=128"`
}

// UpdateProfileRequest updates the caller's profile
type UpdateProfileRequest struct {
	FullName string `json:"fullName" binding:"required,min=1,max=255"`
	Phone    string `json:"phone" binding:"max=20"`
}

// UserListFilter represents filter options for the admin user list
type UserListFilter struct {
	Search string `form:"search"`
	Role   string `form:"role" binding:"omitempty,oneof=customer admin"`
	Status string `form:"status" binding:"omitempty,oneof=active locked disabled"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Take   int    `form:"take" binding:"omitempty,min=1,max=50"`
	SortBy string `form:"sortBy"`
	Order  string `form:"order" binding:"omitempty,oneof=ASC DESC"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	Phone       string     `json:"phone"`
	AvatarURL   string     `json:"avatarUrl"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// LoginResponse carries the token pair and the authenticated user
type LoginResponse struct {
	User   UserResponse    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Phone:       u.Phone,
		AvatarURL:   u.AvatarURL,
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToUserResponses converts a slice of domain Users
func ToUserResponses(users []identity.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
