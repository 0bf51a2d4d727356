package catalog

import (
	"time"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// AuthorStatus represents the status of an author record
type AuthorStatus string

const (
	AuthorStatusActive   AuthorStatus = "active"
	AuthorStatusInactive AuthorStatus = "inactive"
)

// Author represents a book author
type Author struct {
	shared.BaseEntity
	Name      string       `gorm:"type:varchar(255);not null;index"`
	Biography string       `gorm:"type:text"`
	AvatarURL string       `gorm:"type:varchar(512)"`
	Status    AuthorStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Author) TableName() string {
	return "authors"
}

// NewAuthor creates a new author
func NewAuthor(name, biography string) (*Author, error) {
	if err := validateAuthorName(name); err != nil {
		return nil, err
	}

	return &Author{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Biography:  biography,
		Status:     AuthorStatusActive,
	}, nil
}

// Update updates the author's information
func (a *Author) Update(name, biography string) error {
	if err := validateAuthorName(name); err != nil {
		return err
	}

	a.Name = name
	a.Biography = biography
	a.UpdatedAt = time.Now()

	return nil
}

// Activate re-enables an author record
func (a *Author) Activate() error {
	if a.Status == AuthorStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Author is already active")
	}
	a.Status = AuthorStatusActive
	a.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-disables an author record
func (a *Author) Deactivate() error {
	if a.Status == AuthorStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Author is already inactive")
	}
	a.Status = AuthorStatusInactive
	a.UpdatedAt = time.Now()
	return nil
}

// IsActive returns true if the author is active
func (a *Author) IsActive() bool {
	return a.Status == AuthorStatusActive
}

func validateAuthorName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Author name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Author name cannot exceed 255 characters")
	}
	return nil
}
