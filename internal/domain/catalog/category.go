package catalog

import (
	"time"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// CategoryStatus is the lifecycle state of a category.
type CategoryStatus string

const (
	CategoryStatusActive   CategoryStatus = "active"
	CategoryStatusInactive CategoryStatus = "inactive"
)

const maxCategoryNameLen = 100

// Category groups books for browsing. Categories are flat; there is no
// parent hierarchy.
type Category struct {
	shared.BaseEntity
	Name        string         `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string         `gorm:"type:text"`
	Status      CategoryStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

func (Category) TableName() string {
	return "categories"
}

// NewCategory builds an active category with a validated name.
func NewCategory(name, description string) (*Category, error) {
	if err := checkCategoryName(name); err != nil {
		return nil, err
	}
	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		Status:      CategoryStatusActive,
	}, nil
}

// Update replaces the category's name and description.
func (c *Category) Update(name, description string) error {
	if err := checkCategoryName(name); err != nil {
		return err
	}
	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
	return nil
}

// Activate re-enables the category for browsing.
func (c *Category) Activate() error {
	return c.transition(CategoryStatusActive, "ALREADY_ACTIVE", "Category is already active")
}

// Deactivate hides the category without deleting it. Books keep their
// category reference.
func (c *Category) Deactivate() error {
	return c.transition(CategoryStatusInactive, "ALREADY_INACTIVE", "Category is already inactive")
}

func (c *Category) transition(to CategoryStatus, code, msg string) error {
	if c.Status == to {
		return shared.NewDomainError(code, msg)
	}
	c.Status = to
	c.UpdatedAt = time.Now()
	return nil
}

func (c *Category) IsActive() bool {
	return c.Status == CategoryStatusActive
}

func checkCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > maxCategoryNameLen {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
