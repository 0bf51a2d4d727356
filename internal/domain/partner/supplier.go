package partner

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// SupplierStatus represents the status of a supplier
type SupplierStatus string

const (
	SupplierStatusActive   SupplierStatus = "active"
	SupplierStatusInactive SupplierStatus = "inactive"
)

// Supplier represents a book supplier used by stock receipts
type Supplier struct {
	shared.BaseEntity
	Name    string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Email   string         `gorm:"type:varchar(200)"`
	Phone   string         `gorm:"type:varchar(20)"`
	Address string         `gorm:"type:text"`
	Status  SupplierStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

func checkSupplierName(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	case len(name) > 255:
		return "", shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 255 characters")
	}
	return name, nil
}

// NewSupplier creates a new supplier
func NewSupplier(name, email, phone, address string) (*Supplier, error) {
	name, err := checkSupplierName(name)
	if err != nil {
		return nil, err
	}

	return &Supplier{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      strings.TrimSpace(email),
		Phone:      strings.TrimSpace(phone),
		Address:    address,
		Status:     SupplierStatusActive,
	}, nil
}

// Update updates the supplier's contact information
func (s *Supplier) Update(name, email, phone, address string) error {
	name, err := checkSupplierName(name)
	if err != nil {
		return err
	}

	s.Name = name
	s.Email = strings.TrimSpace(email)
	s.Phone = strings.TrimSpace(phone)
	s.Address = address
	s.UpdatedAt = time.Now()
	return nil
}

func (s *Supplier) transition(to SupplierStatus, code, msg string) error {
	if s.Status == to {
		return shared.NewDomainError(code, msg)
	}
	s.Status = to
	s.UpdatedAt = time.Now()
	return nil
}

// Activate re-enables the supplier
func (s *Supplier) Activate() error {
	return s.transition(SupplierStatusActive, "ALREADY_ACTIVE", "Supplier is already active")
}

// Deactivate soft-disables the supplier. Inactive suppliers keep their
// stock entry history but cannot receive new receipts.
func (s *Supplier) Deactivate() error {
	return s.transition(SupplierStatusInactive, "ALREADY_INACTIVE", "Supplier is already inactive")
}

// IsActive returns true if the supplier is active
func (s *Supplier) IsActive() bool {
	return s.Status == SupplierStatusActive
}

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindByName(ctx context.Context, name string) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	Save(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}
