package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/partner"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// GormSupplierRepository is the GORM-backed partner.SupplierRepository.
type GormSupplierRepository struct {
	db *gorm.DB
}

func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)

// first loads a single supplier matching the condition, mapping
// gorm.ErrRecordNotFound onto the domain-level shared.ErrNotFound.
func (r *GormSupplierRepository) first(ctx context.Context, cond string, arg any) (*partner.Supplier, error) {
	var supplier partner.Supplier
	err := r.db.WithContext(ctx).First(&supplier, cond, arg).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, shared.ErrNotFound
	case err != nil:
		return nil, err
	}
	return &supplier, nil
}

func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GormSupplierRepository) FindByName(ctx context.Context, name string) (*partner.Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	return r.first(ctx, "name = ?", name)
}

func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	var suppliers []partner.Supplier
	query := paginateSuppliers(r.scoped(ctx, filter), filter)
	if err := query.Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

func (r *GormSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Supplier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.scoped(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSupplierRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&partner.Supplier{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// scoped applies the search and status parts of the filter, without
// pagination, so it is usable for both listing and counting.
func (r *GormSupplierRepository) scoped(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&partner.Supplier{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

func paginateSuppliers(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.Take > 0 {
		query = query.Offset((filter.Page - 1) * filter.Take).Limit(filter.Take)
	}
	column := ValidateSortField(filter.SortBy, SupplierSortFields, "created_at")
	return query.Order(column + " " + ValidateSortOrder(filter.Order))
}
