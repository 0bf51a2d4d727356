package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/partner"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByName(ctx context.Context, name string) (*partner.Supplier, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func mustNewSupplier(t *testing.T, name string) *partner.Supplier {
	t.Helper()
	supplier, err := partner.NewSupplier(name, "sales@nxbtre.vn", "02839316289", "161B Ly Chinh Thang, HCMC")
	require.NoError(t, err)
	return supplier
}

func TestSupplierService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		service := NewSupplierService(repo)

		repo.On("ExistsByName", ctx, "NXB Tre").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Supplier")).Return(nil)

		resp, err := service.Create(ctx, CreateSupplierRequest{
			Name:  "NXB Tre",
			Email: "sales@nxbtre.vn",
		})

		require.NoError(t, err)
		assert.Equal(t, "NXB Tre", resp.Name)
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		service := NewSupplierService(repo)

		repo.On("ExistsByName", ctx, "NXB Tre").Return(true, nil)

		_, err := service.Create(ctx, CreateSupplierRequest{Name: "NXB Tre"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("name is trimmed before the uniqueness check", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		service := NewSupplierService(repo)

		repo.On("ExistsByName", ctx, "Kim Dong").Return(false, nil)
		repo.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := service.Create(ctx, CreateSupplierRequest{Name: "  Kim Dong  "})

		require.NoError(t, err)
		assert.Equal(t, "Kim Dong", resp.Name)
	})
}

func TestSupplierService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("keeping the same name skips the uniqueness check", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		service := NewSupplierService(repo)
		supplier := mustNewSupplier(t, "NXB Tre")

		repo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
		repo.On("Save", ctx, supplier).Return(nil)

		resp, err := service.Update(ctx, supplier.ID, UpdateSupplierRequest{
			Name:  "NXB Tre",
			Phone: "02839316290",
		})

		require.NoError(t, err)
		assert.Equal(t, "02839316290", resp.Phone)
		repo.AssertNotCalled(t, "ExistsByName")
	})

	t.Run("renaming onto an existing supplier is rejected", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		service := NewSupplierService(repo)
		supplier := mustNewSupplier(t, "NXB Tre")

		repo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
		repo.On("ExistsByName", ctx, "Kim Dong").Return(true, nil)

		_, err := service.Update(ctx, supplier.ID, UpdateSupplierRequest{Name: "Kim Dong"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestSupplierService_Deactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("soft-disables the supplier", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		service := NewSupplierService(repo)
		supplier := mustNewSupplier(t, "NXB Tre")

		repo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
		repo.On("Save", ctx, supplier).Return(nil)

		resp, err := service.Deactivate(ctx, supplier.ID)

		require.NoError(t, err)
		assert.Equal(t, "inactive", resp.Status)
	})

	t.Run("already inactive", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		service := NewSupplierService(repo)
		supplier := mustNewSupplier(t, "NXB Tre")
		require.NoError(t, supplier.Deactivate())

		repo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)

		_, err := service.Deactivate(ctx, supplier.ID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_INACTIVE", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})
}
