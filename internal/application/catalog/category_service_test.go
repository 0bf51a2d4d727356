package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a category", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := NewCategoryService(categoryRepo)

		categoryRepo.On("FindByName", ctx, "Science Fiction").Return(nil, shared.ErrNotFound)
		categoryRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)

		resp, err := service.Create(ctx, CreateCategoryRequest{Name: "Science Fiction"})

		require.NoError(t, err)
		assert.Equal(t, "Science Fiction", resp.Name)
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := NewCategoryService(categoryRepo)
		existing := mustNewCategory(t, "Science Fiction")

		categoryRepo.On("FindByName", ctx, "Science Fiction").Return(existing, nil)

		_, err := service.Create(ctx, CreateCategoryRequest{Name: "Science Fiction"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an unused category", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := NewCategoryService(categoryRepo)
		categoryID := uuid.New()

		categoryRepo.On("HasBooks", ctx, categoryID).Return(false, nil)
		categoryRepo.On("Delete", ctx, categoryID).Return(nil)

		err := service.Delete(ctx, categoryID)
		require.NoError(t, err)
		categoryRepo.AssertExpectations(t)
	})

	t.Run("refuses to delete a category with books", func(t *testing.T) {
		categoryRepo := new(MockCategoryRepository)
		service := NewCategoryService(categoryRepo)
		categoryID := uuid.New()

		categoryRepo.On("HasBooks", ctx, categoryID).Return(true, nil)

		err := service.Delete(ctx, categoryID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CATEGORY_IN_USE", domainErr.Code)
		categoryRepo.AssertNotCalled(t, "Delete")
	})
}
