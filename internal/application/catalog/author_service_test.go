package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/catalog"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

func mustNewAuthor(t *testing.T, name string) *catalog.Author {
	t.Helper()
	author, err := catalog.NewAuthor(name, "")
	require.NoError(t, err)
	return author
}

func TestAuthorService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an author", func(t *testing.T) {
		authorRepo := new(MockAuthorRepository)
		service := NewAuthorService(authorRepo)

		authorRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Author")).Return(nil)

		resp, err := service.Create(ctx, CreateAuthorRequest{
			Name:      "Ursula K. Le Guin",
			Biography: "American author of speculative fiction.",
		})

		require.NoError(t, err)
		assert.Equal(t, "Ursula K. Le Guin", resp.Name)
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		authorRepo := new(MockAuthorRepository)
		service := NewAuthorService(authorRepo)

		_, err := service.Create(ctx, CreateAuthorRequest{Name: ""})

		assert.Error(t, err)
		authorRepo.AssertNotCalled(t, "Save")
	})
}

func TestAuthorService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		authorRepo := new(MockAuthorRepository)
		service := NewAuthorService(authorRepo)
		author, err := catalog.NewAuthor("Ursula K. Le Guin", "Original biography")
		require.NoError(t, err)

		authorRepo.On("FindByID", ctx, author.ID).Return(author, nil)
		authorRepo.On("Save", ctx, author).Return(nil)

		newName := "U. K. Le Guin"
		resp, err := service.Update(ctx, author.ID, UpdateAuthorRequest{Name: &newName})

		require.NoError(t, err)
		assert.Equal(t, "U. K. Le Guin", resp.Name)
		assert.Equal(t, "Original biography", resp.Biography)
	})

	t.Run("unknown author", func(t *testing.T) {
		authorRepo := new(MockAuthorRepository)
		service := NewAuthorService(authorRepo)
		author := mustNewAuthor(t, "Ursula K. Le Guin")

		authorRepo.On("FindByID", ctx, author.ID).Return(nil, shared.ErrNotFound)

		_, err := service.Update(ctx, author.ID, UpdateAuthorRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestAuthorService_ActivateDeactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivate then activate", func(t *testing.T) {
		authorRepo := new(MockAuthorRepository)
		service := NewAuthorService(authorRepo)
		author := mustNewAuthor(t, "Ursula K. Le Guin")

		authorRepo.On("FindByID", ctx, author.ID).Return(author, nil)
		authorRepo.On("Save", ctx, author).Return(nil)

		resp, err := service.Deactivate(ctx, author.ID)
		require.NoError(t, err)
		assert.Equal(t, "inactive", resp.Status)

		resp, err = service.Activate(ctx, author.ID)
		require.NoError(t, err)
		assert.Equal(t, "active", resp.Status)
	})

	t.Run("activating an active author fails", func(t *testing.T) {
		authorRepo := new(MockAuthorRepository)
		service := NewAuthorService(authorRepo)
		author := mustNewAuthor(t, "Ursula K. Le Guin")

		authorRepo.On("FindByID", ctx, author.ID).Return(author, nil)

		_, err := service.Activate(ctx, author.ID)
		assert.Error(t, err)
		authorRepo.AssertNotCalled(t, "Save")
	})
}
