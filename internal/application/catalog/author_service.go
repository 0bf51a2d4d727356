package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/catalog"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// AuthorService handles author operations
type AuthorService struct {
	authorRepo catalog.AuthorRepository
}

// NewAuthorService creates a new AuthorService
func NewAuthorService(authorRepo catalog.AuthorRepository) *AuthorService {
	return &AuthorService{authorRepo: authorRepo}
}

// Create creates a new author
func (s *AuthorService) Create(ctx context.Context, req CreateAuthorRequest) (*AuthorResponse, error) {
	author, err := catalog.NewAuthor(req.Name, req.Biography)
	if err != nil {
		return nil, err
	}

	if err := s.authorRepo.Save(ctx, author); err != nil {
		return nil, err
	}

	response := ToAuthorResponse(author)
	return &response, nil
}

// GetByID retrieves an author by ID
func (s *AuthorService) GetByID(ctx context.Context, authorID uuid.UUID) (*AuthorResponse, error) {
	author, err := s.authorRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	response := ToAuthorResponse(author)
	return &response, nil
}

// List retrieves authors with filtering and pagination
func (s *AuthorService) List(ctx context.Context, filter shared.Filter) ([]AuthorResponse, int64, error) {
	filter.Normalize()

	authors, err := s.authorRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.authorRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToAuthorResponses(authors), total, nil
}

// Update updates an author
func (s *AuthorService) Update(ctx context.Context, authorID uuid.UUID, req UpdateAuthorRequest) (*AuthorResponse, error) {
	author, err := s.authorRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	name := author.Name
	biography := author.Biography
	if req.Name != nil {
		name = *req.Name
	}
	if req.Biography != nil {
		biography = *req.Biography
	}

	if err := author.Update(name, biography); err != nil {
		return nil, err
	}

	if err := s.authorRepo.Save(ctx, author); err != nil {
		return nil, err
	}

	response := ToAuthorResponse(author)
	return &response, nil
}

// Activate re-enables an author
func (s *AuthorService) Activate(ctx context.Context, authorID uuid.UUID) (*AuthorResponse, error) {
	author, err := s.authorRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if err := author.Activate(); err != nil {
		return nil, err
	}

	if err := s.authorRepo.Save(ctx, author); err != nil {
		return nil, err
	}

	response := ToAuthorResponse(author)
	return &response, nil
}

// Deactivate soft-disables an author
func (s *AuthorService) Deactivate(ctx context.Context, authorID uuid.UUID) (*AuthorResponse, error) {
	author, err := s.authorRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if err := author.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.authorRepo.Save(ctx, author); err != nil {
		return nil, err
	}

	response := ToAuthorResponse(author)
	return &response, nil
}
