package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/catalog"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// AllowedCoverContentTypes whitelists the content types accepted for
// book cover uploads. SVG is excluded because it can carry scripts.
var AllowedCoverContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ObjectStorageService defines the interface for object storage
// operations, implemented by the infrastructure layer (S3-compatible).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file.
	// Returns the upload URL and its expiration time.
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file.
	// Returns the download URL and its expiration time.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// CoverServiceConfig holds configuration for the cover service
type CoverServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
	MaxCoversPerBook  int
}

// DefaultCoverServiceConfig returns the default configuration
func DefaultCoverServiceConfig() CoverServiceConfig {
	return CoverServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 1 * time.Hour,
		MaxCoversPerBook:  10,
	}
}

// RequestCoverUploadRequest asks for a presigned cover upload URL
type RequestCoverUploadRequest struct {
	FileName    string `json:"fileName" binding:"required,min=1,max=255"`
	ContentType string `json:"contentType" binding:"required"`
}

// CoverUploadResponse carries the presigned upload URL and the storage
// key the client must confirm after uploading.
type CoverUploadResponse struct {
	UploadURL  string    `json:"uploadUrl"`
	StorageKey string    `json:"storageKey"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// ConfirmCoverRequest attaches an uploaded cover to a book
type ConfirmCoverRequest struct {
	StorageKey string `json:"storageKey" binding:"required"`
}

// CoverService manages book cover images stored in object storage
type CoverService struct {
	bookRepo       catalog.BookRepository
	storageService ObjectStorageService
	config         CoverServiceConfig
}

// NewCoverService creates a new CoverService
func NewCoverService(bookRepo catalog.BookRepository, storageService ObjectStorageService) *CoverService {
	return &CoverService{
		bookRepo:       bookRepo,
		storageService: storageService,
		config:         DefaultCoverServiceConfig(),
	}
}

// RequestUpload validates the file and returns a presigned upload URL.
// The storage key embeds the book ID and a fresh UUID so concurrent
// uploads never collide.
func (s *CoverService) RequestUpload(ctx context.Context, bookID uuid.UUID, req RequestCoverUploadRequest) (*CoverUploadResponse, error) {
	if !AllowedCoverContentTypes[strings.ToLower(req.ContentType)] {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Cover must be a JPEG, PNG, GIF or WebP image")
	}

	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if len(book.CoverURLs) >= s.config.MaxCoversPerBook {
		return nil, shared.NewDomainError("TOO_MANY_COVERS", "Book already has the maximum number of covers")
	}

	ext := strings.ToLower(filepath.Ext(req.FileName))
	storageKey := fmt.Sprintf("covers/%s/%s%s", bookID, uuid.New(), ext)

	uploadURL, expiresAt, err := s.storageService.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	return &CoverUploadResponse{
		UploadURL:  uploadURL,
		StorageKey: storageKey,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmUpload verifies the object landed in storage and records the
// cover on the book.
func (s *CoverService) ConfirmUpload(ctx context.Context, bookID uuid.UUID, req ConfirmCoverRequest) (*BookResponse, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	expectedPrefix := fmt.Sprintf("covers/%s/", bookID)
	if !strings.HasPrefix(req.StorageKey, expectedPrefix) {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key does not belong to this book")
	}

	exists, err := s.storageService.ObjectExists(ctx, req.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check uploaded cover: %w", err)
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "No uploaded file found for this storage key")
	}

	book.SetCoverURLs(append(book.CoverURLs, req.StorageKey))
	if err := s.bookRepo.Save(ctx, book); err != nil {
		return nil, err
	}

	response := ToBookResponse(book)
	return &response, nil
}

// DownloadURL returns a presigned download URL for a stored cover
func (s *CoverService) DownloadURL(ctx context.Context, bookID uuid.UUID, storageKey string) (string, time.Time, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return "", time.Time{}, err
	}

	found := false
	for _, key := range book.CoverURLs {
		if key == storageKey {
			found = true
			break
		}
	}
	if !found {
		return "", time.Time{}, shared.ErrNotFound
	}

	return s.storageService.GenerateDownloadURL(ctx, storageKey, s.config.DownloadURLExpiry)
}

// RemoveCover detaches a cover from the book and deletes the object
func (s *CoverService) RemoveCover(ctx context.Context, bookID uuid.UUID, storageKey string) error {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return err
	}

	remaining := make([]string, 0, len(book.CoverURLs))
	found := false
	for _, key := range book.CoverURLs {
		if key == storageKey {
			found = true
			continue
		}
		remaining = append(remaining, key)
	}
	if !found {
		return shared.ErrNotFound
	}

	book.SetCoverURLs(remaining)
	if err := s.bookRepo.Save(ctx, book); err != nil {
		return err
	}

	if err := s.storageService.DeleteObject(ctx, storageKey); err != nil {
		// The book no longer references the object; an orphaned object
		// is recoverable while a dangling reference is not.
		return fmt.Errorf("cover detached but object deletion failed: %w", err)
	}

	return nil
}
