// Package storage provides object storage implementations for file operations.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/catalog"
)

var errEmptyStorageKey = errors.New("storage key is required")

// StubObjectStorage stands in for S3 when no bucket is configured. URLs
// it hands out point nowhere; ObjectExists always says yes so the cover
// upload confirmation flow can be exercised in development.
type StubObjectStorage struct {
	BaseURL string
}

var _ catalogapp.ObjectStorageService = (*StubObjectStorage)(nil)

func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{BaseURL: "https://storage.example.com"}
}

func (s *StubObjectStorage) GenerateUploadURL(_ context.Context, storageKey, _ string, expiresIn time.Duration) (string, time.Time, error) {
	return s.fakeURL("upload", storageKey, expiresIn)
}

func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	return s.fakeURL("download", storageKey, expiresIn)
}

func (s *StubObjectStorage) fakeURL(op, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errEmptyStorageKey
	}
	expiresAt := time.Now().Add(expiresIn)
	url := fmt.Sprintf("%s/%s/%s?expires=%s", s.BaseURL, op, storageKey, expiresAt.Format(time.RFC3339))
	return url, expiresAt, nil
}

func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errEmptyStorageKey
	}
	return nil
}

func (s *StubObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errEmptyStorageKey
	}
	return true, nil
}
