package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/config"
)

func minioTestConfig(mutate ...func(*config.StorageConfig)) *config.StorageConfig {
	cfg := &config.StorageConfig{
		Bucket:          "booknow-covers",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		Region:          "ap-southeast-1",
		Endpoint:        "http://localhost:9000",
		UsePathStyle:    true,
		PresignExpiry:   15 * time.Minute,
	}
	for _, m := range mutate {
		m(cfg)
	}
	return cfg
}

func TestNewS3ObjectStorage(t *testing.T) {
	t.Run("rejects incomplete config", func(t *testing.T) {
		for _, tc := range []struct {
			name    string
			cfg     *config.StorageConfig
			wantErr string
		}{
			{"nil config", nil, "configuration is required"},
			{"no bucket", minioTestConfig(func(c *config.StorageConfig) { c.Bucket = "" }), "bucket is required"},
			{"no access key", minioTestConfig(func(c *config.StorageConfig) { c.AccessKeyID = "" }), "access key is required"},
			{"no secret key", minioTestConfig(func(c *config.StorageConfig) { c.SecretAccessKey = "" }), "secret key is required"},
		} {
			t.Run(tc.name, func(t *testing.T) {
				_, err := NewS3ObjectStorage(tc.cfg)
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			})
		}
	})

	t.Run("complete config builds a client", func(t *testing.T) {
		s, err := NewS3ObjectStorage(minioTestConfig())
		require.NoError(t, err)
		assert.Equal(t, "booknow-covers", s.GetBucket())
		assert.Equal(t, 15*time.Minute, s.presignExpiry)
	})

	t.Run("region and scheme defaults apply", func(t *testing.T) {
		s, err := NewS3ObjectStorage(minioTestConfig(func(c *config.StorageConfig) {
			c.Region = ""
			c.Endpoint = "storage.booknow.vn" // no scheme
		}))
		require.NoError(t, err)
		require.NotNil(t, s)
	})

	t.Run("zero presign expiry falls back to the default", func(t *testing.T) {
		s, err := NewS3ObjectStorage(minioTestConfig(func(c *config.StorageConfig) {
			c.PresignExpiry = 0
		}))
		require.NoError(t, err)
		assert.Equal(t, defaultPresignExpiry, s.presignExpiry)
	})

	t.Run("options override logger and expiry", func(t *testing.T) {
		s, err := NewS3ObjectStorage(minioTestConfig(),
			WithLogger(zaptest.NewLogger(t)),
			WithPresignExpiration(time.Hour),
		)
		require.NoError(t, err)
		assert.NotNil(t, s.logger)
		assert.Equal(t, time.Hour, s.presignExpiry)
	})
}

func TestS3ObjectStorage_PresignedURLs(t *testing.T) {
	ctx := context.Background()
	s, err := NewS3ObjectStorage(minioTestConfig())
	require.NoError(t, err)

	t.Run("upload URL targets the bucket and key", func(t *testing.T) {
		url, expiresAt, err := s.GenerateUploadURL(ctx, "covers/book-1/original.jpg", "image/jpeg", 15*time.Minute)
		require.NoError(t, err)

		assert.Contains(t, url, "localhost:9000")
		assert.Contains(t, url, "booknow-covers")
		assert.True(t, expiresAt.After(time.Now()))
		assert.True(t, expiresAt.Before(time.Now().Add(16*time.Minute)))
	})

	t.Run("download URL targets the bucket", func(t *testing.T) {
		url, expiresAt, err := s.GenerateDownloadURL(ctx, "covers/book-1/original.jpg", time.Hour)
		require.NoError(t, err)

		assert.Contains(t, url, "localhost:9000")
		assert.Contains(t, url, "booknow-covers")
		assert.True(t, expiresAt.After(time.Now()))
	})

	t.Run("zero expiry uses the configured default", func(t *testing.T) {
		_, uploadExpiry, err := s.GenerateUploadURL(ctx, "covers/k.jpg", "image/jpeg", 0)
		require.NoError(t, err)
		assert.True(t, uploadExpiry.After(time.Now()))

		_, downloadExpiry, err := s.GenerateDownloadURL(ctx, "covers/k.jpg", 0)
		require.NoError(t, err)
		assert.True(t, downloadExpiry.After(time.Now()))
	})

	t.Run("empty key is rejected without calling S3", func(t *testing.T) {
		_, _, err := s.GenerateUploadURL(ctx, "", "image/jpeg", time.Minute)
		assert.ErrorIs(t, err, errEmptyStorageKey)

		_, _, err = s.GenerateDownloadURL(ctx, "", time.Minute)
		assert.ErrorIs(t, err, errEmptyStorageKey)

		assert.ErrorIs(t, s.DeleteObject(ctx, ""), errEmptyStorageKey)

		exists, err := s.ObjectExists(ctx, "")
		assert.ErrorIs(t, err, errEmptyStorageKey)
		assert.False(t, exists)
	})
}
