package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/config"
)

func jwtTestConfig(mutate ...func(*config.JWTConfig)) config.JWTConfig {
	cfg := config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "booknow-test",
		MaxRefreshCount:        10,
	}
	for _, m := range mutate {
		m(&cfg)
	}
	return cfg
}

// sameSecret collapses both signing keys so cross-type validation exercises
// the token_type check rather than failing on the signature.
func sameSecret(cfg *config.JWTConfig) {
	cfg.RefreshSecret = cfg.Secret
}

func customerInput() GenerateTokenInput {
	return GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "reader@booknow.vn",
		Role:   "customer",
	}
}

func TestNewJWTService(t *testing.T) {
	t.Run("carries config into the service", func(t *testing.T) {
		cfg := jwtTestConfig()
		svc := NewJWTService(cfg)

		assert.Equal(t, []byte(cfg.Secret), svc.accessSecret)
		assert.Equal(t, []byte(cfg.RefreshSecret), svc.refreshSecret)
		assert.Equal(t, cfg.AccessTokenExpiration, svc.accessExpiration)
		assert.Equal(t, cfg.RefreshTokenExpiration, svc.refreshExpiration)
		assert.Equal(t, cfg.Issuer, svc.issuer)
		assert.Equal(t, cfg.MaxRefreshCount, svc.maxRefreshCount)
	})

	t.Run("falls back to the access secret for refresh", func(t *testing.T) {
		svc := NewJWTService(jwtTestConfig(func(cfg *config.JWTConfig) {
			cfg.RefreshSecret = ""
		}))
		assert.Equal(t, svc.accessSecret, svc.refreshSecret)
	})
}

func TestGenerateTokenPair(t *testing.T) {
	svc := NewJWTService(jwtTestConfig())
	input := customerInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.AccessTokenExpiresAt.After(time.Now()))
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt),
		"refresh token must outlive the access token")

	access, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, input.UserID.String(), access.UserID)
	assert.Equal(t, input.Email, access.Email)
	assert.Equal(t, input.Role, access.Role)
	assert.Equal(t, TokenTypeAccess, access.TokenType)

	refresh, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, refresh.TokenType)
	assert.Zero(t, refresh.RefreshCount)
	assert.Empty(t, refresh.Email, "refresh tokens carry no email")
}

func TestValidateAccessToken(t *testing.T) {
	t.Run("garbage input", func(t *testing.T) {
		svc := NewJWTService(jwtTestConfig())
		_, err := svc.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		svc := NewJWTService(jwtTestConfig(func(cfg *config.JWTConfig) {
			cfg.AccessTokenExpiration = -time.Hour
		}))
		pair, err := svc.GenerateTokenPair(customerInput())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		minter := NewJWTService(jwtTestConfig())
		pair, err := minter.GenerateTokenPair(customerInput())
		require.NoError(t, err)

		verifier := NewJWTService(jwtTestConfig(func(cfg *config.JWTConfig) {
			cfg.Secret = "a-completely-different-32-char-key"
		}))
		_, err = verifier.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		svc := NewJWTService(jwtTestConfig(sameSecret))
		pair, err := svc.GenerateTokenPair(customerInput())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})
}

func TestValidateRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService(jwtTestConfig(sameSecret))
	pair, err := svc.GenerateTokenPair(customerInput())
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestRefreshTokenPair(t *testing.T) {
	t.Run("rotates both tokens and applies the current role", func(t *testing.T) {
		svc := NewJWTService(jwtTestConfig())
		input := customerInput()
		pair, err := svc.GenerateTokenPair(input)
		require.NoError(t, err)

		rotated, err := svc.RefreshTokenPair(pair.RefreshToken, input.Email, "admin")
		require.NoError(t, err)
		assert.NotEqual(t, pair.AccessToken, rotated.AccessToken)
		assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

		claims, err := svc.ValidateAccessToken(rotated.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Role)
		assert.Equal(t, input.Email, claims.Email)
	})

	t.Run("counts rotations and stops at the limit", func(t *testing.T) {
		svc := NewJWTService(jwtTestConfig(func(cfg *config.JWTConfig) {
			cfg.MaxRefreshCount = 2
		}))
		input := customerInput()
		pair, err := svc.GenerateTokenPair(input)
		require.NoError(t, err)

		for want := 1; want <= 2; want++ {
			pair, err = svc.RefreshTokenPair(pair.RefreshToken, input.Email, input.Role)
			require.NoError(t, err)

			claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
			require.NoError(t, err)
			assert.Equal(t, want, claims.RefreshCount)
		}

		_, err = svc.RefreshTokenPair(pair.RefreshToken, input.Email, input.Role)
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})

	t.Run("rejects garbage and access tokens", func(t *testing.T) {
		svc := NewJWTService(jwtTestConfig(sameSecret))

		_, err := svc.RefreshTokenPair("not-a-token", "", "")
		assert.ErrorIs(t, err, ErrInvalidToken)

		pair, err := svc.GenerateTokenPair(customerInput())
		require.NoError(t, err)
		_, err = svc.RefreshTokenPair(pair.AccessToken, "", "")
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})
}

func TestClaimsHelpers(t *testing.T) {
	t.Run("GetUserUUID round-trips the user ID", func(t *testing.T) {
		svc := NewJWTService(jwtTestConfig())
		input := customerInput()
		pair, err := svc.GenerateTokenPair(input)
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)

		id, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, input.UserID, id)
	})

	t.Run("IsAdmin checks the role claim", func(t *testing.T) {
		assert.True(t, (&Claims{Role: "admin"}).IsAdmin())
		assert.False(t, (&Claims{Role: "customer"}).IsAdmin())
		assert.False(t, (&Claims{}).IsAdmin())
	})

	t.Run("GetRemainingTTL never goes negative", func(t *testing.T) {
		assert.Zero(t, (&Claims{}).GetRemainingTTL())

		svc := NewJWTService(jwtTestConfig())
		pair, err := svc.GenerateTokenPair(customerInput())
		require.NoError(t, err)
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)

		ttl := claims.GetRemainingTTL()
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, 15*time.Minute)
	})
}
