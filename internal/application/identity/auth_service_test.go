package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/identity"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/auth"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/infrastructure/config"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockWelcomeMailer is a mock implementation of WelcomeMailer
type MockWelcomeMailer struct {
	mock.Mock
}

func (m *MockWelcomeMailer) SendWelcome(ctx context.Context, email, fullName string) error {
	args := m.Called(ctx, email, fullName)
	return args.Error(0)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-32-chars-long!!",
		RefreshSecret:          "test-refresh-secret-32-chars-long!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "booknow-test",
		MaxRefreshCount:        10,
	})
}

func newTestAuthService(userRepo *MockUserRepository, mailer WelcomeMailer) (*AuthService, *auth.InMemoryTokenBlacklist) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	service := NewAuthService(
		userRepo,
		newTestJWTService(),
		blacklist,
		mailer,
		DefaultAuthServiceConfig(),
		zap.NewNop(),
	)
	return service, blacklist
}

func mustNewUser(t *testing.T, email, password, fullName string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(email, password, fullName)
	require.NoError(t, err)
	return user
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a customer and sends welcome mail", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		mailer := new(MockWelcomeMailer)
		service, _ := newTestAuthService(userRepo, mailer)

		userRepo.On("ExistsByEmail", ctx, "reader@booknow.vn").Return(false, nil)
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)
		mailer.On("SendWelcome", ctx, "reader@booknow.vn", "Linh Tran").Return(nil)

		resp, err := service.Register(ctx, RegisterRequest{
			Email:    "Reader@BookNow.vn",
			Password: "sup3rSecret",
			FullName: "Linh Tran",
		})

		require.NoError(t, err)
		assert.Equal(t, "reader@booknow.vn", resp.Email)
		assert.Equal(t, "customer", resp.Role)
		mailer.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service, _ := newTestAuthService(userRepo, nil)

		userRepo.On("ExistsByEmail", ctx, "reader@booknow.vn").Return(true, nil)

		_, err := service.Register(ctx, RegisterRequest{
			Email:    "reader@booknow.vn",
			Password: "sup3rSecret",
			FullName: "Linh Tran",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("mail failure does not fail registration", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		mailer := new(MockWelcomeMailer)
		service, _ := newTestAuthService(userRepo, mailer)

		userRepo.On("ExistsByEmail", ctx, "reader@booknow.vn").Return(false, nil)
		userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)
		mailer.On("SendWelcome", ctx, "reader@booknow.vn", "Linh Tran").
			Return(assert.AnError)

		_, err := service.Register(ctx, RegisterRequest{
			Email:    "reader@booknow.vn",
			Password: "sup3rSecret",
			FullName: "Linh Tran",
		})

		assert.NoError(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("returns tokens on success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service, _ := newTestAuthService(userRepo, nil)
		user := mustNewUser(t, "reader@booknow.vn", "sup3rSecret", "Linh Tran")

		userRepo.On("FindByEmail", ctx, "reader@booknow.vn").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		resp, err := service.Login(ctx, LoginRequest{
			Email:    "reader@booknow.vn",
			Password: "sup3rSecret",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
		assert.NotEmpty(t, resp.Tokens.RefreshToken)
		assert.Equal(t, "reader@booknow.vn", resp.User.Email)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("unknown email yields invalid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service, _ := newTestAuthService(userRepo, nil)

		userRepo.On("FindByEmail", ctx, "ghost@booknow.vn").Return(nil, shared.ErrNotFound)

		_, err := service.Login(ctx, LoginRequest{Email: "ghost@booknow.vn", Password: "whatever1"})
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	})

	t.Run("wrong password increments failure counter", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service, _ := newTestAuthService(userRepo, nil)
		user := mustNewUser(t, "reader@booknow.vn", "sup3rSecret", "Linh Tran")

		userRepo.On("FindByEmail", ctx, "reader@booknow.vn").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		_, err := service.Login(ctx, LoginRequest{Email: "reader@booknow.vn", Password: "wrongpass1"})

		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
		assert.Equal(t, 1, user.FailedAttempts)
	})

	t.Run("locks account after max failed attempts", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service, _ := newTestAuthService(userRepo, nil)
		user := mustNewUser(t, "reader@booknow.vn", "sup3rSecret", "Linh Tran")
		user.FailedAttempts = DefaultAuthServiceConfig().MaxLoginAttempts - 1

		userRepo.On("FindByEmail", ctx, "reader@booknow.vn").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		_, err := service.Login(ctx, LoginRequest{Email: "reader@booknow.vn", Password: "wrongpass1"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
		assert.True(t, user.IsLocked())
	})

	t.Run("locked account cannot log in", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service, _ := newTestAuthService(userRepo, nil)
		user := mustNewUser(t, "reader@booknow.vn", "sup3rSecret", "Linh Tran")
		user.RecordLoginFailure(1, time.Hour)

		userRepo.On("FindByEmail", ctx, "reader@booknow.vn").Return(user, nil)

		_, err := service.Login(ctx, LoginRequest{Email: "reader@booknow.vn", Password: "sup3rSecret"})
		assert.ErrorIs(t, err, shared.ErrAccountLocked)
	})

	t.Run("disabled account cannot log in", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service, _ := newTestAuthService(userRepo, nil)
		user := mustNewUser(t, "reader@booknow.vn", "sup3rSecret", "Linh Tran")
		require.NoError(t, user.Disable())

		userRepo.On("FindByEmail", ctx, "reader@booknow.vn").Return(user, nil)

		_, err := service.Login(ctx, LoginRequest{Email: "reader@booknow.vn", Password: "sup3rSecret"})
		assert.ErrorIs(t, err, shared.ErrAccountDisabled)
	})

	t.Run("expired lock clears on successful login", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service, _ := newTestAuthService(userRepo, nil)
		user := mustNewUser(t, "reader@booknow.vn", "sup3rSecret", "Linh Tran")
		user.RecordLoginFailure(1, -time.Minute) // lock already expired

		userRepo.On("FindByEmail", ctx, "reader@booknow.vn").Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		resp, err := service.Login(ctx, LoginRequest{Email: "reader@booknow.vn", Password: "sup3rSecret"})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
		assert.Equal(t, identity.UserStatusActive, user.Status)
		assert.Equal(t, 0, user.FailedAttempts)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a new pair", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service, _ := newTestAuthService(userRepo, nil)
		user := mustNewUser(t, "reader@booknow.vn", "sup3rSecret", "Linh Tran")

		pair, err := service.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: user.ID,
			Email:  user.Email,
			Role:   string(user.Role),
		})
		require.NoError(t, err)

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		newPair, err := service.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})

		require.NoError(t, err)
		assert.NotEmpty(t, newPair.AccessToken)
		assert.NotEmpty(t, newPair.RefreshToken)
	})

	t.Run("rejects a blacklisted refresh token", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service, blacklist := newTestAuthService(userRepo, nil)
		user := mustNewUser(t, "reader@booknow.vn", "sup3rSecret", "Linh Tran")

		pair, err := service.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: user.ID,
			Email:  user.Email,
			Role:   string(user.Role),
		})
		require.NoError(t, err)

		claims, err := service.jwtService.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		require.NoError(t, blacklist.AddToBlacklist(ctx, claims.ID, time.Hour))

		_, err = service.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})
		assert.ErrorIs(t, err, auth.ErrTokenBlacklisted)
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service, _ := newTestAuthService(userRepo, nil)

		_, err := service.Refresh(ctx, RefreshRequest{RefreshToken: "not-a-jwt"})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TOKEN", domainErr.Code)
	})

	t.Run("disabled account cannot refresh", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service, _ := newTestAuthService(userRepo, nil)
		user := mustNewUser(t, "reader@booknow.vn", "sup3rSecret", "Linh Tran")

		pair, err := service.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: user.ID,
			Email:  user.Email,
			Role:   string(user.Role),
		})
		require.NoError(t, err)
		require.NoError(t, user.Disable())

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		_, err = service.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})
		assert.ErrorIs(t, err, shared.ErrAccountDisabled)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklists both tokens", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service, _ := newTestAuthService(userRepo, nil)
		user := mustNewUser(t, "reader@booknow.vn", "sup3rSecret", "Linh Tran")

		pair, err := service.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: user.ID,
			Email:  user.Email,
			Role:   string(user.Role),
		})
		require.NoError(t, err)

		require.NoError(t, service.Logout(ctx, pair.AccessToken, pair.RefreshToken))

		_, err = service.CheckToken(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, auth.ErrTokenBlacklisted)

		_, err = service.Refresh(ctx, RefreshRequest{RefreshToken: pair.RefreshToken})
		assert.ErrorIs(t, err, auth.ErrTokenBlacklisted)
	})

	t.Run("garbage tokens are ignored", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service, _ := newTestAuthService(userRepo, nil)

		assert.NoError(t, service.Logout(ctx, "garbage", "garbage"))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes password and revokes sessions", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service, _ := newTestAuthService(userRepo, nil)
		user := mustNewUser(t, "reader@booknow.vn", "sup3rSecret", "Linh Tran")

		pair, err := service.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: user.ID,
			Email:  user.Email,
			Role:   string(user.Role),
		})
		require.NoError(t, err)

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		err = service.ChangePassword(ctx, user.ID.String(), ChangePasswordRequest{
			OldPassword: "sup3rSecret",
			NewPassword: "brandNewPass9",
		})

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("brandNewPass9"))

		// Tokens issued before the change are invalidated
		_, err = service.CheckToken(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, auth.ErrTokenBlacklisted)
	})

	t.Run("wrong current password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service, _ := newTestAuthService(userRepo, nil)
		user := mustNewUser(t, "reader@booknow.vn", "sup3rSecret", "Linh Tran")

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		err := service.ChangePassword(ctx, user.ID.String(), ChangePasswordRequest{
			OldPassword: "wrongOld1",
			NewPassword: "brandNewPass9",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PASSWORD", domainErr.Code)
	})
}
