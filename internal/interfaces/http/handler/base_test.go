package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/interfaces/http/dto"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestCtx builds a gin context with an attached GET request.
func newTestCtx(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

// setJWTContext simulates an authenticated request without minting a
// real token.
func setJWTContext(c *gin.Context, userID uuid.UUID, role string) {
	c.Set(middleware.JWTUserIDKey, userID.String())
	c.Set(middleware.JWTRoleKey, role)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	t.Run("from context", func(t *testing.T) {
		c, _ := newTestCtx(t)
		c.Set(RequestIDKey, "ctx-request-id")
		assert.Equal(t, "ctx-request-id", getRequestID(c))
	})

	t.Run("falls back to the header", func(t *testing.T) {
		c, _ := newTestCtx(t)
		c.Request.Header.Set(RequestIDKey, "header-request-id")
		assert.Equal(t, "header-request-id", getRequestID(c))
	})

	t.Run("context wins over the header", func(t *testing.T) {
		c, _ := newTestCtx(t)
		c.Set(RequestIDKey, "ctx-id")
		c.Request.Header.Set(RequestIDKey, "header-id")
		assert.Equal(t, "ctx-id", getRequestID(c))
	})

	t.Run("empty when absent", func(t *testing.T) {
		c, _ := newTestCtx(t)
		assert.Empty(t, getRequestID(c))
	})
}

func TestGetUserID(t *testing.T) {
	t.Run("parses the claim", func(t *testing.T) {
		c, _ := newTestCtx(t)
		want := uuid.New()
		setJWTContext(c, want, middleware.RoleCustomer)

		got, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("errors without authentication", func(t *testing.T) {
		c, _ := newTestCtx(t)
		_, err := getUserID(c)
		assert.Error(t, err)
	})
}

func TestIsAdmin(t *testing.T) {
	c, _ := newTestCtx(t)
	assert.False(t, isAdmin(c))

	setJWTContext(c, uuid.New(), middleware.RoleAdmin)
	assert.True(t, isAdmin(c))
}

func TestBaseHandlerResponses(t *testing.T) {
	h := &BaseHandler{}

	t.Run("Success", func(t *testing.T) {
		c, w := newTestCtx(t)
		h.Success(c, map[string]string{"key": "value"})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Success", resp.Message)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Created", func(t *testing.T) {
		c, w := newTestCtx(t)
		h.Created(c, map[string]string{"id": "123"})

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("Paginated", func(t *testing.T) {
		c, w := newTestCtx(t)
		h.Paginated(c, []string{"item1", "item2"}, 100, 1, 10)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.PaginatedResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(100), resp.Meta.ItemCount)
		assert.Equal(t, 10, resp.Meta.PageCount)
		assert.True(t, resp.Meta.HasNextPage)
	})

	t.Run("NoContent", func(t *testing.T) {
		router := gin.New()
		router.DELETE("/carts/items/1", func(c *gin.Context) {
			h.NoContent(c)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/carts/items/1", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})
}

func TestBaseHandlerErrorHelpers(t *testing.T) {
	h := &BaseHandler{}

	cases := []struct {
		code   string
		status int
		send   func(*gin.Context)
	}{
		{"BAD_REQUEST", http.StatusBadRequest, func(c *gin.Context) { h.BadRequest(c, "Invalid request") }},
		{"NOT_FOUND", http.StatusNotFound, func(c *gin.Context) { h.NotFound(c, "Resource not found") }},
		{"UNAUTHORIZED", http.StatusUnauthorized, func(c *gin.Context) { h.Unauthorized(c, "Not authenticated") }},
		{"FORBIDDEN", http.StatusForbidden, func(c *gin.Context) { h.Forbidden(c, "Access denied") }},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			c, w := newTestCtx(t)
			tc.send(c)

			assert.Equal(t, tc.status, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tc.code, resp.Code)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}

	t.Run("request ID is echoed back", func(t *testing.T) {
		c, w := newTestCtx(t)
		c.Set(RequestIDKey, "test-request-123")

		h.BadRequest(c, "Invalid request")

		assert.Equal(t, "test-request-123", decodeError(t, w).RequestID)
	})
}

func TestBaseHandlerHandleError(t *testing.T) {
	h := &BaseHandler{}

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestCtx(t)
		h.HandleError(c, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})

	t.Run("domain errors map to their status codes", func(t *testing.T) {
		cases := []struct {
			err    error
			status int
			code   string
		}{
			{shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
			{shared.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
			{shared.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
			{shared.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
			{shared.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
			{shared.ErrInvalidState, http.StatusUnprocessableEntity, "INVALID_STATE"},
			{shared.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
			{shared.ErrAccountLocked, http.StatusForbidden, "ACCOUNT_LOCKED"},
			{shared.ErrAccountDisabled, http.StatusForbidden, "ACCOUNT_DISABLED"},
			{shared.ErrEmptyCart, http.StatusBadRequest, "EMPTY_CART"},
		}

		for _, tc := range cases {
			t.Run(tc.code, func(t *testing.T) {
				c, w := newTestCtx(t)
				h.HandleError(c, tc.err)

				assert.Equal(t, tc.status, w.Code)
				assert.Equal(t, tc.code, decodeError(t, w).Code)
			})
		}
	})

	t.Run("unknown errors become a generic 500", func(t *testing.T) {
		c, w := newTestCtx(t)
		h.HandleError(c, assert.AnError)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, "INTERNAL_ERROR", resp.Code)
		assert.Equal(t, "An unexpected error occurred", resp.Message)
	})

	t.Run("wrapped domain errors still map", func(t *testing.T) {
		c, w := newTestCtx(t)
		h.HandleError(c, fmt.Errorf("loading book: %w", shared.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, w).Code)
	})
}
