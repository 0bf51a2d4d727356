package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/interfaces/http/dto"
	"github.com/Lmt310104/BookNow-BE-sub000/internal/interfaces/http/middleware"
)

// RequestIDKey is the gin context key carrying the request ID.
const RequestIDKey = "X-Request-ID"

// BaseHandler supplies the response envelope helpers every concrete
// handler embeds.
type BaseHandler struct{}

// getRequestID prefers the ID set by the middleware, falling back to
// the inbound header.
func getRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDKey)
}

// getUserID parses the authenticated user's UUID out of the JWT claims.
func getUserID(c *gin.Context) (uuid.UUID, error) {
	raw := middleware.GetJWTUserID(c)
	if raw == "" {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	return uuid.Parse(raw)
}

func isAdmin(c *gin.Context) bool {
	return middleware.IsAdmin(c)
}

// Success writes a 200 with the standard envelope.
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, data))
}

// Paginated writes a 200 with pagination meta alongside the data.
func (h *BaseHandler) Paginated(c *gin.Context, data any, total int64, page, take int) {
	c.JSON(http.StatusOK, dto.NewPaginatedResponse(data, total, page, take))
}

// Created writes a 201 with the standard envelope.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(http.StatusCreated, data))
}

// NoContent writes an empty 204.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes an error envelope with an explicit status code.
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(statusCode, code, message, getRequestID(c)))
}

func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// BindingError writes a 400 for a request bind failure, flattening
// validator errors into per-field messages.
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	h.BadRequest(c, middleware.FormatBindingError(err))
}

func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, "NOT_FOUND", message)
}

func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func (h *BaseHandler) Forbidden(c *gin.Context, message string) {
	h.Error(c, http.StatusForbidden, "FORBIDDEN", message)
}

// HandleError maps domain errors onto HTTP responses through their
// error codes. Anything that is not a DomainError becomes a generic
// 500 so internals never leak to clients.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		h.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
		return
	}

	status := dto.HTTPStatusForCode(domainErr.Code)
	c.JSON(status, dto.NewErrorResponse(status, domainErr.Code, domainErr.Message, getRequestID(c)))
}
