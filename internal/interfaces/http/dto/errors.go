package dto

import (
	"net/http"
	"strings"
)

// errorCodeStatus maps domain error codes to HTTP statuses. Codes not
// listed here fall through to the INVALID_ prefix rule, then to 500.
var errorCodeStatus = map[string]int{
	// missing resources
	"NOT_FOUND":        http.StatusNotFound,
	"UPLOAD_NOT_FOUND": http.StatusNotFound,

	// duplicates and referential conflicts
	"ALREADY_EXISTS":  http.StatusConflict,
	"CATEGORY_IN_USE": http.StatusConflict,

	// authentication
	"UNAUTHORIZED":         http.StatusUnauthorized,
	"INVALID_CREDENTIALS":  http.StatusUnauthorized,
	"INVALID_TOKEN":        http.StatusUnauthorized,
	"TOKEN_BLACKLISTED":    http.StatusUnauthorized,
	"MAX_REFRESH_EXCEEDED": http.StatusUnauthorized,

	// authorization
	"FORBIDDEN":        http.StatusForbidden,
	"ACCOUNT_LOCKED":   http.StatusForbidden,
	"ACCOUNT_DISABLED": http.StatusForbidden,

	// state machine violations
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"INVALID_TRANSITION": http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":     http.StatusUnprocessableEntity,
	"ALREADY_INACTIVE":   http.StatusUnprocessableEntity,
	"BOOK_INACTIVE":      http.StatusUnprocessableEntity,
	"SUPPLIER_INACTIVE":  http.StatusUnprocessableEntity,
	"TOO_MANY_COVERS":    http.StatusUnprocessableEntity,

	// bad requests
	"EMPTY_CART":  http.StatusBadRequest,
	"BAD_REQUEST": http.StatusBadRequest,

	// degraded integrations
	"CHAT_DISABLED":     http.StatusServiceUnavailable,
	"CHAT_TOKEN_FAILED": http.StatusBadGateway,

	// rate limiting
	"RATE_LIMITED": http.StatusTooManyRequests,

	"INTERNAL_ERROR": http.StatusInternalServerError,
}

// HTTPStatusForCode resolves a domain error code to an HTTP status.
// Validation codes follow the INVALID_ naming convention, so any
// unlisted INVALID_* code is a 400; anything else unknown is a 500.
func HTTPStatusForCode(code string) int {
	if status, ok := errorCodeStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
