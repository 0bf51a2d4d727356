package dto

import "net/http"

// Response is the standard success envelope
type Response struct {
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
}

// Meta carries the pagination block of list responses
type Meta struct {
	Page            int   `json:"page"`
	Take            int   `json:"take"`
	ItemCount       int64 `json:"itemCount"`
	PageCount       int   `json:"pageCount"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	HasNextPage     bool  `json:"hasNextPage"`
}

// PaginatedResponse is the list envelope: a data page plus its meta
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Meta       Meta        `json:"meta"`
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
}

// ErrorResponse is the failure envelope
type ErrorResponse struct {
	Message    string `json:"message"`
	Code       string `json:"code,omitempty"`
	StatusCode int    `json:"statusCode"`
	RequestID  string `json:"requestId,omitempty"`
}

// NewSuccessResponse wraps data in the success envelope
func NewSuccessResponse(statusCode int, data interface{}) Response {
	return Response{
		Data:       data,
		Message:    "Success",
		StatusCode: statusCode,
	}
}

// NewPaginatedResponse wraps a data page in the list envelope.
// take must be positive; callers pass the normalized filter values.
func NewPaginatedResponse(data interface{}, total int64, page, take int) PaginatedResponse {
	pageCount := int(total) / take
	if int(total)%take > 0 {
		pageCount++
	}
	return PaginatedResponse{
		Data: data,
		Meta: Meta{
			Page:            page,
			Take:            take,
			ItemCount:       total,
			PageCount:       pageCount,
			HasPreviousPage: page > 1,
			HasNextPage:     page < pageCount,
		},
		Message:    "Success",
		StatusCode: http.StatusOK,
	}
}

// NewErrorResponse builds the failure envelope
func NewErrorResponse(statusCode int, code, message, requestID string) ErrorResponse {
	return ErrorResponse{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		RequestID:  requestID,
	}
}
