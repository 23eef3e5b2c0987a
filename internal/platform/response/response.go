// Package response writes JSON payloads and maps typed errors to HTTP statuses.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
)

// RequestIDKey is the gin context key holding the request ID.
const RequestIDKey = "request_id"

// APIError is the JSON body returned for every failed request.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// PaginatedBody wraps a page of items.
type PaginatedBody struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// Success writes data with 200 OK.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created writes data with 201 Created.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// Paginated writes a page of items with 200 OK.
func Paginated(c *gin.Context, items any, total int64, page, limit int) {
	c.JSON(http.StatusOK, PaginatedBody{Items: items, Total: total, Page: page, Limit: limit})
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, "bad_request", message)
}

// Error maps err to a status code and writes it.
func Error(c *gin.Context, err error) {
	status, code := StatusFor(err)
	abort(c, status, code, err.Error())
}

// StatusFor returns the HTTP status and error code for err.
func StatusFor(err error) (int, string) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		return http.StatusNotFound, "not_found"
	case apperr.KindUpstream:
		return http.StatusBadRequest, "upstream_error"
	case apperr.KindPayment:
		return http.StatusBadRequest, "payment_error"
	case apperr.KindInvalidArgument, apperr.KindValidation:
		return http.StatusBadRequest, "bad_request"
	case apperr.KindConflict:
		return http.StatusConflict, "conflict"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: c.GetString(RequestIDKey),
	})
}
