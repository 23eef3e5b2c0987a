package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperr.NewNotFoundError("route", ""), http.StatusNotFound},
		{"upstream", apperr.NewUpstreamError("directions", errors.New("x")), http.StatusBadRequest},
		{"payment", apperr.NewPaymentError(errors.New("card declined")), http.StatusBadRequest},
		{"validation", apperr.NewValidationError("bad"), http.StatusBadRequest},
		{"invalid argument", apperr.NewInvalidArgumentError("empty"), http.StatusBadRequest},
		{"conflict", apperr.NewConflictError("dup"), http.StatusConflict},
		{"decode", apperr.NewDecodeError(errors.New("eof")), http.StatusInternalServerError},
		{"wrapped upstream", fmt.Errorf("ctx: %w", apperr.NewUpstreamError("places", nil)), http.StatusBadRequest},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := StatusFor(tt.err)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestError_WritesBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(RequestIDKey, "req-1")

	Error(c, apperr.NewNotFoundError("route", ""))

	require.Equal(t, http.StatusNotFound, w.Code)
	var body APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body.Code)
	assert.Equal(t, "route not found", body.Message)
	assert.Equal(t, "req-1", body.RequestID)
}
