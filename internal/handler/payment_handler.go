package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/wayfarer-travel/service-travel/internal/application"
	"github.com/wayfarer-travel/service-travel/internal/platform/response"
)

// PaymentHandler handles HTTP requests for payment intents.
type PaymentHandler struct {
	service *application.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *application.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes registers the payment routes at the root of r.
func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/create-payment-intent", h.CreateIntent)
	r.GET("/payment-status/:id", h.GetIntent)
	r.POST("/confirm-payment-intent/:id", h.ConfirmIntent)
}

// CreateIntent handles POST /create-payment-intent.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req application.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateIntent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetIntent handles GET /payment-status/:id.
func (h *PaymentHandler) GetIntent(c *gin.Context) {
	result, err := h.service.GetIntent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ConfirmIntent handles POST /confirm-payment-intent/:id.
func (h *PaymentHandler) ConfirmIntent(c *gin.Context) {
	result, err := h.service.ConfirmIntent(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
