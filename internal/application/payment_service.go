package application

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wayfarer-travel/service-travel/internal/domain/payment"
	"github.com/wayfarer-travel/service-travel/internal/events"
	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
	"github.com/wayfarer-travel/service-travel/internal/platform/metrics"
)

// CreatePaymentIntentRequest holds the data needed to create a payment intent.
type CreatePaymentIntentRequest struct {
	// Amount is expressed in the currency's minor unit.
	Amount   int64  `json:"amount" binding:"required"`
	Currency string `json:"currency"`
}

// CreatePaymentIntentResponse is returned after creating an intent.
type CreatePaymentIntentResponse struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Status          string `json:"status"`
}

// PaymentStatusResponse describes an existing intent.
type PaymentStatusResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	ClientSecret string `json:"client_secret"`
}

// ConfirmPaymentResponse describes a confirmed intent.
type ConfirmPaymentResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentService is the application service for payment intents.
type PaymentService struct {
	gateway   payment.Gateway
	appEnv    string
	publisher EventPublisher
	logger    *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(gateway payment.Gateway, appEnv string, publisher EventPublisher, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		gateway:   gateway,
		appEnv:    appEnv,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateIntent creates a payment intent with automatic payment methods.
func (s *PaymentService) CreateIntent(ctx context.Context, req CreatePaymentIntentRequest) (*CreatePaymentIntentResponse, error) {
	intent, err := s.createIntent(ctx, req.Amount, req.Currency, nil)
	if err != nil {
		return nil, err
	}
	return &CreatePaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
		Status:          intent.Status,
	}, nil
}

// GetIntent returns the current state of a payment intent.
func (s *PaymentService) GetIntent(ctx context.Context, id string) (*PaymentStatusResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.NewValidationError("payment intent ID is required")
	}

	s.logger.Info("retrieving payment intent", zap.String("payment_intent_id", id))

	start := time.Now()
	intent, err := s.gateway.GetIntent(ctx, id)
	metrics.ObserveUpstream("payment_get", start, err)
	if err != nil {
		return nil, s.paymentError("retrieve", id, err)
	}

	return &PaymentStatusResponse{
		ID:           intent.ID,
		Status:       intent.Status,
		Amount:       intent.Amount,
		Currency:     intent.Currency,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// ConfirmIntent retrieves then confirms a payment intent.
func (s *PaymentService) ConfirmIntent(ctx context.Context, id string) (*ConfirmPaymentResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.NewValidationError("payment intent ID is required")
	}

	s.logger.Info("confirming payment intent", zap.String("payment_intent_id", id))

	start := time.Now()
	_, err := s.gateway.GetIntent(ctx, id)
	metrics.ObserveUpstream("payment_get", start, err)
	if err != nil {
		return nil, s.paymentError("retrieve", id, err)
	}

	start = time.Now()
	intent, err := s.gateway.ConfirmIntent(ctx, id)
	metrics.ObserveUpstream("payment_confirm", start, err)
	if err != nil {
		return nil, s.paymentError("confirm", id, err)
	}

	s.publishIntent(ctx, events.PaymentIntentConfirmed, intent)

	return &ConfirmPaymentResponse{
		ID:       intent.ID,
		Status:   intent.Status,
		Amount:   intent.Amount,
		Currency: intent.Currency,
	}, nil
}

func (s *PaymentService) createIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*payment.Intent, error) {
	if amount <= 0 {
		return nil, apperr.NewValidationError("amount must be positive")
	}
	currency = payment.NormalizeCurrency(currency)

	md := map[string]string{
		"source":      "mobile_app",
		"environment": s.appEnv,
	}
	for k, v := range metadata {
		md[k] = v
	}

	s.logger.Info("creating payment intent",
		zap.Int64("amount", amount),
		zap.String("currency", currency),
	)

	start := time.Now()
	intent, err := s.gateway.CreateIntent(ctx, payment.CreateIntentParams{
		Amount:   amount,
		Currency: currency,
		Metadata: md,
	})
	metrics.ObserveUpstream("payment_create", start, err)
	if err != nil {
		return nil, s.paymentError("create", "", err)
	}

	s.logger.Info("payment intent created", zap.String("payment_intent_id", intent.ID))
	s.publishIntent(ctx, events.PaymentIntentCreated, intent)
	return intent, nil
}

// abandonIntent cancels an intent whose reservation could not be stored.
// Failures are logged only.
func (s *PaymentService) abandonIntent(ctx context.Context, id string) {
	ctx = context.WithoutCancel(ctx)

	start := time.Now()
	intent, err := s.gateway.CancelIntent(ctx, id)
	metrics.ObserveUpstream("payment_cancel", start, err)
	if err != nil {
		s.logger.Error("failed to cancel abandoned payment intent",
			zap.String("payment_intent_id", id),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("payment intent cancelled", zap.String("payment_intent_id", id))
	s.publishIntent(ctx, events.PaymentIntentCanceled, intent)
}

func (s *PaymentService) paymentError(action, id string, err error) error {
	s.logger.Error("payment provider call failed",
		zap.String("action", action),
		zap.String("payment_intent_id", id),
		zap.Error(err),
	)
	if apperr.KindOf(err) != "" {
		return err
	}
	return apperr.NewPaymentError(err)
}

func (s *PaymentService) publishIntent(ctx context.Context, eventType string, intent *payment.Intent) {
	evt := events.PaymentIntentEvent{
		PaymentIntentID: intent.ID,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
		Status:          intent.Status,
		OccurredAt:      time.Now().UTC(),
	}
	publishEvent(ctx, s.publisher, s.logger, events.TopicPaymentEvents, eventType, intent.ID, evt)
}
