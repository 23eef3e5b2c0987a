// Package stripe implements the payment gateway with Stripe PaymentIntents.
package stripe

import (
	"context"
	"errors"
	"fmt"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/wayfarer-travel/service-travel/internal/domain/payment"
	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
)

// intentsAPI is the subset of the PaymentIntents client used here.
type intentsAPI interface {
	New(params *stripego.PaymentIntentParams) (*stripego.PaymentIntent, error)
	Get(id string, params *stripego.PaymentIntentParams) (*stripego.PaymentIntent, error)
	Confirm(id string, params *stripego.PaymentIntentConfirmParams) (*stripego.PaymentIntent, error)
	Cancel(id string, params *stripego.PaymentIntentCancelParams) (*stripego.PaymentIntent, error)
}

// Gateway implements payment.Gateway.
type Gateway struct {
	intents intentsAPI
}

// NewGateway creates a Gateway authenticated with secretKey.
func NewGateway(secretKey string) *Gateway {
	sc := client.New(secretKey, nil)
	return &Gateway{intents: sc.PaymentIntents}
}

// CreateIntent creates a PaymentIntent with automatic payment methods enabled.
func (g *Gateway) CreateIntent(ctx context.Context, p payment.CreateIntentParams) (*payment.Intent, error) {
	params := &stripego.PaymentIntentParams{
		Amount:   stripego.Int64(p.Amount),
		Currency: stripego.String(p.Currency),
		AutomaticPaymentMethods: &stripego.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripego.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.intents.New(params)
	if err != nil {
		return nil, wrapError("create payment intent", err)
	}
	return toIntent(pi), nil
}

// GetIntent retrieves a PaymentIntent.
func (g *Gateway) GetIntent(ctx context.Context, id string) (*payment.Intent, error) {
	params := &stripego.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.intents.Get(id, params)
	if err != nil {
		return nil, wrapError("retrieve payment intent", err)
	}
	return toIntent(pi), nil
}

// ConfirmIntent confirms a PaymentIntent.
func (g *Gateway) ConfirmIntent(ctx context.Context, id string) (*payment.Intent, error) {
	params := &stripego.PaymentIntentConfirmParams{}
	params.Context = ctx

	pi, err := g.intents.Confirm(id, params)
	if err != nil {
		return nil, wrapError("confirm payment intent", err)
	}
	return toIntent(pi), nil
}

// CancelIntent cancels a PaymentIntent that will never be paid.
func (g *Gateway) CancelIntent(ctx context.Context, id string) (*payment.Intent, error) {
	params := &stripego.PaymentIntentCancelParams{
		CancellationReason: stripego.String(string(stripego.PaymentIntentCancellationReasonAbandoned)),
	}
	params.Context = ctx

	pi, err := g.intents.Cancel(id, params)
	if err != nil {
		return nil, wrapError("cancel payment intent", err)
	}
	return toIntent(pi), nil
}

func toIntent(pi *stripego.PaymentIntent) *payment.Intent {
	return &payment.Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}
}

// wrapError maps Stripe API errors to payment errors and anything else to upstream errors.
func wrapError(operation string, err error) error {
	var stripeErr *stripego.Error
	if errors.As(err, &stripeErr) {
		msg := stripeErr.Msg
		if msg == "" {
			msg = err.Error()
		}
		return apperr.NewPaymentError(fmt.Errorf("%s: %s", operation, msg))
	}
	return apperr.NewUpstreamError(operation, err)
}
