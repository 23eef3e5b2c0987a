package payment

import (
	"context"
	"strings"
)

// DefaultCurrency is used when a caller does not name one.
const DefaultCurrency = "eur"

// Intent is a provider payment intent.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       string
}

// CreateIntentParams describes a payment intent to create.
type CreateIntentParams struct {
	// Amount is expressed in the currency's minor unit.
	Amount   int64
	Currency string
	Metadata map[string]string
}

// Gateway is the payment provider port.
type Gateway interface {
	CreateIntent(ctx context.Context, params CreateIntentParams) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
	ConfirmIntent(ctx context.Context, id string) (*Intent, error)
	CancelIntent(ctx context.Context, id string) (*Intent, error)
}

// NormalizeCurrency lower-cases the code, falling back to DefaultCurrency.
func NormalizeCurrency(currency string) string {
	c := strings.ToLower(strings.TrimSpace(currency))
	if c == "" {
		return DefaultCurrency
	}
	return c
}
