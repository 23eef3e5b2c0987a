package stripe

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	stripego "github.com/stripe/stripe-go/v76"

	"github.com/wayfarer-travel/service-travel/internal/domain/payment"
	"github.com/wayfarer-travel/service-travel/internal/platform/apperr"
)

type fakeIntents struct {
	newParams    *stripego.PaymentIntentParams
	cancelID     string
	cancelParams *stripego.PaymentIntentCancelParams
	pi           *stripego.PaymentIntent
	err          error
}

func (f *fakeIntents) New(params *stripego.PaymentIntentParams) (*stripego.PaymentIntent, error) {
	f.newParams = params
	return f.pi, f.err
}

func (f *fakeIntents) Get(string, *stripego.PaymentIntentParams) (*stripego.PaymentIntent, error) {
	return f.pi, f.err
}

func (f *fakeIntents) Confirm(string, *stripego.PaymentIntentConfirmParams) (*stripego.PaymentIntent, error) {
	return f.pi, f.err
}

func (f *fakeIntents) Cancel(id string, params *stripego.PaymentIntentCancelParams) (*stripego.PaymentIntent, error) {
	f.cancelID = id
	f.cancelParams = params
	return f.pi, f.err
}

func TestCreateIntent(t *testing.T) {
	fi := &fakeIntents{pi: &stripego.PaymentIntent{
		ID:           "pi_1",
		ClientSecret: "pi_1_secret",
		Amount:       1999,
		Currency:     stripego.CurrencyEUR,
		Status:       stripego.PaymentIntentStatusRequiresPaymentMethod,
	}}
	g := &Gateway{intents: fi}

	intent, err := g.CreateIntent(context.Background(), payment.CreateIntentParams{
		Amount:   1999,
		Currency: "eur",
		Metadata: map[string]string{"source": "mobile_app"},
	})
	require.NoError(t, err)

	assert.Equal(t, &payment.Intent{
		ID:           "pi_1",
		ClientSecret: "pi_1_secret",
		Amount:       1999,
		Currency:     "eur",
		Status:       "requires_payment_method",
	}, intent)

	assert.Equal(t, int64(1999), *fi.newParams.Amount)
	assert.True(t, *fi.newParams.AutomaticPaymentMethods.Enabled)
	assert.Equal(t, "mobile_app", fi.newParams.Metadata["source"])
}

func TestWrapError(t *testing.T) {
	err := wrapError("confirm payment intent", &stripego.Error{Msg: "No such payment_intent: 'pi_x'"})
	assert.True(t, apperr.Is(err, apperr.KindPayment))
	assert.ErrorContains(t, err, "No such payment_intent")

	err = wrapError("confirm payment intent", errors.New("dial tcp: i/o timeout"))
	assert.True(t, apperr.Is(err, apperr.KindUpstream))
}

func TestGetIntent_StripeError(t *testing.T) {
	g := &Gateway{intents: &fakeIntents{err: &stripego.Error{Msg: "Invalid API Key provided"}}}

	_, err := g.GetIntent(context.Background(), "pi_1")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindPayment))
}

func TestCancelIntent(t *testing.T) {
	fi := &fakeIntents{pi: &stripego.PaymentIntent{ID: "pi_1", Status: stripego.PaymentIntentStatusCanceled}}
	g := &Gateway{intents: fi}

	intent, err := g.CancelIntent(context.Background(), "pi_1")
	require.NoError(t, err)
	assert.Equal(t, "canceled", intent.Status)
	assert.Equal(t, "pi_1", fi.cancelID)
	assert.Equal(t, "abandoned", *fi.cancelParams.CancellationReason)
}
