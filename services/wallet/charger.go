package wallet

import (
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// Charger settles an external payment before a wallet credit. Amounts are
// whole currency units; implementations convert as their processor requires.
type Charger interface {
	// Charge captures amount against the given payment method and returns a
	// processor reference on success.
	Charge(amount int64, paymentMethod, actorID string) (string, error)
}

// StripeCharger charges through Stripe payment intents. The API key is set
// globally at startup via stripe.Key.
type StripeCharger struct {
	Currency string
}

func (c *StripeCharger) Charge(amount int64, paymentMethod, actorID string) (string, error) {
	currency := c.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(amount * 100),
		Currency:      stripe.String(currency),
		PaymentMethod: stripe.String(paymentMethod),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.AddMetadata("actorId", actorID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return "", fmt.Errorf("payment intent %s not settled: %s", pi.ID, pi.Status)
	}
	return pi.ID, nil
}
