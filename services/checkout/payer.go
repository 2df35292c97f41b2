package checkout

import (
	"context"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

//go:generate mockgen -source=payer.go -package checkout -destination payer_mock.go Payer
type Payer interface {
	CreateCheckoutSession(c context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type stripePayer struct {
	client *client.API
}

// NewPayer uses its own client instead of the package-global stripe key.
func NewPayer(secretKey string) Payer {
	return &stripePayer{
		client: client.New(secretKey, nil),
	}
}

func (p *stripePayer) CreateCheckoutSession(c context.Context, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	params.Context = c
	return p.client.CheckoutSessions.New(params)
}
