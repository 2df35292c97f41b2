package transactions

import (
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"
)

var (
	ErrSignatureInvalid   = errors.New("webhook signature invalid")
	ErrPersistenceFailure = errors.New("transaction could not be persisted")
)

// Verifier authenticates webhook deliveries against the shared endpoint secret. Events from a newer or
// older api version are accepted because only a few checkout session fields are read.
type Verifier struct {
	secret string
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: secret,
	}
}

func (v *Verifier) Verify(payload []byte, signatureHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %s", ErrSignatureInvalid, err)
	}
	return event, nil
}
