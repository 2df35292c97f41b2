package checkout

import (
	"encoding/json"
	"errors"
)

type Kind string

const (
	KindTicket   Kind = "ticket"
	KindDonation Kind = "donation"
)

var (
	ErrInvalidRequest        = errors.New("invalid request")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrSessionCreationFailed = errors.New("session creation failed")
	ErrProviderUnavailable   = errors.New("payment provider unavailable")
)

// failure carries a message that is safe to show to the caller next to the kind of failure
// and, optionally, the underlying cause.
type failure struct {
	kind    error
	message string
	cause   error
}

func newFailure(kind error, message string, cause error) error {
	return failure{kind: kind, message: message, cause: cause}
}

func (f failure) Error() string {
	return f.message
}

func (f failure) Unwrap() []error {
	if f.cause == nil {
		return []error{f.kind}
	}
	return []error{f.kind, f.cause}
}

// CheckoutRequest is the purchase request as sent by the browser. Amount is kept raw: it is only
// interpreted for donations, and may be a number or a numeric string.
type CheckoutRequest struct {
	Type     string            `json:"type"`
	Amount   json.RawMessage   `json:"amount,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ValidatedRequest is a CheckoutRequest that passed validation. Amount is only set for donations.
type ValidatedRequest struct {
	Kind     Kind
	Amount   float64
	Metadata map[string]string
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

type Product struct {
	Name        string
	Description string
}

// Catalog holds everything about the offer that the browser must not be able to influence.
type Catalog struct {
	Currency         string
	TicketPriceMinor int64
	Ticket           Product
	Donation         Product
}

var DefaultCatalog = Catalog{
	Currency:         "usd",
	TicketPriceMinor: 2500,
	Ticket: Product{
		Name:        "Brothers & Brews Benefit Night Ticket",
		Description: "Each ticket includes one Port City brew + entry to the event",
	},
	Donation: Product{
		Name:        "Brothers & Brews Benefit Night Donation",
		Description: "Thank you for your generous donation!",
	},
}

type Policy struct {
	MinDonation float64
	MaxDonation float64
}

// RedirectURLs are the pages the provider sends the payer back to.
type RedirectURLs struct {
	Success string
	Cancel  string
}

// NewRedirectURLs composes the redirect urls from the frontend base url. The provider replaces
// the {CHECKOUT_SESSION_ID} placeholder.
func NewRedirectURLs(frontendBaseURL string) RedirectURLs {
	return RedirectURLs{
		Success: frontendBaseURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		Cancel:  frontendBaseURL + "/cancel",
	}
}
