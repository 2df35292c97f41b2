package checkout

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v74"

	"github.com/MarcGrol/benefitcheckout/lib/myerrors"
	"github.com/MarcGrol/benefitcheckout/lib/mylog"
	"github.com/MarcGrol/benefitcheckout/lib/mymetrics"
)

const sessionCreationFailedMessage = "Failed to create checkout session"

type service struct {
	logger  mylog.Logger
	payer   Payer
	catalog Catalog
	policy  Policy
	urls    RedirectURLs
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(logger mylog.Logger, payer Payer, catalog Catalog, policy Policy, urls RedirectURLs) *service {
	return &service{
		logger:  logger,
		payer:   payer,
		catalog: catalog,
		policy:  policy,
		urls:    urls,
	}
}

// createCheckoutSession validates the request, asks the provider for a hosted session and returns its url.
// Nothing is persisted and a failing provider call is never retried.
func (s *service) createCheckoutSession(c context.Context, req CheckoutRequest, idempotencyKey string) (CheckoutResponse, error) {
	validated, err := Validate(req, s.policy)
	if err != nil {
		mymetrics.CheckoutSessions.WithLabelValues("invalid", "rejected").Inc()
		return CheckoutResponse{}, myerrors.NewInvalidInputError(err)
	}

	params := BuildSessionParams(validated, s.catalog, s.urls)
	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}

	session, err := s.payer.CreateCheckoutSession(c, params)
	if err != nil {
		classified := classifyProviderError(err)
		outcome := "failed"
		if errors.Is(classified, ErrProviderUnavailable) {
			outcome = "unavailable"
		}
		mymetrics.CheckoutSessions.WithLabelValues(string(validated.Kind), outcome).Inc()
		s.logger.Log(c, "", mylog.SeverityError, "Error creating %s checkout session: %s", validated.Kind, err)
		return CheckoutResponse{}, myerrors.NewInternalError(classified)
	}

	mymetrics.CheckoutSessions.WithLabelValues(string(validated.Kind), "created").Inc()
	s.logger.Log(c, session.ID, mylog.SeverityInfo, "Created %s checkout session %s", validated.Kind, session.ID)

	return CheckoutResponse{
		URL: session.URL,
	}, nil
}

// classifyProviderError tells a provider that could not be reached apart from one that refused the session.
func classifyProviderError(err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return newFailure(ErrProviderUnavailable, sessionCreationFailedMessage, err)
	}
	if stripeErr.HTTPStatusCode >= 500 || stripeErr.Type == stripe.ErrorTypeAPI {
		return newFailure(ErrProviderUnavailable, sessionCreationFailedMessage, err)
	}
	return newFailure(ErrSessionCreationFailed, sessionCreationFailedMessage, err)
}
