package transactions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v74"

	"github.com/MarcGrol/benefitcheckout/lib/myerrors"
	"github.com/MarcGrol/benefitcheckout/lib/mylog"
	"github.com/MarcGrol/benefitcheckout/lib/mymetrics"
	"github.com/MarcGrol/benefitcheckout/lib/mypublisher"
	"github.com/MarcGrol/benefitcheckout/lib/mytime"
	"github.com/MarcGrol/benefitcheckout/services/transactions/txstore"
)

const (
	checkoutSessionCompleted = "checkout.session.completed"
	unknown                  = "unknown"
)

type service struct {
	logger    mylog.Logger
	verifier  *Verifier
	nower     mytime.Nower
	store     txstore.Store
	publisher mypublisher.Publisher
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(logger mylog.Logger, verifier *Verifier, nower mytime.Nower, store txstore.Store, publisher mypublisher.Publisher) *service {
	return &service{
		logger:    logger,
		verifier:  verifier,
		nower:     nower,
		store:     store,
		publisher: publisher,
	}
}

// handleWebhook only fails when the delivery cannot be authenticated. Anything that goes wrong after that
// is logged and counted, because the provider would otherwise keep redelivering an event we already saw.
func (s *service) handleWebhook(c context.Context, payload []byte, signatureHeader string) error {
	event, err := s.verifier.Verify(payload, signatureHeader)
	if err != nil {
		mymetrics.WebhookEvents.WithLabelValues(unknown, "rejected").Inc()
		s.logger.Log(c, "", mylog.SeverityWarn, "Webhook signature verification failed: %s", err)
		return myerrors.NewInvalidInputError(fmt.Errorf("Webhook Error: %w", err))
	}

	eventType := string(event.Type)
	if eventType != checkoutSessionCompleted {
		mymetrics.WebhookEvents.WithLabelValues(eventType, "ignored").Inc()
		s.logger.Log(c, event.ID, mylog.SeverityDebug, "Ignoring webhook event %s of type %s", event.ID, eventType)
		return nil
	}

	session := stripe.CheckoutSession{}
	err = json.Unmarshal(event.Data.Raw, &session)
	if err != nil {
		mymetrics.WebhookEvents.WithLabelValues(eventType, "failed").Inc()
		s.logger.Log(c, event.ID, mylog.SeverityError, "Error parsing checkout session of event %s: %s", event.ID, err)
		return nil
	}

	record := newRecord(session, s.nower)
	s.logger.Log(c, record.ID, mylog.SeverityInfo, "Transaction completed: %s %.2f %s by %s (%s)", record.Type, record.Amount, record.Currency, record.Email, record.PaymentStatus)

	err = s.store.Append(c, record)
	if err != nil {
		mymetrics.WebhookEvents.WithLabelValues(eventType, "failed").Inc()
		mymetrics.PersistenceFailures.Inc()
		s.logger.Log(c, record.ID, mylog.SeverityError, "%s: %s", ErrPersistenceFailure, err)
		return nil
	}
	mymetrics.WebhookEvents.WithLabelValues(eventType, "recorded").Inc()
	mymetrics.TransactionsRecorded.WithLabelValues(record.Type).Inc()

	err = s.publisher.Publish(c, TopicName, TransactionRecorded{
		SessionID:     record.ID,
		Email:         record.Email,
		Amount:        record.Amount,
		Type:          record.Type,
		Currency:      record.Currency,
		PaymentStatus: record.PaymentStatus,
	})
	if err != nil {
		s.logger.Log(c, record.ID, mylog.SeverityError, "Error publishing transaction %s: %s", record.ID, err)
	}

	return nil
}

func newRecord(session stripe.CheckoutSession, nower mytime.Nower) txstore.TransactionRecord {
	email := unknown
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		email = session.CustomerDetails.Email
	}

	kind := session.Metadata["type"]
	if kind == "" {
		kind = unknown
	}

	return txstore.TransactionRecord{
		ID:            session.ID,
		Email:         email,
		Amount:        float64(session.AmountTotal) / 100,
		Type:          kind,
		Currency:      string(session.Currency),
		PaymentStatus: string(session.PaymentStatus),
		Timestamp:     nower.Now(),
	}
}
