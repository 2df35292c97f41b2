package mymetrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CheckoutSessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "benefit_checkout_sessions_total",
		Help: "Checkout session requests, labelled by kind and outcome.",
	}, []string{"kind", "outcome"})

	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "benefit_webhook_events_total",
		Help: "Inbound provider webhook events, labelled by event type and outcome.",
	}, []string{"event_type", "outcome"})

	TransactionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "benefit_transactions_recorded_total",
		Help: "Completed transactions appended to the transaction store, labelled by kind.",
	}, []string{"kind"})

	PersistenceFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "benefit_transaction_persistence_failures_total",
		Help: "Completed transactions that could not be appended to the transaction store.",
	})

	FormSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "benefit_form_submissions_total",
		Help: "Public form submissions, labelled by outcome.",
	}, []string{"outcome"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
