package transactions

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/benefitcheckout/lib/mycontext"
	"github.com/MarcGrol/benefitcheckout/lib/myerrors"
	"github.com/MarcGrol/benefitcheckout/lib/myhttp"
	"github.com/MarcGrol/benefitcheckout/lib/mylog"
	"github.com/MarcGrol/benefitcheckout/lib/mypublisher"
	"github.com/MarcGrol/benefitcheckout/lib/mytime"
	"github.com/MarcGrol/benefitcheckout/services/transactions/txstore"
)

// larger deliveries are rejected before verification
const maxPayloadBytes = 64 * 1024

type webService struct {
	logger  mylog.Logger
	service *service
}

type WebhookResponse struct {
	Received bool `json:"received"`
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(verifier *Verifier, nower mytime.Nower, store txstore.Store, publisher mypublisher.Publisher) *webService {
	logger := mylog.New("transactions")
	return &webService{
		logger:  logger,
		service: newService(logger, verifier, nower, store, publisher),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/webhook", s.webhookNotification()).Methods("POST")

	return nil
}

// webhookNotification reads the body without parsing it: the signature covers the exact bytes.
func (s *webService) webhookNotification() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		payload, err := myhttp.ReadBody(r, maxPayloadBytes)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputErrorf("Webhook Error: %s", err))
			return
		}

		err = s.service.handleWebhook(c, payload, r.Header.Get("Stripe-Signature"))
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, WebhookResponse{Received: true})
	}
}
