package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/benefitcheckout/lib/mycontext"
	"github.com/MarcGrol/benefitcheckout/lib/myerrors"
	"github.com/MarcGrol/benefitcheckout/lib/myhttp"
	"github.com/MarcGrol/benefitcheckout/lib/mylog"
)

const maxRequestBytes = 16 * 1024

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(payer Payer, catalog Catalog, policy Policy, urls RedirectURLs) *webService {
	logger := mylog.New("checkout")
	return &webService{
		logger:  logger,
		service: newService(logger, payer, catalog, policy, urls),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/create-checkout-session", s.createCheckoutSession()).Methods("POST")
	router.HandleFunc("/checkout", s.checkoutFormPost()).Methods("POST")

	return nil
}

func (s *webService) createCheckoutSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		body, err := myhttp.ReadBody(r, maxRequestBytes)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(errors.New("Invalid request body")))
			return
		}

		req := CheckoutRequest{}
		err = json.Unmarshal(body, &req)
		if err != nil {
			s.logger.Log(c, "", mylog.SeverityInfo, "Error parsing checkout request: %s", err)
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(errors.New("Invalid request body")))
			return
		}

		resp, err := s.service.createCheckoutSession(c, req, r.Header.Get("Idempotency-Key"))
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, resp)
	}
}

// checkoutFormPost sends the browser straight to the hosted checkout page, or back to the storefront with
// the reason it could not.
func (s *webService) checkoutFormPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		req, err := NewFromRequest(r)
		if err != nil {
			s.logger.Log(c, "", mylog.SeverityInfo, "Error parsing checkout form: %s", err)
			http.Redirect(w, r, "/?error="+url.QueryEscape("Invalid request"), http.StatusSeeOther)
			return
		}

		resp, err := s.service.createCheckoutSession(c, req, r.Header.Get("Idempotency-Key"))
		if err != nil {
			http.Redirect(w, r, "/?error="+url.QueryEscape(myerrors.Cause(err).Error()), http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, resp.URL, http.StatusSeeOther)
	}
}
