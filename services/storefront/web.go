package storefront

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/benefitcheckout/lib/mycontext"
	"github.com/MarcGrol/benefitcheckout/lib/myerrors"
	"github.com/MarcGrol/benefitcheckout/lib/myhttp"
	"github.com/MarcGrol/benefitcheckout/lib/mylog"
)

//go:embed templates
var templateFolder embed.FS
var (
	landingPageTemplate *template.Template
	successPageTemplate *template.Template
	cancelPageTemplate  *template.Template
)

func init() {
	landingPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/landing.html"))
	successPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/success.html"))
	cancelPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/cancel.html"))
}

// Offer is what the landing page shows. Prices are display only; the checkout endpoint decides what is charged.
type Offer struct {
	PublishableKey   string
	TicketPriceMinor int64
	MinDonation      float64
}

type landingPage struct {
	PublishableKey string
	TicketPrice    string
	MinDonation    string
	Error          string
}

type webService struct {
	logger mylog.Logger
	offer  Offer
}

func NewWebService(offer Offer) *webService {
	return &webService{
		logger: mylog.New("storefront"),
		offer:  offer,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/", s.landingPage()).Methods("GET")
	router.HandleFunc("/success", s.successPage()).Methods("GET")
	router.HandleFunc("/cancel", s.cancelPage()).Methods("GET")

	return nil
}

func (s *webService) landingPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		s.render(c, w, landingPageTemplate, landingPage{
			PublishableKey: s.offer.PublishableKey,
			TicketPrice:    "$" + strconv.FormatFloat(float64(s.offer.TicketPriceMinor)/100, 'f', -1, 64),
			MinDonation:    strconv.FormatFloat(s.offer.MinDonation, 'f', -1, 64),
			Error:          r.URL.Query().Get("error"),
		})
	}
}

func (s *webService) successPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		s.render(c, w, successPageTemplate, struct{ SessionID string }{
			SessionID: r.URL.Query().Get("session_id"),
		})
	}
}

func (s *webService) cancelPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		s.render(c, w, cancelPageTemplate, nil)
	}
}

func (s *webService) render(c context.Context, w http.ResponseWriter, tmpl *template.Template, data any) {
	err := myhttp.WriteHTML(w, http.StatusOK, tmpl, data)
	if err != nil {
		myhttp.NewWriter(s.logger).WriteError(c, w, 1, myerrors.NewInternalError(err))
	}
}
