package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/benefitcheckout/lib/mycontext"
	"github.com/MarcGrol/benefitcheckout/lib/myerrors"
	"github.com/MarcGrol/benefitcheckout/lib/myhttp"
	"github.com/MarcGrol/benefitcheckout/lib/mylog"
	"github.com/MarcGrol/benefitcheckout/lib/mytime"
	"github.com/MarcGrol/benefitcheckout/services/transactions/txstore"
)

type StatusResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type webService struct {
	logger mylog.Logger
	nower  mytime.Nower
	store  txstore.Store
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewWebService(nower mytime.Nower, store txstore.Store) *webService {
	return &webService{
		logger: mylog.New("health"),
		nower:  nower,
		store:  store,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/health", s.healthPage()).Methods("GET")
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")

	return nil
}

// healthPage only tells the process is serving; it touches no dependency.
func (s *webService) healthPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, StatusResponse{
			Status:    "ok",
			Timestamp: s.nower.Now(),
		})
	}
}

// warmupPage opens the transaction store before the first webhook arrives.
func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		records, err := s.store.List(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewUnavailableError(err))
			return
		}
		s.logger.Log(c, "", mylog.SeverityInfo, "Warmed up with %d recorded transaction(s)", len(records))

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed warmup request",
		})
	}
}
