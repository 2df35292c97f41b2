package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/benefitcheckout/lib/mytime"
	"github.com/MarcGrol/benefitcheckout/services/transactions/txstore"
)

func TestHealth(t *testing.T) {
	t.Run("Health", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, nower, _ := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)

		// when
		response := get(router, "/api/health")

		// then
		assert.Equal(t, 200, response.Code)
		assert.JSONEq(t, `{"status":"ok","timestamp":"2025-10-23T22:58:59Z"}`, response.Body.String())
	})

	t.Run("Warmup", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, _, store := setup(t, ctrl)

		// given
		store.EXPECT().List(gomock.Any()).Return([]txstore.TransactionRecord{}, nil)

		// when
		response := get(router, "/_ah/warmup")

		// then
		assert.Equal(t, 200, response.Code)
		assert.JSONEq(t, `{"message":"Successfully processed warmup request"}`, response.Body.String())
	})

	t.Run("Warmup with broken store", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, _, store := setup(t, ctrl)

		// given
		store.EXPECT().List(gomock.Any()).Return(nil, errors.New("corrupt"))

		// when
		response := get(router, "/_ah/warmup")

		// then
		assert.Equal(t, 503, response.Code)
	})
}

func get(router *mux.Router, path string) *httptest.ResponseRecorder {
	request, _ := http.NewRequest(http.MethodGet, path, nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func setup(t *testing.T, ctrl *gomock.Controller) (*mux.Router, *mytime.MockNower, *txstore.MockStore) {
	nower := mytime.NewMockNower(ctrl)
	store := txstore.NewMockStore(ctrl)

	sut := NewWebService(nower, store)
	router := mux.NewRouter()
	err := sut.RegisterEndpoints(context.TODO(), router)
	assert.NoError(t, err)

	return router, nower, store
}
