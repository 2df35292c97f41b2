package publicform

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/benefitcheckout/lib/myerrors"
	"github.com/MarcGrol/benefitcheckout/lib/myhttpclient"
	"github.com/MarcGrol/benefitcheckout/lib/mylog"
	"github.com/MarcGrol/benefitcheckout/lib/myuuid"
)

func TestFormPage(t *testing.T) {
	t.Run("Render form", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, sender := setup(t, ctrl)

		// given
		expectSchema(sender, 200, schemaJSON, nil)

		// when
		response := get(router, "/forms/ruck-signup")

		// then
		assert.Equal(t, 200, response.Code)
		assert.Equal(t, "text/html; charset=utf-8", response.Header().Get("Content-Type"))
		body := response.Body.String()
		assert.Contains(t, body, "Ruck Signup")
		assert.Contains(t, body, "Join us on the trail")
		assert.Contains(t, body, `name="orgId" value="org_1"`)
		assert.Contains(t, body, `name="eventId" value="evt_9"`)
		assert.Contains(t, body, `name="field.name"`)
		assert.Contains(t, body, `placeholder="Jane Doe"`)
		assert.Contains(t, body, `type="email"`)
		assert.Contains(t, body, "Select an option...")
		assert.Contains(t, body, `type="checkbox" name="field.days" value="sat"`)
		assert.Contains(t, body, `min="18"`)
		assert.Contains(t, body, `max="99"`)
		assert.Contains(t, body, `type="text" name="field.color"`)
	})

	t.Run("Unknown form", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, sender := setup(t, ctrl)

		// given
		expectSchema(sender, 404, `{"error":"not found"}`, nil)

		// when
		response := get(router, "/forms/ruck-signup")

		// then
		assert.Equal(t, 404, response.Code)
		assert.Contains(t, response.Body.String(), "Form Not Found")
	})

	t.Run("Unreachable crm", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, sender := setup(t, ctrl)

		// given
		expectSchema(sender, 0, "", errors.New("connection refused"))

		// when
		response := get(router, "/forms/ruck-signup")

		// then
		assert.Equal(t, 404, response.Code)
		assert.Contains(t, response.Body.String(), "Form Not Found")
	})
}

func TestSubmitForm(t *testing.T) {
	t.Run("Relay submission", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, sender := setup(t, ctrl)

		// given
		expectSchema(sender, 200, schemaJSON, nil)
		sender.EXPECT().Send(gomock.Any(), "POST", crmBaseURL+"/contacts", gomock.Any()).DoAndReturn(
			func(c context.Context, method string, url string, body []byte) (int, []byte, error) {
				assert.JSONEq(t, `{
					"slug": "ruck-signup",
					"orgId": "org_1",
					"eventId": "evt_9",
					"formData": {
						"name": "Jane",
						"email": "jane@example.com",
						"shirt": "",
						"days": ["sat", "sun"],
						"age": "",
						"color": ""
					}
				}`, string(body))
				return 201, nil, nil
			})

		// when
		response := post(router, "/forms/ruck-signup", "orgId=org_1&eventId=evt_9&field.name=Jane&field.email=jane%40example.com&field.days=sat&field.days=sun&field.unknown=x")

		// then
		assert.Equal(t, 303, response.Code)
		assert.Equal(t, "/forms/ruck-signup/success?form=Ruck+Signup", response.Header().Get("Location"))
	})

	t.Run("Context from hidden inputs wins", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, sender := setup(t, ctrl)

		// given
		expectSchema(sender, 200, schemaJSON, nil)
		sender.EXPECT().Send(gomock.Any(), "POST", crmBaseURL+"/contacts", gomock.Any()).DoAndReturn(
			func(c context.Context, method string, url string, body []byte) (int, []byte, error) {
				assert.Contains(t, string(body), `"orgId":"org_2"`)
				assert.Contains(t, string(body), `"eventId":"evt_9"`)
				return 200, nil, nil
			})

		// when
		response := post(router, "/forms/ruck-signup", "orgId=org_2&field.name=Jane&field.email=jane%40example.com")

		// then
		assert.Equal(t, 303, response.Code)
	})

	t.Run("Missing required fields are not relayed", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, sender := setup(t, ctrl)

		// given
		expectSchema(sender, 200, schemaJSON, nil)

		// when
		response := post(router, "/forms/ruck-signup", "orgId=org_1&eventId=evt_9&field.name=+&field.shirt=l")

		// then
		assert.Equal(t, 422, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, "Please fill in all required fields")
		assert.Contains(t, body, "Full Name is required")
		assert.Contains(t, body, "Email is required")
		assert.Contains(t, body, `<option value="l" selected>Large</option>`)
	})

	t.Run("Crm failure keeps the entered values", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, sender := setup(t, ctrl)

		// given
		expectSchema(sender, 200, schemaJSON, nil)
		sender.EXPECT().Send(gomock.Any(), "POST", crmBaseURL+"/contacts", gomock.Any()).Return(500, nil, nil).Times(1)

		// when
		response := post(router, "/forms/ruck-signup", "field.name=Jane&field.email=jane%40example.com")

		// then
		assert.Equal(t, 502, response.Code)
		body := response.Body.String()
		assert.Contains(t, body, "Failed to submit form. Please try again.")
		assert.Contains(t, body, `value="Jane"`)
	})

	t.Run("Unknown form", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		// setup
		router, sender := setup(t, ctrl)

		// given
		expectSchema(sender, 404, "", nil)

		// when
		response := post(router, "/forms/ruck-signup", "field.name=Jane")

		// then
		assert.Equal(t, 404, response.Code)
	})
}

func TestSuccessPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	router, _ := setup(t, ctrl)

	response := get(router, "/forms/ruck-signup/success?form=Ruck+Signup")
	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Body.String(), "Thank you for submitting Ruck Signup.")

	response = get(router, "/forms/ruck-signup/success")
	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Body.String(), "Thank you for submitting the form.")
}

func expectSchema(sender *myhttpclient.MockHTTPSender, status int, body string, err error) {
	sender.EXPECT().Send(gomock.Any(), "GET", crmBaseURL+"/forms/public/ruck-signup", gomock.Nil()).Return(status, []byte(body), err)
}

func get(router *mux.Router, path string) *httptest.ResponseRecorder {
	request, _ := http.NewRequest(http.MethodGet, path, nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func post(router *mux.Router, path string, form string) *httptest.ResponseRecorder {
	request, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func TestRenderFailure(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "missing fields", err: myerrors.NewUnprocessableError(ErrMissingRequired), expected: 422},
		{name: "relay failed", err: myerrors.NewBadGatewayError(ErrRelayFailed), expected: 502},
		{name: "form not found", err: myerrors.NewNotFoundError(ErrFormNotFound), expected: 404},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sut := &webService{logger: mylog.New("publicform")}

			response := httptest.NewRecorder()
			sut.renderFailure(context.TODO(), response, "", tc.err, notFoundPageTemplate, nil)

			assert.Equal(t, tc.expected, response.Code)
			assert.Contains(t, response.Body.String(), "Form Not Found")
		})
	}
}

func setup(t *testing.T, ctrl *gomock.Controller) (*mux.Router, *myhttpclient.MockHTTPSender) {
	c := context.TODO()
	sender := myhttpclient.NewMockHTTPSender(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)
	uuider.EXPECT().Create().Return("submission_1").AnyTimes()

	sut := NewWebService(NewCRMClient(crmBaseURL, sender), uuider)
	router := mux.NewRouter()
	err := sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return router, sender
}
