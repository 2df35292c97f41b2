package publicform

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/benefitcheckout/lib/myhttpclient"
)

const crmBaseURL = "http://crm.test/api"

const schemaJSON = `{
	"id": "f1",
	"slug": "ruck-signup",
	"title": "Ruck Signup",
	"description": "Join us on the trail",
	"orgId": "org_1",
	"eventId": "evt_9",
	"fields": [
		{"id": "name", "label": "Full Name", "type": "text", "required": true, "placeholder": "Jane Doe"},
		{"id": "email", "label": "Email", "type": "email", "required": true},
		{"id": "shirt", "label": "Shirt Size", "type": "select", "options": [{"value": "m", "label": "Medium"}, {"value": "l", "label": "Large"}]},
		{"id": "days", "label": "Days", "type": "checkbox", "options": [{"value": "sat", "label": "Saturday"}, {"value": "sun", "label": "Sunday"}]},
		{"id": "age", "label": "Age", "type": "number", "min": 18, "max": 99, "options": [{"value": "x", "label": "ignored"}]},
		{"id": "color", "label": "Color", "type": "colour-picker"}
	]
}`

func TestFetchSchema(t *testing.T) {
	t.Run("Decode schema", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), "GET", crmBaseURL+"/forms/public/ruck-signup", gomock.Nil()).Return(200, []byte(schemaJSON), nil)

		schema, err := NewCRMClient(crmBaseURL, sender).FetchSchema(context.TODO(), "ruck-signup")
		assert.NoError(t, err)
		assert.Equal(t, "Ruck Signup", schema.Title)
		assert.Equal(t, "org_1", schema.OrgID)
		assert.Len(t, schema.Fields, 6)

		assert.Equal(t, FieldSelect, schema.Fields[2].Kind)
		assert.Equal(t, []Option{{Value: "m", Label: "Medium"}, {Value: "l", Label: "Large"}}, schema.Fields[2].Options)

		age := schema.Fields[4]
		assert.Equal(t, FieldNumber, age.Kind)
		assert.Nil(t, age.Options)
		assert.Equal(t, 18.0, *age.Bounds.Min)
		assert.Equal(t, 99.0, *age.Bounds.Max)

		assert.Equal(t, FieldText, schema.Fields[5].Kind)
		assert.Nil(t, schema.Fields[0].Bounds)
	})

	t.Run("Slug falls back to the requested one", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), "GET", crmBaseURL+"/forms/public/walk", gomock.Nil()).Return(200, []byte(`{"title":"Walk","fields":[]}`), nil)

		schema, err := NewCRMClient(crmBaseURL, sender).FetchSchema(context.TODO(), "walk")
		assert.NoError(t, err)
		assert.Equal(t, "walk", schema.Slug)
	})

	t.Run("Slug is escaped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), "GET", crmBaseURL+"/forms/public/a%20b", gomock.Nil()).Return(404, nil, nil)

		_, err := NewCRMClient(crmBaseURL, sender).FetchSchema(context.TODO(), "a b")
		assert.ErrorIs(t, err, ErrFormNotFound)
	})

	t.Run("Failures are form not found", func(t *testing.T) {
		testCases := []struct {
			name   string
			status int
			body   string
			err    error
		}{
			{name: "crm 404", status: 404, body: `{"error":"not found"}`},
			{name: "crm 500", status: 500},
			{name: "transport", err: errors.New("connection refused")},
			{name: "malformed", status: 200, body: `{"fields": "nope"}`},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				ctrl := gomock.NewController(t)
				sender := myhttpclient.NewMockHTTPSender(ctrl)
				sender.EXPECT().Send(gomock.Any(), "GET", gomock.Any(), gomock.Nil()).Return(tc.status, []byte(tc.body), tc.err)

				_, err := NewCRMClient(crmBaseURL, sender).FetchSchema(context.TODO(), "ruck-signup")
				assert.ErrorIs(t, err, ErrFormNotFound)
			})
		}
	})
}

func TestSubmit(t *testing.T) {
	orgID := "org_1"
	submission := FormSubmission{
		Slug:     "ruck-signup",
		OrgID:    &orgID,
		FormData: map[string]any{"name": "Jane", "days": []string{"sat"}},
	}

	t.Run("Post once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), "POST", crmBaseURL+"/contacts", gomock.Any()).DoAndReturn(
			func(c context.Context, method string, url string, body []byte) (int, []byte, error) {
				assert.JSONEq(t, `{"slug":"ruck-signup","orgId":"org_1","eventId":null,"formData":{"name":"Jane","days":["sat"]}}`, string(body))
				return 201, []byte(`{"id":"c1"}`), nil
			})

		err := NewCRMClient(crmBaseURL, sender).Submit(context.TODO(), submission)
		assert.NoError(t, err)
	})

	t.Run("Non-2xx fails without retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), "POST", crmBaseURL+"/contacts", gomock.Any()).Return(503, nil, nil).Times(1)

		err := NewCRMClient(crmBaseURL, sender).Submit(context.TODO(), submission)
		assert.ErrorIs(t, err, ErrRelayFailed)
	})

	t.Run("Transport error fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sender.EXPECT().Send(gomock.Any(), "POST", crmBaseURL+"/contacts", gomock.Any()).Return(0, nil, errors.New("timeout"))

		err := NewCRMClient(crmBaseURL, sender).Submit(context.TODO(), submission)
		assert.ErrorIs(t, err, ErrRelayFailed)
	})
}
