package myhttpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		switch r.URL.Path {
		case "/contacts":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.JSONEq(t, `{"slug":"signup"}`, string(body))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"c1"}`))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
		default:
			assert.Empty(t, body)
			assert.Equal(t, "", r.Header.Get("Content-Type"))
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	t.Run("Post json", func(t *testing.T) {
		status, resp, err := New().Send(context.TODO(), http.MethodPost, server.URL+"/contacts", []byte(`{"slug":"signup"}`))
		assert.NoError(t, err)
		assert.Equal(t, 201, status)
		assert.Equal(t, `{"id":"c1"}`, string(resp))
	})

	t.Run("Get without body", func(t *testing.T) {
		status, _, err := New().Send(context.TODO(), http.MethodGet, server.URL+"/forms/public/unknown", nil)
		assert.NoError(t, err)
		assert.Equal(t, 404, status)
	})

	t.Run("Timeout", func(t *testing.T) {
		_, _, err := newJSONHTTPClient(50*time.Millisecond).Send(context.TODO(), http.MethodGet, server.URL+"/slow", nil)
		assert.Error(t, err)
	})

	t.Run("Invalid url", func(t *testing.T) {
		_, _, err := New().Send(context.TODO(), http.MethodGet, "://no-scheme", nil)
		assert.Error(t, err)
	})
}
