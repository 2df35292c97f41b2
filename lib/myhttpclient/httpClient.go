package myhttpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MarcGrol/benefitcheckout/lib/mycontext"
	"github.com/MarcGrol/benefitcheckout/lib/mylog"
)

const maxResponseBytes = 1 << 20

type jsonHTTPClient struct {
	logger mylog.Logger
	client *http.Client
}

func newJSONHTTPClient(timeout time.Duration) HTTPSender {
	return &jsonHTTPClient{
		logger: mylog.New("httpclient"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c jsonHTTPClient) Send(ctx context.Context, method string, url string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("error creating http request for %s %s: %s", method, url, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if requestID := mycontext.RequestID(ctx); requestID != "" {
		httpReq.Header.Set("X-Request-ID", requestID)
	}

	started := time.Now()
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("error sending %s %s: %s", method, url, err)
	}
	defer httpResp.Body.Close()

	respPayload, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("error reading response %s %s: %s", method, url, err)
	}

	c.logger.Log(ctx, "", mylog.SeverityDebug, "HTTP %s %s -> %d (%s)", method, url, httpResp.StatusCode, time.Since(started))

	return httpResp.StatusCode, respPayload, nil
}
