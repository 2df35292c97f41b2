package mycontext

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// CtxTraceContext is a context key for the cloud trace id (used by mylog)
type CtxTraceContext struct{}

// CtxRequestID is a context key for the id that correlates all log lines of a single request
type CtxRequestID struct{}

func ContextFromHTTPRequest(r *http.Request) context.Context {
	// header format: TRACE_ID/SPAN_ID;o=TRACE_TRUE
	traceID, _, _ := strings.Cut(r.Header.Get("X-Cloud-Trace-Context"), "/")

	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}

	ctx := context.WithValue(r.Context(), CtxTraceContext{}, traceID)
	ctx = context.WithValue(ctx, CtxRequestID{}, requestID)

	return ctx
}

func TraceID(c context.Context) string {
	trace, _ := c.Value(CtxTraceContext{}).(string)
	return trace
}

func RequestID(c context.Context) string {
	id, _ := c.Value(CtxRequestID{}).(string)
	return id
}
