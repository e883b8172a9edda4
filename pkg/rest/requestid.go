package rest

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// DefaultRequestIDHeader is the header stamped by the RequestIDInterceptor.
const DefaultRequestIDHeader = "X-Request-Id"

// RequestIDInterceptor stamps a unique request ID header on every outgoing
// request. An ID already present, for example one propagated from an upstream
// request, is kept.
type RequestIDInterceptor struct {
	// Header overrides DefaultRequestIDHeader if set.
	Header string
}

func (i RequestIDInterceptor) InterceptRequest(_ context.Context, req *http.Request) error {
	name := i.Header
	if name == "" {
		name = DefaultRequestIDHeader
	}
	if req.Header.Get(name) == "" {
		req.Header.Set(name, uuid.NewString())
	}
	return nil
}

func (i RequestIDInterceptor) ObserveResponse(context.Context, *http.Response, []byte) {}
