package rest

import (
	"context"
	"net/http"
	"sync"
)

// Interceptor observes and mutates requests around every dispatched call.
//
// InterceptRequest hooks run in registration order before the transport
// call, each receiving the same request draft sequentially. ObserveResponse
// hooks run in reverse registration order after the response is received,
// so the interceptor registered first, typically the authorizer, is the
// last to see the response on the way back.
//
// Interceptor errors are not specially caught, they abort the call as-is.
type Interceptor interface {
	// InterceptRequest may mutate the outgoing request.
	InterceptRequest(ctx context.Context, req *http.Request) error
	// ObserveResponse observes the response and its body, it must not mutate them.
	ObserveResponse(ctx context.Context, res *http.Response, body []byte)
}

// InterceptorHooks adapts plain functions to the Interceptor interface.
// A nil hook is skipped.
type InterceptorHooks struct {
	OnRequest  func(ctx context.Context, req *http.Request) error
	OnResponse func(ctx context.Context, res *http.Response, body []byte)
}

func (h InterceptorHooks) InterceptRequest(ctx context.Context, req *http.Request) error {
	if h.OnRequest == nil {
		return nil
	}
	return h.OnRequest(ctx, req)
}

func (h InterceptorHooks) ObserveResponse(ctx context.Context, res *http.Response, body []byte) {
	if h.OnResponse != nil {
		h.OnResponse(ctx, res, body)
	}
}

// interceptorChain is an append-only interceptor list shared by concurrent
// calls. Appends are mutually exclusive with reads, a dispatch iterates over
// a snapshot, so an append mid-flight does not affect an already-iterating call.
type interceptorChain struct {
	mu    sync.Mutex
	items []Interceptor
}

func (c *interceptorChain) append(interceptors ...Interceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, interceptors...)
}

func (c *interceptorChain) prepend(interceptor Interceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]Interceptor{interceptor}, c.items...)
}

func (c *interceptorChain) snapshot() []Interceptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Interceptor, len(c.items))
	copy(out, c.items)
	return out
}

// authorizerInterceptor adapts an Authorizer to the Interceptor interface.
// It delegates header stamping on pre-send and has no post-receive behavior.
type authorizerInterceptor struct {
	authorizer Authorizer
}

func (i authorizerInterceptor) InterceptRequest(_ context.Context, req *http.Request) error {
	return i.authorizer.AuthorizeRequest(req)
}

func (i authorizerInterceptor) ObserveResponse(context.Context, *http.Response, []byte) {}
