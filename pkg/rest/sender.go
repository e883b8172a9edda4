package rest

import (
	"context"
	"net/http"
)

// Sender is the transport boundary of the dispatch pipeline. It sends one
// prepared request and returns the structured response together with the
// fully read body. The client.Client type is the default implementation
// based on the standard net/http package.
//
// The Send call is the single blocking point of a dispatched call,
// everything around it is synchronous in-process computation.
// Context cancellation and deadline errors are surfaced as-is.
type Sender interface {
	Send(ctx context.Context, req *http.Request) (res *http.Response, body []byte, err error)
}
