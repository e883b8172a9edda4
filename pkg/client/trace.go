package client

import (
	"net/http"
	"net/http/httptrace"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Trace is a set of hooks to run at various stages of an outgoing request.
// It extends the native httptrace.ClientTrace with request-level hooks.
type Trace struct {
	httptrace.ClientTrace // native, low level trace
	// HTTPRequestStart is called when the request begins. It includes redirects and retries.
	HTTPRequestStart func(request *http.Request)
	// HTTPRequestDone is called when the request completes. It includes redirects and retries.
	HTTPRequestDone func(response *http.Response, err error)
	// HTTPRequestRetry is called before the retry delay.
	HTTPRequestRetry func(attempt int, delay time.Duration)
	// RequestProcessed is called when the Send method is done, with the final error, if any.
	RequestProcessed func(response *http.Response, err error)
}

// TraceFactory creates Trace hooks for a request.
type TraceFactory func() *Trace

// LogTracer logs the lifecycle of every request: start, done, retries.
// Events carry a per-process request sequence number to correlate lines
// of concurrent requests.
func LogTracer(logger zerolog.Logger) TraceFactory {
	var idGenerator uint64
	return func() *Trace {
		requestID := atomic.AddUint64(&idGenerator, 1)

		var req *http.Request
		var startTime time.Time

		t := &Trace{}
		t.HTTPRequestStart = func(r *http.Request) {
			req = r
			startTime = time.Now()
			logger.Debug().
				Uint64("request_id", requestID).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Msg("http request start")
		}
		t.HTTPRequestDone = func(r *http.Response, err error) {
			evt := logger.Debug().
				Uint64("request_id", requestID).
				Dur("elapsed", time.Since(startTime))
			if req != nil {
				evt = evt.Str("method", req.Method).Str("url", req.URL.String())
			}
			if err != nil {
				evt = evt.Err(err)
			} else {
				evt = evt.Int("status", r.StatusCode)
			}
			evt.Msg("http request done")
		}
		t.HTTPRequestRetry = func(attempt int, delay time.Duration) {
			logger.Warn().
				Uint64("request_id", requestID).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("http request retry")
		}
		return t
	}
}
