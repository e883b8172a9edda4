package client

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HTTPRequestSpanName is the name of the span created per HTTP attempt.
const HTTPRequestSpanName = "typedrest.go.client.http.request"

// OTelTracer creates one client span per HTTP attempt, retries included.
// Spans carry the request method, full URL and response status code, a
// failed attempt records the error and sets the span status.
func OTelTracer(tracer trace.Tracer) TraceFactory {
	return func() *Trace {
		var span trace.Span
		attempt := 0

		t := &Trace{}
		t.HTTPRequestStart = func(r *http.Request) {
			_, span = tracer.Start(
				r.Context(),
				HTTPRequestSpanName,
				trace.WithSpanKind(trace.SpanKindClient),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.full", r.URL.String()),
					attribute.Int("http.request.resend_count", attempt),
				),
			)
			attempt++
		}
		t.HTTPRequestDone = func(r *http.Response, err error) {
			if span == nil {
				return
			}
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetAttributes(attribute.Int("http.response.status_code", r.StatusCode))
			}
			span.End()
			span = nil
		}
		return t
	}
}
