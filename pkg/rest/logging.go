package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// LoggingInterceptor logs every dispatched request and received response.
//
// At the default verbosity only the method, URL and status code are logged
// at the info level. With Verbose set, headers, cookies and a best-effort
// pretty-printed JSON body are additionally logged at the trace level,
// falling back to a quoted raw string if the body is not valid JSON.
type LoggingInterceptor struct {
	Logger  zerolog.Logger
	Verbose bool
}

func (i LoggingInterceptor) InterceptRequest(_ context.Context, req *http.Request) error {
	i.Logger.Info().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("sending request")

	if i.Verbose {
		evt := i.Logger.Trace().
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Interface("headers", flattenHeader(req.Header))
		if cookies := req.Cookies(); len(cookies) > 0 {
			names := make([]string, len(cookies))
			for n, cookie := range cookies {
				names[n] = cookie.Name
			}
			evt = evt.Strs("cookies", names)
		}
		if body := requestBody(req); body != nil {
			evt = evt.Str("body", prettyBody(body))
		}
		evt.Msg("request detail")
	}
	return nil
}

// requestBody reads a replayable copy of the request payload, nil if the
// request has no rewindable body.
func requestBody(req *http.Request) []byte {
	if req.GetBody == nil {
		return nil
	}
	reader, err := req.GetBody()
	if err != nil {
		return nil
	}
	defer reader.Close()
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil
	}
	return body
}

func (i LoggingInterceptor) ObserveResponse(_ context.Context, res *http.Response, body []byte) {
	i.Logger.Info().
		Int("status", res.StatusCode).
		Str("url", requestURL(res)).
		Msg("received response")

	if i.Verbose {
		i.Logger.Trace().
			Int("status", res.StatusCode).
			Str("url", requestURL(res)).
			Interface("headers", flattenHeader(res.Header)).
			Str("body", prettyBody(body)).
			Msg("response detail")
	}
}

func requestURL(res *http.Response) string {
	if res.Request == nil || res.Request.URL == nil {
		return ""
	}
	return res.Request.URL.String()
}

func flattenHeader(header http.Header) map[string]string {
	out := make(map[string]string, len(header))
	for k, values := range header {
		if len(values) > 0 {
			out[k] = values[0]
		}
	}
	return out
}

func prettyBody(body []byte) string {
	var value any
	if err := json.Unmarshal(body, &value); err == nil {
		if out, err := json.MarshalIndent(value, "", "  "); err == nil {
			return string(out)
		}
	}
	return fmt.Sprintf("%q", body)
}
