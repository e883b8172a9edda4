// Package client provides the default HTTP transport for the rest package.
//
// Client implements the rest.Sender interface on top of the standard
// net/http package and adds retry, tracing and response decoding support.
// The zero value is not usable, use New.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strings"
	"time"
)

// UserAgent is the default User-Agent header value.
const UserAgent = "typedrest-go-client"

// Client is a default and configurable implementation of the rest.Sender
// interface by the Go native http.Client. It supports retry and tracing.
type Client struct {
	transport    http.RoundTripper
	header       http.Header
	retry        RetryConfig
	traceFactory TraceFactory
	jar          http.CookieJar
}

// New creates a new HTTP Client.
func New() Client {
	c := Client{transport: DefaultTransport(), header: make(http.Header), retry: DefaultRetry()}
	c.header.Set("User-Agent", UserAgent)
	c.header.Set("Accept-Encoding", "gzip, br")
	return c
}

// WithUserAgent returns a clone of the Client with the user agent set.
func (c Client) WithUserAgent(v string) Client {
	c.header = c.header.Clone()
	c.header.Set("User-Agent", v)
	return c
}

// WithHeader returns a clone of the Client with a common header set.
func (c Client) WithHeader(key, value string) Client {
	c.header = c.header.Clone()
	c.header.Set(key, value)
	return c
}

// WithTransport returns a clone of the Client with the HTTP transport set.
func (c Client) WithTransport(transport http.RoundTripper) Client {
	if transport == nil || transport == http.RoundTripper(nil) {
		panic(fmt.Errorf("transport cannot be nil"))
	}
	c.transport = transport
	return c
}

// WithRetry returns a clone of the Client with the retry config set.
func (c Client) WithRetry(retry RetryConfig) Client {
	c.retry = retry
	return c
}

// WithTrace returns a clone of the Client with trace hooks set.
func (c Client) WithTrace(fn TraceFactory) Client {
	c.traceFactory = fn
	return c
}

// WithCookieJar returns a clone of the Client with the cookie jar set.
// A rest.CookieStore can be attached directly.
func (c Client) WithCookieJar(jar http.CookieJar) Client {
	c.jar = jar
	return c
}

// Send sends a prepared request and returns the response together with the
// fully read and decoded body. It implements the rest.Sender interface.
//
// Context cancellation and deadline errors are returned unchanged, so the
// caller can match them with errors.Is. Other transport errors are wrapped
// with the request method and URL.
func (c Client) Send(ctx context.Context, req *http.Request) (*http.Response, []byte, error) {
	// Method cannot be called on an empty value
	if c.transport == nil {
		panic(fmt.Errorf("client value is not initialized"))
	}

	// Init trace
	var trace *Trace
	if c.traceFactory != nil {
		if trace = c.traceFactory(); trace != nil {
			ctx = httptrace.WithClientTrace(ctx, &trace.ClientTrace)
			req = req.WithContext(ctx)
		}
	}

	// Client-level headers fill the gaps only, request headers win
	for k, values := range c.header {
		if req.Header.Get(k) == "" {
			for _, v := range values {
				req.Header.Add(k, v)
			}
		}
	}

	nativeClient := http.Client{
		Jar:       c.jar,
		Transport: retryRoundTripper{retry: c.retry, trace: trace, wrapped: c.transport},
	}

	startedAt := time.Now()
	res, err := nativeClient.Do(req)
	if err != nil {
		err = handleSendError(startedAt, req, err)
		if trace != nil && trace.RequestProcessed != nil {
			trace.RequestProcessed(nil, err)
		}
		return nil, nil, err
	}

	body, err := readBody(res)
	if trace != nil && trace.RequestProcessed != nil {
		trace.RequestProcessed(res, err)
	}
	if err != nil {
		return res, nil, err
	}
	return res, body, nil
}

// readBody reads the whole response body, decoding the content encoding.
func readBody(res *http.Response) ([]byte, error) {
	defer res.Body.Close()
	reader, err := decodeBody(res.Body, res.Header.Get("Content-Encoding"))
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("cannot read response body: %w", err)
	}
	return body, nil
}

func handleSendError(startedAt time.Time, req *http.Request, err error) error {
	// Cancellation and deadline pass through unchanged
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf(`request %s "%s" failed after %s: %w`, strings.ToUpper(urlErr.Op), urlErr.URL, time.Since(startedAt).Round(time.Millisecond), urlErr.Err)
	}

	return err
}
