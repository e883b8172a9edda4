package rest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HeaderProvider generates additional headers for the final request URL.
// It must be a pure function of the URL, without hidden shared state.
type HeaderProvider func(u *url.URL) map[string]string

// Client dispatches typed REST calls against a base URL.
//
// A Client is constructed once per logical backend and is safe for
// concurrent use, each call owns its own request and response values.
// Interceptors may be appended at any time after construction, see Use.
type Client struct {
	baseURL        *url.URL
	sender         Sender
	errorBody      Deserializer
	authorizer     Authorizer
	headerProvider HeaderProvider
	cookies        *CookieStore
	interceptors   interceptorChain
}

// ClientOption configures a Client at construction.
type ClientOption func(*Client)

// WithErrorBodyDeserializer sets the deserializer used for the body of
// non-success responses. It is distinct from the per-call success
// deserializer and its output is carried by FailedCallError.Payload.
func WithErrorBodyDeserializer(d Deserializer) ClientOption {
	return func(c *Client) {
		c.errorBody = d
	}
}

// WithAuthorizer installs the authorizer as the first registered
// interceptor, regardless of option order, so its header mutation is
// visible to all other interceptors and it is the last to observe the
// response.
func WithAuthorizer(a Authorizer) ClientOption {
	return func(c *Client) {
		c.authorizer = a
	}
}

// WithHeaderProvider sets a callback generating headers from the final
// request URL. Generated headers win over per-call headers on key collision.
func WithHeaderProvider(fn HeaderProvider) ClientOption {
	return func(c *Client) {
		c.headerProvider = fn
	}
}

// WithCookieStore attaches a cookie store. The store only takes effect on
// traffic if the same store is attached to the transport as its cookie jar.
func WithCookieStore(store *CookieStore) ClientOption {
	return func(c *Client) {
		c.cookies = store
	}
}

// WithInterceptors registers interceptors after the authorizer, if any.
func WithInterceptors(interceptors ...Interceptor) ClientOption {
	return func(c *Client) {
		c.interceptors.append(interceptors...)
	}
}

// NewClient creates a Client calling the given base URL through the sender.
func NewClient(baseURL string, sender Sender, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf(`base url "%s" is not valid: %w`, baseURL, err)
	}
	// Normalize the base path, so base.ResolveReference(...) will work
	base.Path = strings.TrimRight(base.Path, "/") + "/"
	c := &Client{baseURL: base, sender: sender}
	for _, opt := range opts {
		opt(c)
	}
	// The authorizer heads the chain regardless of option order
	if c.authorizer != nil {
		c.interceptors.prepend(authorizerInterceptor{authorizer: c.authorizer})
	}
	return c, nil
}

// Use appends interceptors to the chain. Registration is append-only and
// thread-safe, an interceptor appended mid-flight is visible to dispatches
// that have not yet reached the chain iteration point.
func (c *Client) Use(interceptors ...Interceptor) {
	c.interceptors.append(interceptors...)
}

// BaseURL returns a copy of the base URL.
func (c *Client) BaseURL() *url.URL {
	clone := *c.baseURL
	return &clone
}

// Get sends a GET request and decodes the canonical success body into R.
// A nil *R with a nil error means the response intentionally had no body.
func Get[R any](ctx context.Context, c *Client, path string, opt *Options) (*R, int, error) {
	return call[R](ctx, c, http.MethodGet, path, nil, opt)
}

// Post sends a POST request with an optional JSON body and decodes the
// canonical success body into R.
func Post[R any](ctx context.Context, c *Client, path string, body any, opt *Options) (*R, int, error) {
	return call[R](ctx, c, http.MethodPost, path, body, opt)
}

// Put sends a PUT request with an optional JSON body and decodes the
// canonical success body into R.
func Put[R any](ctx context.Context, c *Client, path string, body any, opt *Options) (*R, int, error) {
	return call[R](ctx, c, http.MethodPut, path, body, opt)
}

// Patch sends a PATCH request with an optional JSON body and decodes the
// canonical success body into R.
func Patch[R any](ctx context.Context, c *Client, path string, body any, opt *Options) (*R, int, error) {
	return call[R](ctx, c, http.MethodPatch, path, body, opt)
}

// Delete sends a DELETE request with an optional JSON body and decodes the
// canonical success body into R.
func Delete[R any](ctx context.Context, c *Client, path string, body any, opt *Options) (*R, int, error) {
	return call[R](ctx, c, http.MethodDelete, path, body, opt)
}

func call[R any](ctx context.Context, c *Client, method, path string, body any, opt *Options) (*R, int, error) {
	payload, err := marshalBody(body)
	if err != nil {
		return nil, 0, err
	}
	out, status, err := c.Do(ctx, method, path, payload, JSONDeserializer[R]{Format: opt.dateFormat()}, opt)
	if err != nil || out == nil {
		return nil, status, err
	}
	return out.(*R), status, nil
}

// Get sends a GET request and returns the status code only.
func (c *Client) Get(ctx context.Context, path string, opt *Options) (int, error) {
	_, status, err := c.Do(ctx, http.MethodGet, path, nil, VoidDeserializer{}, opt)
	return status, err
}

// Post sends a POST request with an optional JSON body and returns the status code only.
func (c *Client) Post(ctx context.Context, path string, body any, opt *Options) (int, error) {
	return c.statusOnly(ctx, http.MethodPost, path, body, opt)
}

// Put sends a PUT request with an optional JSON body and returns the status code only.
func (c *Client) Put(ctx context.Context, path string, body any, opt *Options) (int, error) {
	return c.statusOnly(ctx, http.MethodPut, path, body, opt)
}

// Patch sends a PATCH request with an optional JSON body and returns the status code only.
func (c *Client) Patch(ctx context.Context, path string, body any, opt *Options) (int, error) {
	return c.statusOnly(ctx, http.MethodPatch, path, body, opt)
}

// Delete sends a DELETE request with an optional JSON body and returns the status code only.
func (c *Client) Delete(ctx context.Context, path string, body any, opt *Options) (int, error) {
	return c.statusOnly(ctx, http.MethodDelete, path, body, opt)
}

func (c *Client) statusOnly(ctx context.Context, method, path string, body any, opt *Options) (int, error) {
	payload, err := marshalBody(body)
	if err != nil {
		return 0, err
	}
	_, status, err := c.Do(ctx, method, path, payload, VoidDeserializer{}, opt)
	return status, err
}

// GetRaw sends a GET request and returns the canonical success body unchanged.
func (c *Client) GetRaw(ctx context.Context, path string, opt *Options) ([]byte, int, error) {
	out, status, err := c.Do(ctx, http.MethodGet, path, nil, RawDeserializer{}, opt)
	if err != nil || out == nil {
		return nil, status, err
	}
	return out.([]byte), status, nil
}

// Do executes one REST call end to end and is the single entry point behind
// all verb helpers: URL construction, query encoding, header assembly,
// payload attachment, interceptor chain, transport call, status and MIME
// validation and body deserialization, in that strict order.
//
// An empty path means the base URL is called directly. The returned value
// is the deserializer output for the canonical success code, nil otherwise.
func (c *Client) Do(ctx context.Context, method, path string, payload []byte, des Deserializer, opt *Options) (any, int, error) {
	// URL construction
	u, err := c.resolveURL(path)
	if err != nil {
		return nil, 0, err
	}

	// Query encoding
	if params := opt.queryParams(); len(params) > 0 {
		query := make(url.Values, len(params))
		for k, v := range params {
			query.Set(k, v)
		}
		u.RawQuery = query.Encode()
		if _, err := url.ParseRequestURI(u.String()); err != nil {
			return nil, 0, &InvalidQueryParameterError{Err: err}
		}
	}

	// Request creation, cache policy is the protocol default,
	// the per-call timeout bounds the transport call
	ctx, cancel := context.WithTimeout(ctx, opt.timeout())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf(`cannot create request %s "%s": %w`, method, u.String(), err)
	}

	// Header assembly, later sources win on key collision:
	// deserializer Accept default < per-call headers < generated headers
	req.Header.Set("Accept", des.AcceptHeader())
	for k, v := range opt.header() {
		req.Header.Set(k, v)
	}
	if c.headerProvider != nil {
		for k, v := range c.headerProvider(req.URL) {
			req.Header.Set(k, v)
		}
	}

	// Payload attachment. Request encoding and response decoding are
	// independent axes, the Content-Type is JSON regardless of the
	// success deserializer Accept type.
	if payload != nil {
		req.Header.Set("Content-Type", MimeApplicationJSON)
		req.ContentLength = int64(len(payload))
		req.Body = io.NopCloser(bytes.NewReader(payload))
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(payload)), nil
		}
	}

	// Pre-send interceptors, registration order
	interceptors := c.interceptors.snapshot()
	for _, interceptor := range interceptors {
		if err := interceptor.InterceptRequest(ctx, req); err != nil {
			return nil, 0, err
		}
	}

	// Transport call, the only blocking point of the pipeline.
	// Cancellation and transport errors pass through unchanged. A response
	// whose body could not be read arrives as a non-nil response with an
	// error and cannot be interpreted, so it maps to BadResponseError.
	res, body, err := c.sender.Send(ctx, req)
	if err != nil {
		if res != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			return nil, 0, &BadResponseError{Response: res, Body: body, Err: err}
		}
		return nil, 0, err
	}
	if res == nil {
		return nil, 0, &BadResponseError{Body: body}
	}

	// Post-receive interceptors, reverse registration order
	for i := len(interceptors) - 1; i >= 0; i-- {
		interceptors[i].ObserveResponse(ctx, res, body)
	}

	status := res.StatusCode

	// An explicit status expectation is the sole arbiter of acceptability
	// and short-circuits all further processing
	if !opt.expects(status) {
		return nil, status, &UnexpectedStatusCodeError{StatusCode: status}
	}

	// Bodyless short-circuit, the only path that skips MIME validation
	if _, void := des.(VoidDeserializer); void || IsNoContent(status) {
		return nil, status, nil
	}

	// An empty body at a content-bearing status is a failure by itself
	if len(body) == 0 {
		return nil, status, &FailedCallError{Response: res, StatusCode: status}
	}

	// MIME validation
	if contentType := res.Header.Get("Content-Type"); !IsKnownMime(contentType) {
		return nil, status, &InvalidMimeTypeError{MimeType: contentType}
	}

	// Success path, only the canonical code carries a decodable body
	if IsSuccess(status) {
		if status != StatusOK {
			return nil, status, nil
		}
		out, err := des.Deserialize(body)
		if err != nil {
			return nil, status, &MalformedResponseError{Response: res, Body: body, Err: err}
		}
		return out, status, nil
	}

	// Error path, decode the error body if a deserializer is configured
	if c.errorBody != nil {
		parsed, err := c.errorBody.Deserialize(body)
		if err != nil {
			return nil, status, &MalformedResponseError{Response: res, Body: body, Err: err}
		}
		return nil, status, &FailedCallError{Response: res, StatusCode: status, Payload: parsed}
	}
	return nil, status, &FailedCallError{Response: res, StatusCode: status}
}

// Cookies returns the stored cookies for the URL, nil without a cookie store.
func (c *Client) Cookies(u *url.URL) []*http.Cookie {
	if c.cookies == nil {
		return nil
	}
	return c.cookies.Cookies(u)
}

// AllCookies returns all stored cookies, nil without a cookie store.
func (c *Client) AllCookies() []*http.Cookie {
	if c.cookies == nil {
		return nil
	}
	return c.cookies.All()
}

// ClearCookies removes all stored cookies, a no-op without a cookie store.
func (c *Client) ClearCookies() {
	if c.cookies != nil {
		c.cookies.Clear()
	}
}

func (c *Client) resolveURL(path string) (*url.URL, error) {
	clone := *c.baseURL
	if path == "" {
		return &clone, nil
	}
	ref, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, fmt.Errorf(`path "%s" is not valid: %w`, path, err)
	}
	return clone.ResolveReference(ref), nil
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	if v, ok := body.([]byte); ok {
		return v, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("cannot encode request body: %w", err)
	}
	return data, nil
}
