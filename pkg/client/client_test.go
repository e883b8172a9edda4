package client_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typedrest/go-client/pkg/client"
)

func newGetRequest(t *testing.T, url string) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	require.NoError(t, err)
	return req
}

func TestSend(t *testing.T) {
	t.Parallel()
	c, transport := client.NewMockedClient()
	transport.RegisterResponder("GET", "https://example.com", httpmock.NewStringResponder(200, "test"))

	res, body, err := c.Send(context.Background(), newGetRequest(t, "https://example.com"))
	assert.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, []byte("test"), body)
	assert.Equal(t, 1, transport.GetCallCountInfo()["GET https://example.com"])
}

func TestSendEmptyValuePanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		var c client.Client
		_, _, _ = c.Send(context.Background(), newGetRequest(t, "https://example.com"))
	})
}

func TestWithTransportNilPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		client.New().WithTransport(nil)
	})
}

func TestClientHeadersFillGapsOnly(t *testing.T) {
	t.Parallel()
	var received http.Header
	c, transport := client.NewMockedClient()
	c = c.WithHeader("X-Common", "client").WithHeader("X-Overridden", "client")
	transport.RegisterResponder("GET", "https://example.com", func(req *http.Request) (*http.Response, error) {
		received = req.Header.Clone()
		return httpmock.NewStringResponse(200, "ok"), nil
	})

	req := newGetRequest(t, "https://example.com")
	req.Header.Set("X-Overridden", "request")
	_, _, err := c.Send(context.Background(), req)
	assert.NoError(t, err)

	assert.Equal(t, client.UserAgent, received.Get("User-Agent"))
	assert.Equal(t, "client", received.Get("X-Common"))
	assert.Equal(t, "request", received.Get("X-Overridden"))
}

func TestSendWrapsTransportError(t *testing.T) {
	t.Parallel()
	c, transport := client.NewMockedClient()
	c = c.WithRetry(client.NoRetry())
	transport.RegisterResponder("GET", "https://example.com", httpmock.NewErrorResponder(errors.New("connection refused")))

	res, body, err := c.Send(context.Background(), newGetRequest(t, "https://example.com"))
	assert.Nil(t, res)
	assert.Nil(t, body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `request GET "https://example.com"`)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestSendCanceledContext(t *testing.T) {
	t.Parallel()
	c, transport := client.NewMockedClient()
	transport.RegisterResponder("GET", "https://example.com", func(req *http.Request) (*http.Response, error) {
		return nil, req.Context().Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://example.com", nil)
	require.NoError(t, err)

	_, _, err = c.Send(ctx, req)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGzipDecoding(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte("compressed payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	c, transport := client.NewMockedClient()
	transport.RegisterResponder("GET", "https://example.com", func(*http.Request) (*http.Response, error) {
		res := httpmock.NewBytesResponse(200, buf.Bytes())
		res.Header.Set("Content-Encoding", "gzip")
		return res, nil
	})

	_, body, err := c.Send(context.Background(), newGetRequest(t, "https://example.com"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("compressed payload"), body)
}

func TestBrotliDecoding(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	_, err := w.Write([]byte("compressed payload"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	c, transport := client.NewMockedClient()
	transport.RegisterResponder("GET", "https://example.com", func(*http.Request) (*http.Response, error) {
		res := httpmock.NewBytesResponse(200, buf.Bytes())
		res.Header.Set("Content-Encoding", "br")
		return res, nil
	})

	_, body, err := c.Send(context.Background(), newGetRequest(t, "https://example.com"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("compressed payload"), body)
}

func TestInvalidGzipBody(t *testing.T) {
	t.Parallel()
	c, transport := client.NewMockedClient()
	transport.RegisterResponder("GET", "https://example.com", func(*http.Request) (*http.Response, error) {
		res := httpmock.NewStringResponse(200, "not gzip")
		res.Header.Set("Content-Encoding", "gzip")
		return res, nil
	})

	res, body, err := c.Send(context.Background(), newGetRequest(t, "https://example.com"))
	require.NotNil(t, res)
	assert.Nil(t, body)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "gzip")
}
