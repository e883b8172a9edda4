package client_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typedrest/go-client/pkg/client"
)

func TestDefaultRetryCondition(t *testing.T) {
	t.Parallel()
	condition := client.DefaultRetryCondition()

	// network errors retry, except unresolvable hosts
	assert.True(t, condition(nil, errors.New("connection refused")))
	assert.False(t, condition(nil, errors.New(`dial tcp: lookup example.invalid: no such host`)))
	assert.False(t, condition(nil, nil))

	// transient status codes retry
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		assert.True(t, condition(&http.Response{StatusCode: code}, nil), "status %d", code)
	}
	for _, code := range []int{200, 204, 400, 401, 404, 409} {
		assert.False(t, condition(&http.Response{StatusCode: code}, nil), "status %d", code)
	}
}

func TestRetryCount(t *testing.T) {
	t.Parallel()
	c, transport := client.NewMockedClient()
	transport.RegisterResponder("GET", "https://example.com", httpmock.NewStringResponder(504, "try again"))

	res, _, err := c.Send(context.Background(), newGetRequest(t, "https://example.com"))
	assert.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 504, res.StatusCode)

	// the initial attempt plus RetriesCount retries
	assert.Equal(t, client.RetriesCount+1, transport.GetCallCountInfo()["GET https://example.com"])
}

func TestRetrySucceedsMidway(t *testing.T) {
	t.Parallel()
	c, transport := client.NewMockedClient()
	attempts := 0
	transport.RegisterResponder("GET", "https://example.com", func(*http.Request) (*http.Response, error) {
		attempts++
		if attempts < 3 {
			return httpmock.NewStringResponse(503, ""), nil
		}
		return httpmock.NewStringResponse(200, "finally"), nil
	})

	res, body, err := c.Send(context.Background(), newGetRequest(t, "https://example.com"))
	assert.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, []byte("finally"), body)
	assert.Equal(t, 3, attempts)
}

func TestNoRetry(t *testing.T) {
	t.Parallel()
	c, transport := client.NewMockedClient()
	c = c.WithRetry(client.NoRetry())
	transport.RegisterResponder("GET", "https://example.com", httpmock.NewStringResponder(504, ""))

	res, _, err := c.Send(context.Background(), newGetRequest(t, "https://example.com"))
	assert.NoError(t, err)
	assert.Equal(t, 504, res.StatusCode)
	assert.Equal(t, 1, transport.GetCallCountInfo()["GET https://example.com"])
}

func TestRetryTraceHooks(t *testing.T) {
	t.Parallel()
	var attempts []int
	var delays []time.Duration

	c, transport := client.NewMockedClient()
	c = c.WithTrace(func() *client.Trace {
		t := &client.Trace{}
		t.HTTPRequestRetry = func(attempt int, delay time.Duration) {
			attempts = append(attempts, attempt)
			delays = append(delays, delay)
		}
		return t
	})
	transport.RegisterResponder("GET", "https://example.com", httpmock.NewStringResponder(504, ""))

	_, _, err := c.Send(context.Background(), newGetRequest(t, "https://example.com"))
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, attempts)
	for _, delay := range delays {
		assert.Equal(t, time.Millisecond, delay)
	}
}

func TestRetryRewindsBody(t *testing.T) {
	t.Parallel()
	var bodies []string

	c, transport := client.NewMockedClient()
	transport.RegisterResponder("POST", "https://example.com", func(req *http.Request) (*http.Response, error) {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		bodies = append(bodies, string(body))
		if len(bodies) < 2 {
			return httpmock.NewStringResponse(502, ""), nil
		}
		return httpmock.NewStringResponse(200, "ok"), nil
	})

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, "https://example.com", bytes.NewReader([]byte("payload")))
	require.NoError(t, err)

	res, _, err := c.Send(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, []string{"payload", "payload"}, bodies)
}

func TestNewBackoff(t *testing.T) {
	t.Parallel()
	retry := client.RetryConfig{
		Count:         3,
		TotalTimeout:  time.Minute,
		WaitTimeStart: 100 * time.Millisecond,
		WaitTimeMax:   time.Second,
	}
	b := retry.NewBackoff()
	assert.Equal(t, 100*time.Millisecond, b.NextBackOff())
	assert.Equal(t, 200*time.Millisecond, b.NextBackOff())
	assert.Equal(t, 400*time.Millisecond, b.NextBackOff())
	assert.Equal(t, 800*time.Millisecond, b.NextBackOff())
	assert.Equal(t, time.Second, b.NextBackOff())
	assert.Equal(t, time.Second, b.NextBackOff())
}
