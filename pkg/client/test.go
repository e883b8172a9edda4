package client

import (
	"os"

	"github.com/jarcoal/httpmock"
	"github.com/rs/zerolog"
)

// NewTestClient creates the Client for tests.
//
// If the TEST_HTTP_CLIENT_VERBOSE environment variable is set to "true",
// then the lifecycle of all HTTP requests is logged to stderr.
func NewTestClient() Client {
	c := New()
	if os.Getenv("TEST_HTTP_CLIENT_VERBOSE") == "true" { //nolint:forbidigo
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
		c = c.WithTrace(LogTracer(logger))
	}
	return c
}

// NewMockedClient creates the Client with a mocked HTTP transport.
func NewMockedClient() (Client, *httpmock.MockTransport) {
	transport := httpmock.NewMockTransport()
	return NewTestClient().WithTransport(transport).WithRetry(TestingRetry()), transport
}
