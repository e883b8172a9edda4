package rest_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/typedrest/go-client/pkg/rest"
)

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "https://api.example.com/items", nil)
	require.NoError(t, err)
	return req
}

func TestNoAuthorizer(t *testing.T) {
	t.Parallel()
	req := newRequest(t)
	assert.NoError(t, rest.NoAuthorizer{}.AuthorizeRequest(req))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestBasicAuthorizer(t *testing.T) {
	t.Parallel()
	req := newRequest(t)
	a := rest.NewBasicAuthorizer("user", "pass")
	assert.NoError(t, a.AuthorizeRequest(req))
	// base64("user:pass")
	assert.Equal(t, "Basic dXNlcjpwYXNz", req.Header.Get("Authorization"))
}

func TestBearerAuthorizer(t *testing.T) {
	t.Parallel()
	a := rest.NewBearerAuthorizer("token-a")
	assert.Equal(t, "token-a", a.Token())

	req := newRequest(t)
	assert.NoError(t, a.AuthorizeRequest(req))
	assert.Equal(t, "Bearer token-a", req.Header.Get("Authorization"))

	a.SetToken("token-b")
	req = newRequest(t)
	assert.NoError(t, a.AuthorizeRequest(req))
	assert.Equal(t, "Bearer token-b", req.Header.Get("Authorization"))
}

func TestOAuth2Authorizer(t *testing.T) {
	t.Parallel()
	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "static-token", TokenType: "Bearer"})
	a := rest.NewOAuth2Authorizer(source)

	req := newRequest(t)
	assert.NoError(t, a.AuthorizeRequest(req))
	assert.Equal(t, "Bearer static-token", req.Header.Get("Authorization"))
}

func TestAuthorizerRunsFirstRegardlessOfOptionOrder(t *testing.T) {
	t.Parallel()
	var observed string
	spy := rest.InterceptorHooks{
		OnRequest: func(_ context.Context, req *http.Request) error {
			observed = req.Header.Get("Authorization")
			return nil
		},
	}

	// interceptors registered before the authorizer option still see the header
	c, transport := mockedRestClient(t,
		rest.WithInterceptors(spy),
		rest.WithAuthorizer(rest.NewBearerAuthorizer("tok")),
	)
	transport.RegisterResponder("GET", "https://api.example.com/items", jsonResponder(200, `{"foo":"bar"}`))

	_, _, err := rest.Get[testStruct](context.Background(), c, "items", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", observed)
}

func TestBearerRotationBetweenCalls(t *testing.T) {
	t.Parallel()
	authorizer := rest.NewBearerAuthorizer("token-a")
	c, transport := mockedRestClient(t, rest.WithAuthorizer(authorizer))

	var seen []string
	transport.RegisterResponder("GET", "https://api.example.com/items", func(req *http.Request) (*http.Response, error) {
		seen = append(seen, req.Header.Get("Authorization"))
		return jsonResponder(200, `{"foo":"bar"}`)(req)
	})

	_, _, err := rest.Get[testStruct](context.Background(), c, "items", nil)
	require.NoError(t, err)

	authorizer.SetToken("token-b")
	_, _, err = rest.Get[testStruct](context.Background(), c, "items", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer token-a", "Bearer token-b"}, seen)
}
