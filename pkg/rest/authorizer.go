package rest

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

// Authorizer stamps authentication material onto an outgoing request.
// An Authorizer supplied at Client construction is installed as the first
// registered interceptor.
type Authorizer interface {
	AuthorizeRequest(req *http.Request) error
}

// NoAuthorizer leaves the request untouched.
type NoAuthorizer struct{}

func (NoAuthorizer) AuthorizeRequest(*http.Request) error {
	return nil
}

// BasicAuthorizer sets the Authorization header to a Basic credential.
// The credential is computed once at construction and reused on every call.
type BasicAuthorizer struct {
	header string
}

func NewBasicAuthorizer(username, password string) *BasicAuthorizer {
	credential := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return &BasicAuthorizer{header: "Basic " + credential}
}

func (a *BasicAuthorizer) AuthorizeRequest(req *http.Request) error {
	req.Header.Set("Authorization", a.header)
	return nil
}

// BearerAuthorizer sets the Authorization header to a Bearer token.
// The token is re-read on every call, so SetToken rotates the token for
// subsequent calls without reconstructing the authorizer.
type BearerAuthorizer struct {
	mu    sync.RWMutex
	token string
}

func NewBearerAuthorizer(token string) *BearerAuthorizer {
	return &BearerAuthorizer{token: token}
}

// Token returns the current token.
func (a *BearerAuthorizer) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// SetToken replaces the token, it takes effect on the next call.
func (a *BearerAuthorizer) SetToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
}

func (a *BearerAuthorizer) AuthorizeRequest(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+a.Token())
	return nil
}

// OAuth2Authorizer reads the current token from an oauth2.TokenSource.
// Expired tokens are refreshed by the source transparently.
type OAuth2Authorizer struct {
	source oauth2.TokenSource
}

func NewOAuth2Authorizer(source oauth2.TokenSource) *OAuth2Authorizer {
	return &OAuth2Authorizer{source: source}
}

func (a *OAuth2Authorizer) AuthorizeRequest(req *http.Request) error {
	token, err := a.source.Token()
	if err != nil {
		return fmt.Errorf("cannot obtain OAuth2 token: %w", err)
	}
	token.SetAuthHeader(req)
	return nil
}
