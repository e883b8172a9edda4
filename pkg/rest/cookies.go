package rest

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
)

// CookieStore is an enumerable cookie jar.
//
// The standard cookiejar.Jar can only be asked for the cookies of a concrete
// URL, so the store additionally records every URL it has stored cookies for,
// which makes All and Clear possible. It implements http.CookieJar and can be
// attached to the transport layer directly.
type CookieStore struct {
	mu   sync.Mutex
	jar  http.CookieJar
	urls map[string]*url.URL
}

func NewCookieStore() *CookieStore {
	return &CookieStore{jar: newJar(), urls: make(map[string]*url.URL)}
}

// SetCookies implements http.CookieJar.
func (s *CookieStore) SetCookies(u *url.URL, cookies []*http.Cookie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urls[u.Scheme+"://"+u.Host] = u
	s.jar.SetCookies(u, cookies)
}

// Cookies implements http.CookieJar.
func (s *CookieStore) Cookies(u *url.URL) []*http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jar.Cookies(u)
}

// All returns the cookies of every URL the store has seen.
func (s *CookieStore) All() []*http.Cookie {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*http.Cookie
	for _, u := range s.urls {
		out = append(out, s.jar.Cookies(u)...)
	}
	return out
}

// Clear removes all cookies from the store.
func (s *CookieStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jar = newJar()
	s.urls = make(map[string]*url.URL)
}

func newJar() http.CookieJar {
	// cookiejar.New never fails with default options
	jar, _ := cookiejar.New(nil)
	return jar
}
