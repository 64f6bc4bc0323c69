package client

import (
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// CookieJar implements http.CookieJar for storing cookies in memory.
// A cookie that arrives empty, with a negative Max-Age or an expiry in the past
// removes the stored cookie of the same name.
type CookieJar struct {
	log *slog.Logger
	mu  sync.Mutex
	jar map[string]map[string]*http.Cookie
	now func() time.Time
}

// NewCookieJar initializes an in-memory cookie jar.
func NewCookieJar(log *slog.Logger) *CookieJar {
	return &CookieJar{
		jar: make(map[string]map[string]*http.Cookie),
		log: log,
		mu:  sync.Mutex{},
		now: time.Now,
	}
}

// SetCookies stores cookies for a given URL.
func (c *CookieJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored, ok := c.jar[u.Host]
	if !ok {
		stored = make(map[string]*http.Cookie)
		c.jar[u.Host] = stored
	}

	for _, cookie := range cookies {
		if c.expired(cookie) {
			delete(stored, cookie.Name)
			c.log.Debug("Dropped cookie", "host", u.Host, "name", cookie.Name)
			continue
		}
		kept := &http.Cookie{Name: cookie.Name, Value: cookie.Value, Expires: cookie.Expires}
		if cookie.MaxAge > 0 {
			kept.Expires = c.now().Add(time.Duration(cookie.MaxAge) * time.Second)
		}
		stored[cookie.Name] = kept
		c.log.Debug("Set cookie", "host", u.Host, "name", cookie.Name)
	}
}

// Cookies retrieves the live cookies for a given URL.
func (c *CookieJar) Cookies(u *url.URL) []*http.Cookie {
	c.mu.Lock()
	defer c.mu.Unlock()

	var cookies []*http.Cookie
	for name, cookie := range c.jar[u.Host] {
		if c.expired(cookie) {
			delete(c.jar[u.Host], name)
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}

	return cookies
}

// Get returns the value of the named cookie held for u, or an empty string.
func (c *CookieJar) Get(u *url.URL, name string) string {
	for _, cookie := range c.Cookies(u) {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func (c *CookieJar) expired(cookie *http.Cookie) bool {
	if cookie.Value == "" || cookie.MaxAge < 0 {
		return true
	}
	return !cookie.Expires.IsZero() && !cookie.Expires.After(c.now())
}
