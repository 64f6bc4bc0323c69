package client

import (
	"log/slog"
	"net/http"
	"time"
)

// CreateHTTPClient initializes an HTTP client with the given cookie jar.
func CreateHTTPClient(log *slog.Logger, jar http.CookieJar, timeout time.Duration) *http.Client {
	return &http.Client{
		Jar:     jar,
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, _ []*http.Request) error {
			log.Debug("Redirected to URL", "URL", req.URL)

			return nil
		},
	}
}
