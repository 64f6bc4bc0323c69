// Package client talks to the athena API on behalf of the command-line client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/athena/internal/models"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "token"

var ErrUnexpectedResponse = errors.New("unexpected response from server")

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// IsSessionError reports whether err means the session is missing, invalid or expired.
func IsSessionError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		(apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden)
}

type API struct {
	log  *slog.Logger
	base *url.URL
	http *http.Client
	jar  *CookieJar
}

// NewAPI creates a client for the API served at baseURL.
func NewAPI(log *slog.Logger, baseURL string, timeout time.Duration) (*API, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse API url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("failed to parse API url: %q is not absolute", baseURL)
	}

	jar := NewCookieJar(log)

	return &API{
		log:  log,
		base: base,
		http: CreateHTTPClient(log, jar, timeout),
		jar:  jar,
	}, nil
}

// Token returns the session token currently held, if any.
func (a *API) Token() string {
	return a.jar.Get(a.base, SessionCookie)
}

// SetToken restores a session token saved by an earlier run.
func (a *API) SetToken(token string) {
	a.jar.SetCookies(a.base, []*http.Cookie{{Name: SessionCookie, Value: token}})
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// Register creates an administrator and keeps the session the server opens for it.
func (a *API) Register(ctx context.Context, username, password string) (string, error) {
	var resp sessionResponse
	if err := a.do(ctx, http.MethodPost, "/register", credentials{username, password}, &resp); err != nil {
		return "", err
	}
	return resp.Username, nil
}

// Login opens a session.
func (a *API) Login(ctx context.Context, username, password string) (string, error) {
	var resp sessionResponse
	if err := a.do(ctx, http.MethodPost, "/login", credentials{username, password}, &resp); err != nil {
		return "", err
	}
	return resp.Username, nil
}

// Logout asks the server to end the session and forgets the local token either way.
func (a *API) Logout(ctx context.Context) error {
	err := a.do(ctx, http.MethodPost, "/logout", nil, nil)
	a.jar.SetCookies(a.base, []*http.Cookie{{Name: SessionCookie, MaxAge: -1}})
	return err
}

// Dashboard returns the username of the current session.
func (a *API) Dashboard(ctx context.Context) (string, error) {
	var resp sessionResponse
	if err := a.do(ctx, http.MethodGet, "/dashboard", nil, &resp); err != nil {
		return "", err
	}
	return resp.Username, nil
}

func (a *API) CreateEmployee(ctx context.Context, employee models.Employee) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := a.do(ctx, http.MethodPost, "/register-employee", employee, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (a *API) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := a.do(ctx, http.MethodGet, "/employees", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (a *API) GetEmployee(ctx context.Context, id string) (models.Employee, error) {
	var employee models.Employee
	if err := a.do(ctx, http.MethodGet, "/employees/"+url.PathEscape(id), nil, &employee); err != nil {
		return models.Employee{}, err
	}
	return employee, nil
}

func (a *API) UpdateEmployee(ctx context.Context, id string, employee models.Employee) (models.Employee, error) {
	var resp struct {
		Employee models.Employee `json:"employee"`
	}
	if err := a.do(ctx, http.MethodPut, "/update-employee/"+url.PathEscape(id), employee, &resp); err != nil {
		return models.Employee{}, err
	}
	return resp.Employee, nil
}

func (a *API) DeleteEmployee(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/delete-employee/"+url.PathEscape(id), nil, nil)
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.base.JoinPath(path).String(), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			a.log.WarnContext(ctx, "Failed to close response body", "error", closeErr)
		}
	}()

	a.log.DebugContext(ctx, "API call", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var failure struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&failure); decodeErr != nil || failure.Message == "" {
			failure.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: failure.Message}
	}

	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}

	return nil
}
