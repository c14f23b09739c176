package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/common"
)

// Endpoint paths.
const (
	PathPing         = "/ping"
	PathSignUp       = "/signup"
	PathAuthenticate = "/authenticate"
	PathUserProfile  = "/userProfile"
	PathSyncExpenses = "/syncExpenses"
)

const DefaultTimeout = 10 * time.Second

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type HTTPClient struct {
	http    *http.Client
	baseURL *url.URL

	mu    sync.RWMutex
	token string
}

// NewHTTPClient builds a client for the API rooted at baseURL. A nil
// httpClient gets a default one with DefaultTimeout.
func NewHTTPClient(baseURL string, httpClient *http.Client) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, common.ErrorValidation)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPClient{http: httpClient, baseURL: u}, nil
}

func (c *HTTPClient) sessionToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) setToken(t string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = t
}

func (c *HTTPClient) Logout() {
	c.setToken("")
}

// do sends a request with an optional JSON body and returns the status code
// and the response body. Transport failures are reported as ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t := c.sessionToken(); t != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+t)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}
	return resp.StatusCode, data, nil
}

func statusError(code int) error {
	if code == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return fmt.Errorf("%w: %d", ErrUnexpectedStatus, code)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	code, _, err := c.do(ctx, http.MethodGet, PathPing, nil)
	if err != nil {
		return err
	}
	if code != http.StatusOK {
		return fmt.Errorf("%w: ping returned %d", ErrUnavailable, code)
	}
	return nil
}

// SignUp succeeds only on 201 Created.
func (c *HTTPClient) SignUp(ctx context.Context, username, password, email string) error {
	code, _, err := c.do(ctx, http.MethodPost, PathSignUp, credentialsRequest{Username: username, Password: password, Email: email})
	if err != nil {
		return err
	}
	if code != http.StatusCreated {
		return statusError(code)
	}
	return nil
}

// Authenticate succeeds only on 200 OK and remembers the returned token.
func (c *HTTPClient) Authenticate(ctx context.Context, username, password string) error {
	code, body, err := c.do(ctx, http.MethodPost, PathAuthenticate, credentialsRequest{Username: username, Password: password})
	if err != nil {
		return err
	}
	if code != http.StatusOK {
		return statusError(code)
	}

	var tr tokenResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &tr); err != nil {
			return fmt.Errorf("decode token: %w", err)
		}
	}
	c.setToken(tr.Token)
	return nil
}

func (c *HTTPClient) UserProfile(ctx context.Context) (*models.UserProfile, error) {
	code, body, err := c.do(ctx, http.MethodGet, PathUserProfile, nil)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return nil, statusError(code)
	}

	var p models.UserProfile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// SyncExpenses posts the snapshot as a JSON array; an empty snapshot is sent
// as []. Any 2xx status is success. All failures match ErrSyncFailed.
func (c *HTTPClient) SyncExpenses(ctx context.Context, snapshot []models.Expense) error {
	if snapshot == nil {
		snapshot = []models.Expense{}
	}

	code, _, err := c.do(ctx, http.MethodPost, PathSyncExpenses, snapshot)
	if err != nil {
		return errors.Join(ErrSyncFailed, err)
	}
	if code < 200 || code > 299 {
		return errors.Join(ErrSyncFailed, statusError(code))
	}
	return nil
}
