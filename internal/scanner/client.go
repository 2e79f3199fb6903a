package scanner

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
	"time"
)

// ErrCallFailed marks every failed backend call: transport errors, non-2xx
// responses and undecodable bodies alike.
var ErrCallFailed = errors.New("backend call failed")

// SettingsAPI reads and persists scanner settings.
type SettingsAPI interface {
	FetchSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, settings Settings) (Ack, error)
}

// StatusFetcher reads the scanner's run status.
type StatusFetcher interface {
	FetchStatus(ctx context.Context) (Status, error)
}

// Controller issues run commands.
type Controller interface {
	Start(ctx context.Context) (Ack, error)
	Stop(ctx context.Context) (Ack, error)
}

var (
	_ SettingsAPI   = (*Client)(nil)
	_ StatusFetcher = (*Client)(nil)
	_ Controller    = (*Client)(nil)
)

// Client talks to the scanner HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent = "scanboard/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client rooted at baseURL, e.g. http://localhost:5000/api.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return strings.TrimSuffix(c.baseURL.String(), "/")
}

// FetchSettings retrieves the current settings.
func (c *Client) FetchSettings(ctx context.Context) (Settings, error) {
	var payload Settings
	if err := c.do(ctx, http.MethodGet, "settings", nil, &payload); err != nil {
		return Settings{}, err
	}
	return payload, nil
}

// SaveSettings submits the full settings object.
func (c *Client) SaveSettings(ctx context.Context, settings Settings) (Ack, error) {
	var ack Ack
	if err := c.do(ctx, http.MethodPost, "settings", settings, &ack); err != nil {
		return Ack{}, err
	}
	return ack, nil
}

// FetchStatus retrieves the run status snapshot.
func (c *Client) FetchStatus(ctx context.Context) (Status, error) {
	var payload Status
	if err := c.do(ctx, http.MethodGet, "status", nil, &payload); err != nil {
		return Status{}, err
	}
	return payload, nil
}

// Start asks the backend to begin scanning.
func (c *Client) Start(ctx context.Context) (Ack, error) {
	var ack Ack
	if err := c.do(ctx, http.MethodPost, "start", nil, &ack); err != nil {
		return Ack{}, err
	}
	return ack, nil
}

// Stop asks the backend to halt scanning.
func (c *Client) Stop(ctx context.Context) (Ack, error) {
	var ack Ack
	if err := c.do(ctx, http.MethodPost, "stop", nil, &ack); err != nil {
		return Ack{}, err
	}
	return ack, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("%w: client is nil", ErrCallFailed)
	}
	if err := c.roundTrip(ctx, method, path, body, dest); err != nil {
		return fmt.Errorf("%w: %s /%s: %w", ErrCallFailed, method, path, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("returned status %d", resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseBaseURL keeps the API path (the backend mounts under /api) and ensures
// it ends with a slash so relative endpoint paths resolve beneath it.
func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("api url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
