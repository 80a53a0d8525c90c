// File: internal/infra/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"leads-relay-bot/internal/domain"
	"leads-relay-bot/internal/domain/model"
	"leads-relay-bot/internal/domain/ports/adapter"
	"leads-relay-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

var _ adapter.BackendAPI = (*Client)(nil)

const (
	pathUserGet   = "/user/get"
	pathDashboard = "/user/dashboard"

	maxBodyBytes = 1 << 20
)

// Client talks to the web application's HTTP API. It never retries; every
// failure collapses into domain.ErrNotFound or domain.ErrUnavailable.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zerolog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	l := logger.With().Str("component", "backend").Logger()
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  &l,
	}, nil
}

// Request performs one call and decodes the JSON response into out.
// GET params travel in the query string, POST params as a JSON object.
func (c *Client) Request(ctx context.Context, method, path string, params map[string]string, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveBackendRequest(path, outcome(err), time.Since(start))
	}()

	endpoint := c.baseURL + path
	var body io.Reader
	switch method {
	case http.MethodGet:
		if len(params) > 0 {
			q := url.Values{}
			for k, v := range params {
				if v != "" {
					q.Set(k, v)
				}
			}
			endpoint += "?" + q.Encode()
		}
	case http.MethodPost:
		b, merr := json.Marshal(params)
		if merr != nil {
			return fmt.Errorf("%w: encode body: %v", domain.ErrInvalidArgument, merr)
		}
		body = bytes.NewReader(b)
	default:
		return fmt.Errorf("%w: unsupported method %s", domain.ErrInvalidArgument, method)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", domain.ErrUnavailable, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: %s returned %d", domain.ErrUnavailable, path, resp.StatusCode)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("%w: %s returned an empty body", domain.ErrUnavailable, path)
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrUnavailable, path, err)
	}
	return nil
}

// GetUser fetches the user, letting the backend create it on first sight.
func (c *Client) GetUser(ctx context.Context, telegramID int64, username, fullName string) (*model.User, error) {
	var u model.User
	err := c.Request(ctx, http.MethodGet, pathUserGet, map[string]string{
		"userId":   strconv.FormatInt(telegramID, 10),
		"username": username,
		"fullName": fullName,
	}, &u)
	if err != nil {
		c.logger.Debug().Err(err).Int64("tg_id", telegramID).Msg("get user failed")
		return nil, err
	}
	if u.IsZero() {
		return nil, fmt.Errorf("%w: user %d has no id", domain.ErrNotFound, telegramID)
	}
	return &u, nil
}

// GetDashboard returns the stats block of the user's dashboard.
func (c *Client) GetDashboard(ctx context.Context, telegramID int64) (*model.Stats, error) {
	var out struct {
		Stats *model.Stats `json:"stats"`
	}
	err := c.Request(ctx, http.MethodGet, pathDashboard, map[string]string{
		"userId": strconv.FormatInt(telegramID, 10),
	}, &out)
	if err != nil {
		c.logger.Debug().Err(err).Int64("tg_id", telegramID).Msg("get dashboard failed")
		return nil, err
	}
	if out.Stats == nil {
		return nil, fmt.Errorf("%w: dashboard of %d has no stats", domain.ErrNotFound, telegramID)
	}
	return out.Stats, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "unavailable"
	}
}
