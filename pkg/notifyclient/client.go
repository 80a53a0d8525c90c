// Package notifyclient calls the bot's notify API from the web backend side.
package notifyclient

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

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTimeout = 5 * time.Second

// StatusError is returned when the bot answers with anything but 200.
type StatusError struct {
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("notify: status %d", e.Code)
	}
	return fmt.Sprintf("notify: status %d: %s", e.Code, e.Detail)
}

type Client struct {
	baseURL  string
	http     *http.Client
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithJWTSecret signs every request with a short-lived HS256 token.
func WithJWTSecret(secret string, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.secret = []byte(secret)
		if ttl > 0 {
			cl.tokenTTL = ttl
		}
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("notifyclient: invalid base url %q", baseURL)
	}
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: DefaultTimeout},
		tokenTTL: time.Minute,
		now:      time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// NotifyUpload tells the user how many leads were accepted and the points earned.
func (c *Client) NotifyUpload(ctx context.Context, telegramID string, totalValid, pointsCredited int) error {
	return c.post(ctx, "/notify/upload", map[string]any{
		"telegram_id":     telegramID,
		"total_valid":     totalValid,
		"points_credited": pointsCredited,
	})
}

// NotifyPurchase tells the buyer which lead they bought, its price and the new balance.
func (c *Client) NotifyPurchase(ctx context.Context, telegramID, leadPhone string, price, newBalance int) error {
	return c.post(ctx, "/notify/purchase", map[string]any{
		"telegram_id": telegramID,
		"lead_phone":  leadPhone,
		"price":       price,
		"new_balance": newBalance,
	})
}

// Health returns nil when the notify API answers GET /health with 200.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, payload map[string]any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if len(c.secret) > 0 {
		tok, err := c.token()
		if err != nil {
			return fmt.Errorf("notifyclient: sign token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("notifyclient: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	var body struct {
		Detail any `json:"detail"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	se := &StatusError{Code: resp.StatusCode}
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != nil {
		se.Detail = fmt.Sprint(body.Detail)
	} else {
		se.Detail = strings.TrimSpace(string(raw))
	}
	return se
}

func (c *Client) token() (string, error) {
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   "backend",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// IsRejected reports whether err is a 4xx answer, meaning a retry with the
// same payload cannot succeed.
func IsRejected(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 400 && se.Code < 500
}
