// Package api is the typed REST client for the Verible backend. All retry,
// timeout and rate-limit policy lives here; callers get either a tagged raw
// payload (for seller data, which the backend returns in several shapes) or
// a typed value.
package api

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const userAgent = "verible-cli"

// APIError is a non-2xx backend response, carrying the backend's own message
// when one was present in the body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned HTTP %d", e.StatusCode)
}

// Client talks to the Verible backend.
type Client struct {
	baseURL string
	token   string
	http    *retryablehttp.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithProxy routes all requests through an HTTP proxy. Useful for debugging.
func WithProxy(proxy string) Option {
	return func(c *Client) {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			return
		}
		c.http.HTTPClient.Transport = &http.Transport{
			Proxy:           http.ProxyURL(proxyURL),
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
}

// WithRateLimit overrides the default requests-per-second budget.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient builds a Client for the given backend base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = log.New(io.Discard, "", 0)
	retryClient.RetryMax = 3
	retryClient.HTTPClient.Timeout = 30 * time.Second

	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    retryClient,
		limiter: rate.NewLimiter(rate.Limit(4), 2),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken switches the session token, e.g. right after onboarding returns
// one.
func (c *Client) SetToken(token string) {
	c.token = token
}

// HasToken reports whether the client carries a session token.
func (c *Client) HasToken() bool {
	return c.token != ""
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return "", err
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 300 {
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Message:    backendMessage(string(bodyBytes)),
		}
	}
	return string(bodyBytes), nil
}

// backendMessage digs the human-readable error out of a failure body.
func backendMessage(body string) string {
	for _, path := range []string{"error", "message", "detail"} {
		if msg := gjson.Get(body, path).String(); msg != "" {
			return msg
		}
	}
	return ""
}

// ExtractProfile asks the backend to extract and score a seller profile URL.
func (c *Client) ExtractProfile(ctx context.Context, profileURL string) (*Result, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/sellers/extract", map[string]string{"profileUrl": profileURL})
	if err != nil {
		return nil, err
	}
	return &Result{Kind: DetectKind(body), Body: body}, nil
}

// ScoreByURL fetches the current score for a profile URL without a full
// re-extraction.
func (c *Client) ScoreByURL(ctx context.Context, profileURL string) (*Result, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/scoring/score-url", map[string]string{"profileUrl": profileURL})
	if err != nil {
		return nil, err
	}
	return &Result{Kind: DetectKind(body), Body: body}, nil
}

// SearchSeller looks a seller up by name and platform. With a non-empty
// location the backend switches to its paginated multi-match response.
func (c *Client) SearchSeller(ctx context.Context, name, platform, location string) (*Result, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("platform", platform)
	if location != "" {
		q.Set("location", location)
	}
	body, err := c.do(ctx, http.MethodGet, "/api/sellers/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: DetectKind(body), Body: body}, nil
}

// Feedback fetches the community flags and endorsements for a seller.
func (c *Client) Feedback(ctx context.Context, sellerID string) (string, error) {
	return c.do(ctx, http.MethodGet, "/api/sellers/"+url.PathEscape(sellerID)+"/feedback", nil)
}

// Analytics fetches the seller analytics panel data. Requires a session.
func (c *Client) Analytics(ctx context.Context, sellerID string) (string, error) {
	return c.do(ctx, http.MethodGet, "/api/sellers/"+url.PathEscape(sellerID)+"/analytics", nil)
}

// SubmitFlag files a flag against a seller.
func (c *Client) SubmitFlag(ctx context.Context, sellerID, reason, comment string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/sellers/"+url.PathEscape(sellerID)+"/flags",
		map[string]string{"reason": reason, "comment": comment})
	return err
}

// SubmitEndorsement endorses a seller.
func (c *Client) SubmitEndorsement(ctx context.Context, sellerID, comment string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/sellers/"+url.PathEscape(sellerID)+"/endorsements",
		map[string]string{"comment": comment})
	return err
}

// Recalculate asks the backend to rescore a seller now.
func (c *Client) Recalculate(ctx context.Context, sellerID string) (*Result, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/sellers/"+url.PathEscape(sellerID)+"/recalculate", nil)
	if err != nil {
		return nil, err
	}
	return &Result{Kind: DetectKind(body), Body: body}, nil
}

// AccountDraft is the payload for seller account creation, accumulated by
// the onboarding wizard.
type AccountDraft struct {
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	ProfileURL   string `json:"profileUrl"`
	BusinessType string `json:"businessType"`
	Description  string `json:"description,omitempty"`
	Platform     string `json:"platform"`
	Password     string `json:"password"`
}

// CreateAccount registers a seller account. When the backend returns a
// session token the caller is expected to log the user in with it
// immediately.
func (c *Client) CreateAccount(ctx context.Context, draft AccountDraft) (token string, err error) {
	body, err := c.do(ctx, http.MethodPost, "/api/auth/register", draft)
	if err != nil {
		return "", err
	}
	return gjson.Get(body, "token").String(), nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}
	token := gjson.Get(body, "token").String()
	if token == "" {
		return "", &APIError{StatusCode: http.StatusOK, Message: "login response carried no token"}
	}
	return token, nil
}
