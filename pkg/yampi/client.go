// Package yampi wraps the Yampi logistics v2 API calls used for shipping
// quotes: the shipping-costs endpoint and the products lookup endpoint.
package yampi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sonhosdeninar/shipping-proxy/pkg/config"
)

const (
	defaultBaseURL = "https://api.yampi.com.br"
	defaultTimeout = 15 * time.Second

	// Cloudflare fronts the Yampi API; a browser-like UA avoids a class
	// of bot challenges that a bare Go UA triggers.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/124 Safari/537.36"

	errorBodyReadLimit int64 = 4096
)

var (
	errAliasRequired = errors.New("yampi alias is required")
	errTokenRequired = errors.New("yampi token pair is required")
)

// Client issues authenticated calls against the Yampi v2 API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	alias      string
	userToken  string
	secretKey  string
	timeout    time.Duration
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the Yampi client from the store credentials.
func NewClient(cfg config.YampiConfig, opts ...Option) (*Client, error) {
	alias := strings.TrimSpace(cfg.Alias)
	if alias == "" {
		return nil, errAliasRequired
	}
	userToken := strings.TrimSpace(cfg.UserToken)
	secretKey := strings.TrimSpace(cfg.SecretKey)
	if userToken == "" || secretKey == "" {
		return nil, errTokenRequired
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		baseURL:    defaultBaseURL,
		alias:      alias,
		userToken:  userToken,
		secretKey:  secretKey,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
	if trimmed := strings.TrimSpace(cfg.BaseURL); trimmed != "" {
		client.baseURL = trimmed
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Timeout reports the per-call deadline applied to every outbound request.
func (c *Client) Timeout() time.Duration {
	if c == nil {
		return defaultTimeout
	}
	return c.timeout
}

func (c *Client) endpoint(path string) string {
	base := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/v2/%s/%s", base, c.alias, path)
}

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")
	req.Header.Set("User-Token", c.userToken)
	req.Header.Set("User-Secret-Key", c.secretKey)
}
