package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"inventory-sync/core/retry"

	"go.uber.org/zap"
)

// Client talks to the commerce platform's admin REST API.
type Client struct {
	cfg    Config
	http   *http.Client
	policy retry.Policy
	log    *zap.Logger
}

// NewClient creates a platform client with strict transport timeouts.
func NewClient(cfg Config, policy retry.Policy, log *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: 10 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConnsPerHost:   4,
	}

	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
		policy: policy,
		log:    log,
	}
}

// base returns the admin API origin.
func (c *Client) base() string {
	if c.cfg.BaseURL != "" {
		return strings.TrimSuffix(c.cfg.BaseURL, "/")
	}
	return "https://" + c.cfg.Domain
}

// endpoint builds a full admin API URL for the given resource path.
func (c *Client) endpoint(path string) string {
	version := c.cfg.APIVersion
	if version == "" {
		version = "2024-01"
	}
	return fmt.Sprintf("%s/admin/api/%s/%s", c.base(), version, path)
}

// do performs one authenticated request, decoding a 2xx JSON body into out.
// It returns the response's Link header, which carries the next-page cursor
// on paginated listings. Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, rawURL string, payload, out any) (link string, err error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return "", fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.cfg.APIKey, c.cfg.APIPassword)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if snippet, err := io.ReadAll(io.LimitReader(resp.Body, 512)); err == nil {
			apiErr.Body = strings.TrimSpace(string(snippet))
		}
		apiErr.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
		return "", apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			// A malformed body on a 2xx is permanent; retrying the same
			// request cannot fix it.
			return "", fmt.Errorf("decode response: %w", err)
		}
	}

	return resp.Header.Get("Link"), nil
}

// parseRetryAfter reads the platform's Retry-After header, which carries
// fractional seconds.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// nextPageURL extracts the rel="next" target from a Link header.
// Returns empty when there is no further page.
func nextPageURL(link string) string {
	for _, part := range strings.Split(link, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start < 0 || end < 0 || end <= start+1 {
			continue
		}
		return part[start+1 : end]
	}
	return ""
}
