// Package fetch is a stateless URL-content utility used by the
// research agent. It is not part of the review workflow.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// MaxContentLength caps the returned body to keep tool output
	// within model context limits.
	MaxContentLength = 10000
)

// Client fetches URL content with a bounded timeout and body size.
type Client struct {
	http *http.Client
}

// NewClient creates a fetch client
func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: defaultTimeout},
	}
}

// URLContent fetches the body of the given URL as text, truncated to
// MaxContentLength bytes. Non-2xx responses are errors.
func (c *Client) URLContent(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("invalid url %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode)
	}

	// Read one byte past the cap to detect truncation.
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxContentLength+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}

	content := string(body)
	if len(content) > MaxContentLength {
		content = content[:MaxContentLength] + "\n\n[Content truncated due to length]"
	}

	return fmt.Sprintf("Content from %s:\n\n%s", url, content), nil
}
