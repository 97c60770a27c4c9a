// Package fetcher retrieves remote documents for conversion. Input usually
// arrives as an uploaded file; the fetcher covers the `convert --url` case.
package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
)

// DefaultTimeout bounds a fetch when the caller sets none.
const DefaultTimeout = 30 * time.Second

const defaultUserAgent = "Mozilla/5.0 (compatible; pagepress/1.0)"

// Config controls fetching behavior.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// Static fetches documents over plain HTTP. A fresh collector is created
// per request, so the fetcher is safe for concurrent use.
type Static struct {
	config Config
}

// NewStatic creates a static fetcher.
func NewStatic(cfg Config) *Static {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Static{config: cfg}
}

// Fetch retrieves the document at url and returns its body as a string.
// Cancellation is bounded by the configured request timeout.
func (f *Static) Fetch(_ context.Context, url string) (string, error) {
	c := colly.NewCollector(
		colly.UserAgent(f.config.UserAgent),
	)
	c.SetRequestTimeout(f.config.Timeout)

	var body string
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = fmt.Errorf("fetch failed (status %d): %w", status, err)
	})

	if err := c.Visit(url); err != nil {
		return "", fmt.Errorf("failed to visit URL: %w", err)
	}
	if fetchErr != nil {
		return "", fetchErr
	}
	return body, nil
}
