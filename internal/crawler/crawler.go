// Package crawler fetches pages for h1 title extraction and sequential
// batch downloads. Network and HTTP failures are logged and turned into
// empty results instead of errors so one bad URL never aborts a batch.
package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultTimeout   = 10 * time.Second
	DefaultDelay     = 1 * time.Second

	maxBodySize = 10 << 20
)

type Config struct {
	UserAgent string
	Timeout   time.Duration
	Delay     time.Duration
}

type Client struct {
	http      *http.Client
	userAgent string
	delay     time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
	logger    *zap.Logger
}

func New(logger *zap.Logger, cfg Config) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		delay:     cfg.Delay,
		sleep:     sleepContext,
		logger:    logger,
	}
}

// FetchTitles returns the trimmed text of every <h1> on the page, in
// document order. Any request failure yields an empty slice.
func (c *Client) FetchTitles(ctx context.Context, url string) []string {
	body, err := c.get(ctx, url)
	if err != nil {
		c.logger.Warn("fetch titles failed", zap.String("url", url), zap.Error(err))
		return []string{}
	}
	return ExtractTitles(body)
}

// Download fetches urls one at a time, pausing before each request. The
// result has one entry per url in the same order; failed entries are nil.
func (c *Client) Download(ctx context.Context, urls []string) []*string {
	results := make([]*string, len(urls))
	for i, url := range urls {
		body, err := c.Fetch(ctx, url)
		if ctx.Err() != nil {
			c.logger.Warn("download batch cancelled", zap.Int("remaining", len(urls)-i), zap.Error(ctx.Err()))
			break
		}
		if err != nil {
			c.logger.Warn("download failed", zap.String("url", url), zap.Error(err))
			continue
		}
		results[i] = &body
	}
	return results
}

// Fetch waits the politeness delay and then downloads url, reporting why
// it failed. Download is built on it.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	if err := c.sleep(ctx, c.delay); err != nil {
		return "", err
	}
	return c.get(ctx, url)
}

func (c *Client) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
