// Package searchapi provides a resilient client for the social search
// API, implementing the pipeline search port
package searchapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	perr "brandwatch/internal/platform/errors"
	"brandwatch/internal/platform/logger"
	pipedom "brandwatch/internal/services/pipeline/domain"
)

const (
	baseURLDefault     = "https://api.twitterapi.io"
	defaultTimeout     = 15 * time.Second
	defaultMaxRetry    = 5
	defaultRetryBase   = 500 * time.Millisecond
	defaultMinInterval = 6 * time.Second
)

// Options configures the Client
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// Retry config for transient and rate limited responses
	MaxRetries int
	RetryBase  time.Duration

	// MinInterval spaces successive requests; the upstream plan meters
	// per request, not per post. Negative disables pacing
	MinInterval time.Duration
}

// Client is a minimal search API client with request pacing and retries
type Client struct {
	http  *http.Client
	opts  Options
	log   logger.Logger
	now   func() time.Time
	sleep func(time.Duration)

	mu   sync.Mutex
	last time.Time
}

var _ pipedom.SearchPort = (*Client)(nil)

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.MinInterval == 0 {
		o.MinInterval = defaultMinInterval
	}
	return &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("searchapi"),
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Search implements pipedom.SearchPort over the advanced search endpoint
func (c *Client) Search(ctx context.Context, query, cursor string) (pipedom.Page, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("queryType", "Latest")
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	return c.fetchPage(ctx, "/twitter/tweet/advanced_search", q)
}

// Mentions implements pipedom.SearchPort over the user mentions endpoint
// handle is passed without the @ sigil, sinceTime is epoch seconds
func (c *Client) Mentions(ctx context.Context, handle string, sinceTime int64, cursor string) (pipedom.Page, error) {
	q := url.Values{}
	q.Set("userName", handle)
	q.Set("sinceTime", strconv.FormatInt(sinceTime, 10))
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	return c.fetchPage(ctx, "/twitter/user/mentions", q)
}

func (c *Client) fetchPage(ctx context.Context, path string, q url.Values) (pipedom.Page, error) {
	body, err := c.do(ctx, path, q)
	if err != nil {
		return pipedom.Page{}, err
	}

	var raw rawPage
	if err := json.Unmarshal(body, &raw); err != nil {
		return pipedom.Page{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "searchapi decode %s", path)
	}

	page := pipedom.Page{Posts: make([]pipedom.Post, 0, len(raw.Tweets))}
	for _, t := range raw.Tweets {
		page.Posts = append(page.Posts, t.toPost())
	}
	if raw.HasNextPage {
		page.NextCursor = raw.NextCursor
	}
	return page, nil
}

// do issues a paced GET with auth, retries, and rate limit handling
func (c *Client) do(ctx context.Context, path string, q url.Values) ([]byte, error) {
	full := c.opts.BaseURL + path + "?" + q.Encode()
	attempts := 0
	for {
		if err := c.pace(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "searchapi new request failed")
		}
		req.Header.Set("X-API-Key", c.opts.APIKey)
		req.Header.Set("Accept", "application/json")

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if !c.shouldRetry(attempts) {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "searchapi do failed")
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("searchapi transport error retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Str("path", path).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("searchapi http response")

		switch {
		case resp.StatusCode == http.StatusOK:
			body, err := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "searchapi read body")
			}
			return body, nil
		case resp.StatusCode == http.StatusTooManyRequests:
			wait := retryAfter(resp.Header, c.now())
			if wait <= 0 {
				wait = c.backoff(attempts)
			}
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return nil, perr.Newf(perr.ErrorCodeTooManyRequests, "searchapi rate limited")
			}
			c.log.Warn().Dur("sleep", wait).Msg("searchapi rate limited backing off")
			c.sleep(wait)
			attempts++
			continue
		case resp.StatusCode >= 500:
			_ = drainAndClose(resp.Body)
			if !c.shouldRetry(attempts) {
				return nil, perr.Newf(perr.ErrorCodeUnavailable, "searchapi server error %d", resp.StatusCode)
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("searchapi transient error retrying")
			c.sleep(back)
			attempts++
			continue
		default:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			_ = resp.Body.Close()
			return nil, perr.Newf(perr.ErrorCodeUnknown, "searchapi unexpected status %d body %s", resp.StatusCode, string(body))
		}
	}
}

// pace blocks until MinInterval has elapsed since the previous request
func (c *Client) pace(ctx context.Context) error {
	if c.opts.MinInterval <= 0 {
		return nil
	}
	c.mu.Lock()
	wait := c.opts.MinInterval - c.now().Sub(c.last)
	if wait > 0 {
		c.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		c.sleep(wait)
		c.mu.Lock()
	}
	c.last = c.now()
	c.mu.Unlock()
	return nil
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.RetryBase
	ms := int64(d / time.Millisecond)
	ms = ms << uint(attempt)
	max := int64(30 * time.Second / time.Millisecond)
	if ms > max {
		ms = max
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *Client) shouldRetry(attempt int) bool {
	return attempt < c.opts.MaxRetries
}

// retryAfter reads a seconds or http-date Retry-After header
func retryAfter(h http.Header, now time.Time) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		return t.Sub(now)
	}
	return 0
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 4096))
	return rc.Close()
}
