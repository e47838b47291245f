// Package visionhttp implements the image analysis port over a plain
// HTTP endpoint
// The pipeline never learns which vision backend answers; swapping
// backends is an endpoint URL change
package visionhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "brandwatch/internal/platform/errors"
	"brandwatch/internal/services/images/domain"
)

const defaultTimeout = 30 * time.Second

// Options configures the Client
type Options struct {
	Endpoint string
	APIKey   string // optional bearer token
	Timeout  time.Duration
}

// Client posts one image at a time for logo analysis
type Client struct {
	http *http.Client
	opts Options
}

var _ domain.VisionPort = (*Client)(nil)

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{http: &http.Client{Timeout: o.Timeout}, opts: o}
}

type analyzeRequest struct {
	ImageURL      string   `json:"image_url"`
	BrandKeywords []string `json:"brand_keywords"`
}

type analyzeResponse struct {
	LogoMatch    bool     `json:"logo_match"`
	Confidence   float64  `json:"confidence"`
	Explanations []string `json:"explanations"`
}

// Analyze implements domain.VisionPort
func (c *Client) Analyze(ctx context.Context, imageURL string, keywords []string) (domain.Verdict, error) {
	body, err := json.Marshal(analyzeRequest{ImageURL: imageURL, BrandKeywords: keywords})
	if err != nil {
		return domain.Verdict{}, perr.Wrap(err, perr.ErrorCodeUnknown, "vision encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.Verdict{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "vision build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.opts.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Verdict{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "vision post")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return domain.Verdict{}, perr.Newf(perr.ErrorCodeUnavailable,
			"vision status %d body %s", resp.StatusCode, string(tail))
	}

	var out analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.Verdict{}, perr.Wrap(err, perr.ErrorCodeUnknown, "vision decode response")
	}
	return domain.Verdict{
		LogoMatch:    out.LogoMatch,
		Confidence:   out.Confidence,
		Explanations: out.Explanations,
	}, nil
}
