// Package matchproxy calls the external candidate/job matching service and
// extracts a fit score from its response.
package matchproxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/hireloop/hireloop/internal/ports"
)

// DefaultScorePath is the JMESPath expression applied to the proxy response
// when none is configured.
const DefaultScorePath = "score"

// ClientOptions configures the match proxy client.
type ClientOptions struct {
	BaseURL string
	// ScorePath is a JMESPath expression locating the numeric score in the
	// response body. Defaults to DefaultScorePath.
	ScorePath  string
	APIKey     string
	HTTPClient *http.Client // Optional, defaults to a 15s-timeout client
}

// Client implements ports.MatchScorer against an HTTP matching service.
type Client struct {
	baseURL   string
	scorePath string
	apiKey    string
	client    *http.Client
}

// NewClient validates the options and constructs a Client. The score path is
// compiled once up front so a bad expression fails at startup.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL scheme: %s", u.Scheme)
	}

	scorePath := strings.TrimSpace(opts.ScorePath)
	if scorePath == "" {
		scorePath = DefaultScorePath
	}
	if _, err := jmespath.Compile(scorePath); err != nil {
		return nil, fmt.Errorf("invalid score path: %w", err)
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	return &Client{
		baseURL:   strings.TrimSuffix(opts.BaseURL, "/"),
		scorePath: scorePath,
		apiKey:    opts.APIKey,
		client:    client,
	}, nil
}

// Score posts the candidate/job pair to the proxy and returns the extracted
// score. Every failure is returned as-is; callers treat the score as
// best-effort and must not retry.
func (c *Client) Score(ctx context.Context, in ports.MatchInput) (float64, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return 0, fmt.Errorf("marshal match input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/match", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build match request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call match proxy: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("match proxy returned status %d", resp.StatusCode)
	}

	var payload any
	if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr != nil {
		return 0, fmt.Errorf("decode match response: %w", decodeErr)
	}

	raw, err := jmespath.Search(c.scorePath, payload)
	if err != nil {
		return 0, fmt.Errorf("extract score: %w", err)
	}

	score, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("score path %q did not yield a number", c.scorePath)
	}
	if score < 0 || score > 100 {
		return 0, fmt.Errorf("score %v outside 0..100", score)
	}
	return score, nil
}
