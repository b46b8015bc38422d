package client

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

	"go.uber.org/zap"

	"github.com/goliatone/go-roadmap/pkg/apispec"
	"github.com/goliatone/go-roadmap/pkg/model"
)

// Paths served by the roadmap backend.
const (
	GeneratePath       = "/generate-roadmap"
	JobInsightsPath    = "/job-insights/"
	TrendingSkillsPath = "/trending-skills/"
)

const (
	defaultTimeout = 60 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client talks to a roadmap backend rooted at a base URL.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	doc     *apispec.Document
	logger  *zap.Logger
}

// New builds a Client for baseURL (scheme and host required).
func New(baseURL string, options ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("client: base url %q must include scheme and host", baseURL)
	}

	c := &Client{
		baseURL: trimmed,
		http:    http.DefaultClient,
		timeout: defaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if c.doc == nil {
		doc, err := apispec.Default()
		if err != nil {
			return nil, fmt.Errorf("client: load api document: %w", err)
		}
		c.doc = doc
	}
	return c, nil
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Generate posts input to /generate-roadmap and returns the decoded roadmap.
// Non-2xx responses yield *StatusError; bodies that do not match the Roadmap
// schema yield an error wrapping ErrMalformedResponse.
func (c *Client) Generate(ctx context.Context, input model.FormInput) (model.Roadmap, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return model.Roadmap{}, fmt.Errorf("client: encode request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, GeneratePath, payload)
	if err != nil {
		return model.Roadmap{}, err
	}

	if err := c.doc.ValidateJSON(apispec.SchemaRoadmap, body); err != nil {
		return model.Roadmap{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	var out model.Roadmap
	if err := json.Unmarshal(body, &out); err != nil {
		return model.Roadmap{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return out.Normalize(), nil
}

// JobInsights fetches market insights for a job title.
func (c *Client) JobInsights(ctx context.Context, title string) (model.MarketInsights, error) {
	body, err := c.do(ctx, http.MethodGet, JobInsightsPath+url.PathEscape(title), nil)
	if err != nil {
		return model.MarketInsights{}, err
	}
	if err := c.doc.ValidateJSON(apispec.SchemaMarketInsights, body); err != nil {
		return model.MarketInsights{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	var out model.MarketInsights
	if err := json.Unmarshal(body, &out); err != nil {
		return model.MarketInsights{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return out, nil
}

// TrendingSkills fetches the trending skills for an industry.
func (c *Client) TrendingSkills(ctx context.Context, industry string) ([]string, error) {
	body, err := c.do(ctx, http.MethodGet, TrendingSkillsPath+url.PathEscape(industry), nil)
	if err != nil {
		return nil, err
	}
	if err := c.doc.ValidateJSON(apispec.SchemaTrendingSkills, body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	var out struct {
		Skills []string `json:"trending_skills"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return out.Skills, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("client: read response: %w", err)
	}

	c.logger.Debug("roadmap api call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

// IsStatus reports whether err carries the given HTTP status.
func IsStatus(err error, code int) bool {
	var httpErr HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode() == code
}
