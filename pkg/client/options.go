package client

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-roadmap/pkg/apispec"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient injects a custom HTTP client (transport, proxies).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// WithTimeout bounds each request. It applies on top of any context deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithDocument sets the OpenAPI document used to check responses. Defaults
// to the embedded document.
func WithDocument(doc *apispec.Document) Option {
	return func(c *Client) {
		if doc != nil {
			c.doc = doc
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}
