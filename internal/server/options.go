package server

import (
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-roadmap/pkg/apispec"
	"github.com/goliatone/go-roadmap/pkg/insights"
	"github.com/goliatone/go-roadmap/pkg/renderers/html"
	"github.com/goliatone/go-roadmap/pkg/wizard"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWizardGenerator sets the generator used by browser wizard sessions.
// Defaults to the API generator, so the HTML wizard works without a second
// service.
func WithWizardGenerator(generator wizard.Generator) Option {
	return func(s *Server) {
		if generator != nil {
			s.wizardGenerator = generator
		}
	}
}

// WithDocument sets the OpenAPI document used for request validation.
func WithDocument(doc *apispec.Document) Option {
	return func(s *Server) {
		if doc != nil {
			s.doc = doc
		}
	}
}

// WithCatalog sets the market insights catalog.
func WithCatalog(catalog *insights.Catalog) Option {
	return func(s *Server) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// WithHistory enables "Save to Dashboard" and the /roadmaps pages.
func WithHistory(history History) Option {
	return func(s *Server) {
		s.history = history
	}
}

// WithPages overrides the HTML renderer.
func WithPages(pages *html.Renderer) Option {
	return func(s *Server) {
		if pages != nil {
			s.pages = pages
		}
	}
}

// WithFallbackPolicy sets the policy of new wizard sessions.
func WithFallbackPolicy(policy wizard.FallbackPolicy) Option {
	return func(s *Server) {
		if policy != "" {
			s.policy = policy
		}
	}
}

// WithAllowedOrigins enables CORS for the given origins.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = append([]string(nil), origins...)
	}
}

// WithSessionKey sets the cookie signing key. A random key is generated when
// none is given, which invalidates cookies on restart.
func WithSessionKey(key []byte) Option {
	return func(s *Server) {
		if len(key) > 0 {
			s.sessionKey = append([]byte(nil), key...)
		}
	}
}

// WithSessionTTL sets how long an idle wizard session is kept.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithShutdownGrace bounds graceful shutdown in Run.
func WithShutdownGrace(grace time.Duration) Option {
	return func(s *Server) {
		if grace > 0 {
			s.shutdownGrace = grace
		}
	}
}

// WithVersion sets the version reported by GET /.
func WithVersion(version string) Option {
	return func(s *Server) {
		if version != "" {
			s.version = version
		}
	}
}

// WithClock overrides time.Now for session expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}
