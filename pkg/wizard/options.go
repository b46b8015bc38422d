package wizard

import "go.uber.org/zap"

// Option configures a Session.
type Option func(*Session)

// WithFallbackPolicy selects what Submit does when the generator fails.
func WithFallbackPolicy(policy FallbackPolicy) Option {
	return func(s *Session) {
		if policy != "" {
			s.policy = policy
		}
	}
}

// WithFallbackObserver registers a callback invoked after each fallback
// substitution.
func WithFallbackObserver(fn FallbackObserver) Option {
	return func(s *Session) {
		s.observer = fn
	}
}

// WithLogger attaches a logger. Sessions log nothing by default.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
