package tui

import (
	"io"

	"go.uber.org/zap"

	"github.com/goliatone/go-roadmap/pkg/render"
)

// Theme captures optional message prefixes the runner applies when printing.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the Runner.
type Option func(*Runner)

// WithPromptDriver overrides the prompt driver used by the runner.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where rendered roadmaps are written.
func WithOutput(out io.Writer) Option {
	return func(r *Runner) {
		if out != nil {
			r.out = out
		}
	}
}

// WithRenderer replaces the plain-text roadmap renderer.
func WithRenderer(renderer render.Renderer) Option {
	return func(r *Runner) {
		if renderer != nil {
			r.renderer = renderer
		}
	}
}

// WithSaver enables the "Save to Dashboard" prompt after a roadmap is shown.
func WithSaver(saver Saver) Option {
	return func(r *Runner) {
		r.saver = saver
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}
