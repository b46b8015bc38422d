package generator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-roadmap/pkg/insights"
	"github.com/goliatone/go-roadmap/pkg/model"
	"github.com/goliatone/go-roadmap/pkg/sanitize"
)

// PhaseSource produces the phases of a roadmap.
type PhaseSource interface {
	Name() string
	Phases(ctx context.Context, input model.FormInput) ([]model.PhaseStep, error)
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource sets the phase source. Defaults to TemplateSource.
func WithSource(source PhaseSource) Option {
	return func(g *Generator) {
		if source != nil {
			g.source = source
		}
	}
}

// WithInsights sets the market insights source. Defaults to the built-in
// catalog.
func WithInsights(source insights.Source) Option {
	return func(g *Generator) {
		if source != nil {
			g.insights = source
		}
	}
}

// WithTemplateFallback controls whether a failing source is replaced by the
// template phases (the default) or reported to the caller.
func WithTemplateFallback(enabled bool) Option {
	return func(g *Generator) {
		g.templateFallback = enabled
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// Generator assembles a full roadmap: heading, phases, and market insights.
// It satisfies wizard.Generator and backs the /generate-roadmap endpoint.
type Generator struct {
	source           PhaseSource
	insights         insights.Source
	templateFallback bool
	logger           *zap.Logger
}

// New builds a Generator.
func New(options ...Option) *Generator {
	g := &Generator{
		source:           TemplateSource{},
		insights:         insights.New(),
		templateFallback: true,
		logger:           zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g
}

// Source reports the name of the configured phase source.
func (g *Generator) Source() string {
	return g.source.Name()
}

// Generate builds the roadmap for input. Every string in the result has its
// markup stripped.
func (g *Generator) Generate(ctx context.Context, input model.FormInput) (model.Roadmap, error) {
	input = sanitize.FormInput(input)

	steps, err := g.source.Phases(ctx, input)
	if err != nil {
		if !g.templateFallback || ctx.Err() != nil {
			return model.Roadmap{}, fmt.Errorf("generator: %s phases: %w", g.source.Name(), err)
		}
		g.logger.Warn("phase source failed, using template phases",
			zap.String("source", g.source.Name()),
			zap.Error(err))
		steps = TemplatePhases()
	}

	market, err := g.insights.MarketInsights(ctx, input.DreamJob)
	if err != nil {
		g.logger.Warn("market insights lookup failed", zap.String("dreamJob", input.DreamJob), zap.Error(err))
		market = insights.FallbackInsights()
	}

	record := model.Roadmap{
		Title:          Title(input),
		Timeline:       string(input.Timeline),
		Steps:          steps,
		MarketInsights: market,
	}
	return sanitize.Roadmap(record.Normalize()), nil
}
