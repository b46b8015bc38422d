package roadmap

import (
	"context"

	"github.com/goliatone/go-roadmap/pkg/generator"
	"github.com/goliatone/go-roadmap/pkg/model"
	"github.com/goliatone/go-roadmap/pkg/render"
	"github.com/goliatone/go-roadmap/pkg/wizard"
)

// FormInput is the wizard payload; alias exported via the root package for
// convenience.
type FormInput = model.FormInput

// Roadmap is a generated career roadmap.
type Roadmap = model.Roadmap

// PhaseStep is one phase of a roadmap.
type PhaseStep = model.PhaseStep

// MarketInsights describes the job market for the target role.
type MarketInsights = model.MarketInsights

// RenderOptions aliases render.RenderOptions for callers rendering roadmaps
// without importing the render package.
type RenderOptions = render.RenderOptions

// NewGenerator exposes the in-process generator constructor from the
// top-level module.
func NewGenerator(options ...generator.Option) *generator.Generator {
	return generator.New(options...)
}

// NewSession starts a wizard session backed by gen.
func NewSession(gen wizard.Generator, options ...wizard.Option) (*wizard.Session, error) {
	return wizard.New(gen, options...)
}

// Generate builds a roadmap for input with the template generator and the
// built-in market insights. It is the simplest entry point for callers that
// just want a roadmap.
func Generate(ctx context.Context, input FormInput, options ...generator.Option) (Roadmap, error) {
	return generator.New(options...).Generate(ctx, input)
}

// RenderText generates a roadmap for input and renders it as plain text.
func RenderText(ctx context.Context, input FormInput, options ...generator.Option) ([]byte, error) {
	record, err := Generate(ctx, input, options...)
	if err != nil {
		return nil, err
	}
	return render.NewText().Render(ctx, render.Project(record), RenderOptions{})
}
