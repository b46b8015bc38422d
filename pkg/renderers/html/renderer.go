package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-roadmap/pkg/render"
	rendertemplate "github.com/goliatone/go-roadmap/pkg/render/template"
	"github.com/goliatone/go-roadmap/pkg/render/template/gotemplate"
)

// ErrUnknownStep is returned when a wizard view names a step without a layout.
var ErrUnknownStep = errors.New("html: unknown wizard step")

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	appName          string
	stylesheet       string
	homeURL          string
	historyURL       string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAppName sets the name shown in the header and page titles.
func WithAppName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.appName = name
		}
	}
}

// WithStylesheet sets the stylesheet URL linked from every page. Empty
// disables the link.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = href
	}
}

// WithLinks sets the header links for the wizard and the saved roadmaps page.
func WithLinks(homeURL, historyURL string) Option {
	return func(cfg *config) {
		cfg.homeURL = homeURL
		cfg.historyURL = historyURL
	}
}

// Renderer renders roadmap, wizard, and history pages with pongo2 templates.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		appName:    "Career Roadmap",
		stylesheet: "/assets/" + StylesheetName,
		homeURL:    "/wizard",
		historyURL: "/roadmaps",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	if err := renderer.GlobalContext(map[string]any{
		"appName":    cfg.appName,
		"stylesheet": cfg.stylesheet,
		"homeURL":    cfg.homeURL,
		"historyURL": cfg.historyURL,
	}); err != nil {
		return nil, fmt.Errorf("html renderer: set globals: %w", err)
	}

	return &Renderer{templates: renderer}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType reports the MIME type of every page.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the roadmap page for tree.
func (r *Renderer) Render(ctx context.Context, tree render.Tree, options render.RenderOptions) ([]byte, error) {
	return r.page(ctx, "roadmap", roadmapData(tree, options))
}

// RenderWizard writes the form page for one wizard step.
func (r *Renderer) RenderWizard(ctx context.Context, view WizardView) ([]byte, error) {
	data, ok := wizardData(view)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStep, view.Step)
	}
	return r.page(ctx, "wizard", data)
}

// RenderHistory writes the saved roadmaps page.
func (r *Renderer) RenderHistory(ctx context.Context, view HistoryView) ([]byte, error) {
	return r.page(ctx, "history", historyData(view))
}

func (r *Renderer) page(ctx context.Context, name string, data map[string]any) ([]byte, error) {
	if r.templates == nil {
		return nil, errors.New("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render %s: %w", name, err)
	}
	return []byte(result), nil
}
