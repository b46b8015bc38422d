package template_test

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-roadmap/pkg/render/template/gotemplate"
	"github.com/goliatone/go-roadmap/pkg/testsupport"
)

var templateFiles = fstest.MapFS{
	"hello.tpl":      {Data: []byte("Hello, {{ name }}!")},
	"use-global.tpl": {Data: []byte("env={{ settings.env }}")},
	"use-filter.tpl": {Data: []byte("{{ name|roadmap_shout }}")},
	"phases.tpl":     {Data: []byte("{% for phase in phases %}{{ phase.heading }};{% endfor %}")},
	"trimmed.tpl":    {Data: []byte("[{{ value|trim }}]")},
}

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := "Hello, Ada!"
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("roadmap_shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected output %q", result)
	}

	if err := engine.RegisterFilter("roadmap_shout", func(input any, _ any) (any, error) { return input, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}
}

func TestGoTemplateEngine_StructDataUsesJSONNames(t *testing.T) {
	engine := newEngine(t)

	type phase struct {
		Heading string `json:"heading"`
	}
	result, err := engine.RenderTemplate("phases", map[string]any{
		"phases": []phase{{Heading: "Phase 1: Foundation"}, {Heading: "Phase 2: Build"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Phase 1: Foundation;Phase 2: Build;" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_RenderStringAndTrim(t *testing.T) {
	engine := newEngine(t)

	inline, err := engine.Render("{{ a }}-{{ b }}", map[string]any{"a": 1, "b": "two"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if inline != "1-two" {
		t.Fatalf("unexpected inline output %q", inline)
	}

	trimmed, err := engine.Render("trimmed", map[string]any{"value": "  padded  "})
	if err != nil {
		t.Fatalf("render trimmed: %v", err)
	}
	if trimmed != "[padded]" {
		t.Fatalf("unexpected trimmed output %q", trimmed)
	}
}

func TestGoTemplateEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("absent", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templateFiles))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
