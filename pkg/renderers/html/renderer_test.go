package html_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-roadmap/pkg/model"
	"github.com/goliatone/go-roadmap/pkg/render"
	"github.com/goliatone/go-roadmap/pkg/renderers/html"
	"github.com/goliatone/go-roadmap/pkg/testsupport"
)

func TestRenderer_Metadata(t *testing.T) {
	renderer := newRenderer(t)
	if renderer.Name() != "html" {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if renderer.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
}

func TestRenderer_RoadmapPage(t *testing.T) {
	renderer := newRenderer(t)
	tree := render.Project(testsupport.SampleRoadmap())

	out, err := renderer.Render(context.Background(), tree, render.RenderOptions{
		ResetAction: "/wizard/reset",
		SaveAction:  "/wizard/save",
		Hidden:      map[string]string{"csrf_token": "tok-123"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)

	for _, want := range []string{
		"Estimated Timeline: 6-months",
		"Phase 1: Backend Basics",
		"Phase 2: Deployment",
		"<li>Kubernetes Basics</li>",
		"<dd>$90,000 - $140,000</dd>",
		"<li>Initech</li>",
		`action="/wizard/save"`,
		"Save to Dashboard",
		`action="/wizard/reset"`,
		"Create Another Roadmap",
		`<input type="hidden" name="csrf_token" value="tok-123">`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
	if strings.Index(page, "Phase 1:") > strings.Index(page, "Phase 2:") {
		t.Fatalf("expected phases in record order")
	}
}

func TestRenderer_RoadmapPageSavedHidesSaveForm(t *testing.T) {
	renderer := newRenderer(t)
	out, err := renderer.Render(context.Background(), render.Project(testsupport.SampleRoadmap()), render.RenderOptions{
		SaveAction: "/wizard/save",
		Saved:      true,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)
	if strings.Contains(page, `action="/wizard/save"`) {
		t.Fatalf("expected save form to be hidden once saved")
	}
	if !strings.Contains(page, "Saved to Dashboard") {
		t.Fatalf("expected saved marker")
	}
}

func TestRenderer_RoadmapPageEscapesContent(t *testing.T) {
	renderer := newRenderer(t)
	record := testsupport.SampleRoadmap()
	record.Title = "<script>alert(1)</script>"

	out, err := renderer.Render(context.Background(), render.Project(record), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Fatalf("expected title to be escaped")
	}
}

func TestRenderer_EmptyRoadmapHasNoPhases(t *testing.T) {
	renderer := newRenderer(t)
	out, err := renderer.Render(context.Background(), render.Project(model.Roadmap{Title: "X", Timeline: "6-months"}), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(out), "Phase 1:") {
		t.Fatalf("expected no phase blocks")
	}
	if !strings.Contains(string(out), "<h1>X</h1>") {
		t.Fatalf("expected title heading")
	}
}

func TestRenderer_WizardFirstStepWithErrors(t *testing.T) {
	renderer := newRenderer(t)
	out, err := renderer.RenderWizard(context.Background(), html.WizardView{
		Step:     1,
		Progress: 33,
		Input:    model.FormInput{CurrentRole: "A"},
		Errors: map[string]string{
			model.FieldCurrentRole: "Current role must be at least 2 characters",
		},
		Actions: html.WizardActions{Next: "/wizard/next", Previous: "/wizard/previous", Submit: "/wizard/submit"},
		Hidden:  map[string]string{"csrf_token": "abc"},
	})
	if err != nil {
		t.Fatalf("render wizard: %v", err)
	}
	page := string(out)

	for _, want := range []string{
		"Step 1 of 3",
		"33% Complete",
		"Tell us about yourself",
		`name="currentRole" type="text" value="A"`,
		`name="currentSkills"`,
		"Current role must be at least 2 characters",
		"Next Step",
		`name="csrf_token" value="abc"`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
	if strings.Contains(page, "Previous") {
		t.Fatalf("expected no previous button on the first step")
	}
}

func TestRenderer_WizardSecondStepSelectsExperience(t *testing.T) {
	renderer := newRenderer(t)
	out, err := renderer.RenderWizard(context.Background(), html.WizardView{
		Step:  2,
		Input: model.FormInput{DreamJob: "Data Scientist", Experience: model.ExperienceSenior},
	})
	if err != nil {
		t.Fatalf("render wizard: %v", err)
	}
	page := string(out)
	if !strings.Contains(page, `<option value="senior" selected>Senior Level (5+ years)</option>`) {
		t.Fatalf("expected selected senior option:\n%s", page)
	}
	if !strings.Contains(page, "Previous") {
		t.Fatalf("expected previous button on step 2")
	}
}

func TestRenderer_WizardFinalStepDisablesSubmitInFlight(t *testing.T) {
	renderer := newRenderer(t)
	view := html.WizardView{
		Step:     3,
		Progress: 100,
		Input:    testsupport.ValidInput(),
		Actions:  html.WizardActions{Submit: "/wizard/submit"},
	}

	idle, err := renderer.RenderWizard(context.Background(), view)
	if err != nil {
		t.Fatalf("render idle: %v", err)
	}
	if !strings.Contains(string(idle), "Generate My Roadmap") || strings.Contains(string(idle), " disabled") {
		t.Fatalf("expected enabled submit button")
	}

	view.InFlight = true
	busy, err := renderer.RenderWizard(context.Background(), view)
	if err != nil {
		t.Fatalf("render busy: %v", err)
	}
	if !strings.Contains(string(busy), "Generating Roadmap...") || !strings.Contains(string(busy), " disabled") {
		t.Fatalf("expected disabled submit button while in flight")
	}
	if !strings.Contains(string(busy), `name="additionalInfo"`) {
		t.Fatalf("expected optional additional info field on final step")
	}
}

func TestRenderer_WizardUnknownStep(t *testing.T) {
	renderer := newRenderer(t)
	_, err := renderer.RenderWizard(context.Background(), html.WizardView{Step: 7})
	if !errors.Is(err, html.ErrUnknownStep) {
		t.Fatalf("expected ErrUnknownStep, got %v", err)
	}
}

func TestRenderer_History(t *testing.T) {
	renderer := newRenderer(t)

	empty, err := renderer.RenderHistory(context.Background(), html.HistoryView{WizardURL: "/wizard"})
	if err != nil {
		t.Fatalf("render empty history: %v", err)
	}
	if !strings.Contains(string(empty), "No saved roadmaps yet.") {
		t.Fatalf("expected empty state")
	}

	out, err := renderer.RenderHistory(context.Background(), html.HistoryView{
		Entries: []html.HistoryEntry{{
			ID:       "r1",
			Title:    "Career Roadmap: A → B",
			Timeline: "3-months",
			SavedAt:  time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		}},
	})
	if err != nil {
		t.Fatalf("render history: %v", err)
	}
	page := string(out)
	for _, want := range []string{`id="roadmap-r1"`, "Career Roadmap: A → B", "3-months", "2024-05-01 09:30 UTC"} {
		if !strings.Contains(page, want) {
			t.Errorf("expected history to contain %q", want)
		}
	}
}

func TestRenderer_CustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"roadmap.tpl": {Data: []byte("{{ appName }}|{{ tree.title }}|{% for phase in tree.phases %}{{ phase.heading }}{% endfor %}")},
	}
	renderer, err := html.New(html.WithTemplatesFS(files), html.WithAppName("Paths"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), render.Project(model.Roadmap{
		Title: "T",
		Steps: []model.PhaseStep{{Phase: "Only"}},
	}), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "Paths|T|Phase 1: Only" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestFormFields(t *testing.T) {
	got := strings.Join(html.FormFields(3), ",")
	if got != "timeline,additionalInfo" {
		t.Fatalf("unexpected step 3 fields %q", got)
	}
	if html.FormFields(0) != nil {
		t.Fatalf("expected no fields for unknown step")
	}
}

func newRenderer(t *testing.T) *html.Renderer {
	t.Helper()
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}
