package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-roadmap/pkg/model"
)

// ErrGeneratorDown is the failure returned by FailingGenerator.
var ErrGeneratorDown = errors.New("testsupport: generator unavailable")

// ValidInput returns a FormInput that passes every step.
func ValidInput() model.FormInput {
	return model.FormInput{
		CurrentRole:    "Junior Developer",
		CurrentSkills:  "HTML, CSS, JavaScript",
		DreamJob:       "Senior Full-Stack Developer",
		Experience:     model.ExperienceMid,
		Timeline:       model.Timeline6Months,
		AdditionalInfo: "Prefers remote work",
	}
}

// SampleRoadmap returns a small two-phase roadmap with insights.
func SampleRoadmap() model.Roadmap {
	return model.Roadmap{
		Title:    "Career Roadmap: Junior Developer → Senior Full-Stack Developer",
		Timeline: "6-months",
		Steps: []model.PhaseStep{
			{
				Phase:       "Backend Basics",
				Duration:    "2 months",
				Description: "Learn server-side development",
				Skills:      []string{"Go", "SQL"},
				Courses:     []string{"Go by Example"},
				Projects:    []string{"Todo API"},
			},
			{
				Phase:       "Deployment",
				Duration:    "1 month",
				Description: "Ship to production",
				Skills:      []string{"Docker"},
				Courses:     []string{"Docker Deep Dive", "Kubernetes Basics"},
				Projects:    []string{"Deployed API"},
			},
		},
		MarketInsights: model.MarketInsights{
			AverageSalary:  "$90,000 - $140,000",
			JobGrowth:      "+20%",
			TopCompanies:   []string{"Acme", "Globex", "Initech"},
			InDemandSkills: []string{"Go", "Kubernetes"},
		},
	}
}

// StubGenerator returns a scripted roadmap or error and records every input it
// receives. Hook, when set, runs inside Generate before returning.
type StubGenerator struct {
	Result model.Roadmap
	Err    error
	Hook   func(ctx context.Context, input model.FormInput)

	mu     sync.Mutex
	inputs []model.FormInput
}

// Generate satisfies wizard.Generator.
func (g *StubGenerator) Generate(ctx context.Context, input model.FormInput) (model.Roadmap, error) {
	g.mu.Lock()
	g.inputs = append(g.inputs, input)
	g.mu.Unlock()

	if g.Hook != nil {
		g.Hook(ctx, input)
	}
	if g.Err != nil {
		return model.Roadmap{}, g.Err
	}
	return g.Result.Clone(), nil
}

// Calls returns the inputs received so far.
func (g *StubGenerator) Calls() []model.FormInput {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]model.FormInput(nil), g.inputs...)
}

// FailingGenerator returns a stub that always fails with ErrGeneratorDown.
func FailingGenerator() *StubGenerator {
	return &StubGenerator{Err: ErrGeneratorDown}
}

// MustLoadRoadmap reads a JSON fixture into a Roadmap.
func MustLoadRoadmap(t *testing.T, path string) model.Roadmap {
	t.Helper()

	roadmap, err := LoadRoadmap(path)
	if err != nil {
		t.Fatalf("load roadmap: %v", err)
	}
	return roadmap
}

// LoadRoadmap reads a JSON fixture into a Roadmap without requiring a
// *testing.T.
func LoadRoadmap(path string) (model.Roadmap, error) {
	if path == "" {
		return model.Roadmap{}, errors.New("testsupport: roadmap path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Roadmap{}, fmt.Errorf("testsupport: read roadmap: %w", err)
	}
	var out model.Roadmap
	if err := json.Unmarshal(data, &out); err != nil {
		return model.Roadmap{}, fmt.Errorf("testsupport: unmarshal roadmap: %w", err)
	}
	return out, nil
}

// MustJSON marshals value or fails the test.
func MustJSON(t *testing.T, value any) []byte {
	t.Helper()
	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

// DiffRoadmap returns a cmp diff between two roadmaps.
func DiffRoadmap(want, got model.Roadmap) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
