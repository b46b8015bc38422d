package model_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-roadmap/pkg/model"
)

func TestFormInputWithValue(t *testing.T) {
	in := model.FormInput{}
	for _, field := range []string{
		model.FieldCurrentRole,
		model.FieldCurrentSkills,
		model.FieldDreamJob,
		model.FieldExperience,
		model.FieldTimeline,
		model.FieldAdditionalInfo,
	} {
		var ok bool
		in, ok = in.WithValue(field, field+"-value")
		if !ok {
			t.Fatalf("expected field %q to be known", field)
		}
		got, _ := in.Value(field)
		if got != field+"-value" {
			t.Fatalf("field %q: expected stored value, got %q", field, got)
		}
	}

	if _, ok := in.WithValue("salary", "x"); ok {
		t.Fatalf("expected unknown field to be rejected")
	}
	if _, ok := in.Value("salary"); ok {
		t.Fatalf("expected unknown field lookup to fail")
	}
}

func TestRoadmapCloneDoesNotAlias(t *testing.T) {
	original := model.Roadmap{
		Title: "A",
		Steps: []model.PhaseStep{{Phase: "One", Skills: []string{"Go"}}},
		MarketInsights: model.MarketInsights{
			TopCompanies: []string{"Acme"},
		},
	}
	clone := original.Clone()
	clone.Steps[0].Skills[0] = "Rust"
	clone.MarketInsights.TopCompanies[0] = "Globex"

	if original.Steps[0].Skills[0] != "Go" {
		t.Fatalf("clone mutated original phase skills")
	}
	if original.MarketInsights.TopCompanies[0] != "Acme" {
		t.Fatalf("clone mutated original insights")
	}
}

func TestRoadmapNormalizeEncodesEmptyArrays(t *testing.T) {
	data, err := json.Marshal(model.Roadmap{Title: "X", Steps: []model.PhaseStep{{Phase: "P"}}}.Normalize())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"title":"X","timeline":"","steps":[{"phase":"P","duration":"","description":"","skills":[],"courses":[],"projects":[]}],"marketInsights":{"averageSalary":"","jobGrowth":"","topCompanies":[],"inDemandSkills":[]}}`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Fatalf("normalized JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumLabels(t *testing.T) {
	if !model.ExperienceSenior.Valid() || model.Experience("guru").Valid() {
		t.Fatalf("unexpected experience validity")
	}
	if got := model.Timeline6Months.Label(); got != "6 months (Balanced)" {
		t.Fatalf("unexpected timeline label %q", got)
	}
	if got := model.Timeline("someday").Label(); got != "someday" {
		t.Fatalf("expected raw value for unknown timeline, got %q", got)
	}
	if len(model.ExperienceOptions()) != 4 || len(model.TimelineOptions()) != 4 {
		t.Fatalf("expected four options per enum")
	}
}
