package sanitize_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-roadmap/pkg/model"
	"github.com/goliatone/go-roadmap/pkg/sanitize"
	"github.com/goliatone/go-roadmap/pkg/testsupport"
)

func TestText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Junior Developer", want: "Junior Developer"},
		{name: "empty", in: "", want: ""},
		{name: "ampersand kept literal", in: "R&D Engineer", want: "R&D Engineer"},
		{name: "tags stripped", in: "<b>Data</b> Scientist", want: "Data Scientist"},
		{name: "script dropped", in: "PM<script>alert(1)</script>", want: "PM"},
		{name: "whitespace preserved", in: "  Go  ", want: "  Go  "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sanitize.Text(tc.in); got != tc.want {
				t.Fatalf("Text(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormInput(t *testing.T) {
	in := testsupport.ValidInput()
	in.DreamJob = `<a href="x">Staff Engineer</a>`
	in.AdditionalInfo = "<i>remote</i> only"

	got := sanitize.FormInput(in)
	want := testsupport.ValidInput()
	want.DreamJob = "Staff Engineer"
	want.AdditionalInfo = "remote only"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sanitized input mismatch (-want +got):\n%s", diff)
	}
}

func TestRoadmapDoesNotMutateInput(t *testing.T) {
	record := testsupport.SampleRoadmap()
	record.Steps[0].Skills[0] = "<em>Go</em>"
	record.MarketInsights.TopCompanies[0] = "<img src=x onerror=alert(1)>Acme"

	got := sanitize.Roadmap(record)
	if got.Steps[0].Skills[0] != "Go" {
		t.Fatalf("expected skill markup removed, got %q", got.Steps[0].Skills[0])
	}
	if got.MarketInsights.TopCompanies[0] != "Acme" {
		t.Fatalf("expected company markup removed, got %q", got.MarketInsights.TopCompanies[0])
	}
	if record.Steps[0].Skills[0] != "<em>Go</em>" {
		t.Fatalf("expected original roadmap untouched")
	}
	if diff := cmp.Diff(model.Roadmap{}, sanitize.Roadmap(model.Roadmap{})); diff != "" {
		t.Fatalf("empty roadmap mismatch (-want +got):\n%s", diff)
	}
}
