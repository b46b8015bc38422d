// Package sanitize strips markup from user-supplied and generated text before
// it is stored, rendered, or forwarded to a model.
package sanitize

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-roadmap/pkg/model"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Text removes every HTML element from raw and returns plain text. Entities
// are decoded so the templates' own escaping is not applied twice; the
// surrounding whitespace is left as entered.
func Text(raw string) string {
	if raw == "" {
		return ""
	}
	return html.UnescapeString(textSanitizer().Sanitize(raw))
}

// FormInput returns a copy of in with every field passed through Text.
func FormInput(in model.FormInput) model.FormInput {
	in.CurrentRole = Text(in.CurrentRole)
	in.CurrentSkills = Text(in.CurrentSkills)
	in.DreamJob = Text(in.DreamJob)
	in.Experience = model.Experience(Text(string(in.Experience)))
	in.Timeline = model.Timeline(Text(string(in.Timeline)))
	in.AdditionalInfo = Text(in.AdditionalInfo)
	return in
}

// Roadmap returns a sanitized deep copy of record.
func Roadmap(record model.Roadmap) model.Roadmap {
	out := record.Clone()
	out.Title = Text(out.Title)
	out.Timeline = Text(out.Timeline)
	for i := range out.Steps {
		step := &out.Steps[i]
		step.Phase = Text(step.Phase)
		step.Duration = Text(step.Duration)
		step.Description = Text(step.Description)
		list(step.Skills)
		list(step.Courses)
		list(step.Projects)
	}
	out.MarketInsights.AverageSalary = Text(out.MarketInsights.AverageSalary)
	out.MarketInsights.JobGrowth = Text(out.MarketInsights.JobGrowth)
	list(out.MarketInsights.TopCompanies)
	list(out.MarketInsights.InDemandSkills)
	return out
}

func list(items []string) {
	for i, item := range items {
		items[i] = Text(item)
	}
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
