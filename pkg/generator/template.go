package generator

import (
	"context"

	"github.com/goliatone/go-roadmap/pkg/model"
)

// TemplateSource returns the same four generic phases for every input. It is
// the source used when no model is configured and the substitute when a model
// call fails.
type TemplateSource struct{}

var _ PhaseSource = TemplateSource{}

// Name reports the source identifier.
func (TemplateSource) Name() string { return "template" }

// Phases returns the template phases.
func (TemplateSource) Phases(ctx context.Context, _ model.FormInput) ([]model.PhaseStep, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return TemplatePhases(), nil
}

// TemplatePhases returns a fresh copy of the template phases.
func TemplatePhases() []model.PhaseStep {
	return []model.PhaseStep{
		{
			Phase:       "Foundation Building",
			Duration:    "1-2 months",
			Skills:      []string{"Core fundamentals", "Industry basics", "Essential tools"},
			Courses:     []string{"Introduction to field", "Basic certification course"},
			Projects:    []string{"Beginner project", "Portfolio setup"},
			Description: "Build strong fundamentals and understand the industry landscape",
		},
		{
			Phase:       "Skill Development",
			Duration:    "2-3 months",
			Skills:      []string{"Intermediate skills", "Specialized knowledge", "Technical proficiency"},
			Courses:     []string{"Advanced course", "Specialization training"},
			Projects:    []string{"Intermediate project", "Real-world application"},
			Description: "Develop core competencies required for the target role",
		},
		{
			Phase:       "Advanced Learning",
			Duration:    "2-3 months",
			Skills:      []string{"Advanced concepts", "Leadership skills", "Industry trends"},
			Courses:     []string{"Expert-level training", "Industry certification"},
			Projects:    []string{"Complex project", "Open source contribution"},
			Description: "Master advanced concepts and gain practical experience",
		},
		{
			Phase:       "Career Transition",
			Duration:    "1 month",
			Skills:      []string{"Interview preparation", "Networking", "Portfolio optimization"},
			Courses:     []string{"Interview skills", "Personal branding"},
			Projects:    []string{"Portfolio completion", "Case study presentation"},
			Description: "Prepare for job applications and successful career transition",
		},
	}
}
