package wizard

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-roadmap/pkg/model"
)

// FallbackPolicy decides what Submit does when the generator fails.
type FallbackPolicy string

const (
	// FallbackEnabled substitutes FallbackRoadmap and reports the failure to
	// the observer instead of returning it.
	FallbackEnabled FallbackPolicy = "enabled"
	// FallbackDisabled returns the failure as a *SubmissionError and leaves the
	// roadmap absent.
	FallbackDisabled FallbackPolicy = "disabled"
)

// ParseFallbackPolicy maps configuration strings onto a policy. Empty input
// selects FallbackEnabled.
func ParseFallbackPolicy(raw string) (FallbackPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "enabled", "on", "true", "demo":
		return FallbackEnabled, nil
	case "disabled", "off", "false", "strict":
		return FallbackDisabled, nil
	default:
		return "", fmt.Errorf("wizard: unknown fallback policy %q", raw)
	}
}

// FallbackEvent describes a substitution performed by Submit.
type FallbackEvent struct {
	Input   model.FormInput
	Err     error
	Roadmap model.Roadmap
}

// FallbackObserver is notified after every fallback substitution. It runs
// outside the session lock and may call back into the session.
type FallbackObserver func(FallbackEvent)

// FallbackRoadmap returns the built-in roadmap used when the generator fails.
// Only the title and timeline depend on the input.
func FallbackRoadmap(input model.FormInput) model.Roadmap {
	return model.Roadmap{
		Title:    fmt.Sprintf("Career Roadmap: %s → %s", input.CurrentRole, input.DreamJob),
		Timeline: string(input.Timeline),
		Steps: []model.PhaseStep{
			{
				Phase:       "Foundation Building",
				Duration:    "1-2 months",
				Description: "Build strong fundamentals in core technologies",
				Skills:      []string{"JavaScript fundamentals", "React basics", "Git version control"},
				Courses:     []string{"JavaScript Complete Course", "React for Beginners"},
				Projects:    []string{"Personal portfolio website", "Todo app with React"},
			},
			{
				Phase:       "Skill Development",
				Duration:    "2-3 months",
				Description: "Develop backend and database skills",
				Skills:      []string{"Node.js", "Database design", "API development"},
				Courses:     []string{"Node.js Masterclass", "Database Design Course"},
				Projects:    []string{"REST API project", "Full-stack web application"},
			},
			{
				Phase:       "Advanced Topics",
				Duration:    "2-3 months",
				Description: "Learn advanced concepts and deployment",
				Skills:      []string{"Cloud platforms", "DevOps basics", "System design"},
				Courses:     []string{"AWS Fundamentals", "Docker & Kubernetes"},
				Projects:    []string{"Deployed cloud application", "Microservices project"},
			},
			{
				Phase:       "Job Preparation",
				Duration:    "1 month",
				Description: "Prepare for job applications and interviews",
				Skills:      []string{"Interview preparation", "Portfolio optimization", "Networking"},
				Courses:     []string{"Technical Interview Prep", "Resume Writing"},
				Projects:    []string{"Complete portfolio", "Open source contributions"},
			},
		},
		MarketInsights: model.MarketInsights{
			AverageSalary:  "$85,000 - $120,000",
			JobGrowth:      "+22% (Much faster than average)",
			TopCompanies:   []string{"Google", "Microsoft", "Amazon", "Meta", "Netflix"},
			InDemandSkills: []string{"React", "Node.js", "TypeScript", "AWS", "Docker"},
		},
	}
}
