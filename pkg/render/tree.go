package render

import (
	"fmt"

	"github.com/goliatone/go-roadmap/pkg/model"
)

// Tree is the display projection of a roadmap.
type Tree struct {
	Title    string        `json:"title"`
	Timeline string        `json:"timeline"`
	Insights InsightsBlock `json:"insights"`
	Phases   []PhaseBlock  `json:"phases"`
}

// InsightsBlock holds the market insight section.
type InsightsBlock struct {
	AverageSalary  string   `json:"averageSalary"`
	JobGrowth      string   `json:"jobGrowth"`
	TopCompanies   []string `json:"topCompanies"`
	InDemandSkills []string `json:"inDemandSkills"`
}

// PhaseBlock is one numbered roadmap phase.
type PhaseBlock struct {
	Position    int      `json:"position"`
	Name        string   `json:"name"`
	Heading     string   `json:"heading"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Courses     []string `json:"courses"`
	Projects    []string `json:"projects"`
}

// Project builds the display tree for record without mutating it.
func Project(record model.Roadmap) Tree {
	tree := Tree{
		Title:    record.Title,
		Timeline: record.Timeline,
		Insights: InsightsBlock{
			AverageSalary:  record.MarketInsights.AverageSalary,
			JobGrowth:      record.MarketInsights.JobGrowth,
			TopCompanies:   copyList(record.MarketInsights.TopCompanies),
			InDemandSkills: copyList(record.MarketInsights.InDemandSkills),
		},
		Phases: make([]PhaseBlock, 0, len(record.Steps)),
	}

	for i, step := range record.Steps {
		position := i + 1
		tree.Phases = append(tree.Phases, PhaseBlock{
			Position:    position,
			Name:        step.Phase,
			Heading:     fmt.Sprintf("Phase %d: %s", position, step.Phase),
			Duration:    step.Duration,
			Description: step.Description,
			Skills:      copyList(step.Skills),
			Courses:     copyList(step.Courses),
			Projects:    copyList(step.Projects),
		})
	}
	return tree
}

func copyList(in []string) []string {
	return append([]string{}, in...)
}
