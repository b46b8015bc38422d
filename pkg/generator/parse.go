package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-roadmap/pkg/model"
)

// ErrEmptyResponse is returned when a model answers with no text.
var ErrEmptyResponse = errors.New("generator: empty model response")

// ParseResponse extracts the phases from a model answer. The JSON object
// between the first '{' and the last '}' is decoded when possible; otherwise
// the answer is split on "Phase" markers by ParseText.
func ParseResponse(text string) ([]model.PhaseStep, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		var payload struct {
			Steps []model.PhaseStep `json:"steps"`
		}
		if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err == nil && len(payload.Steps) > 0 {
			return payload.Steps, nil
		}
	}
	return ParseText(text), nil
}

// ParseText builds placeholder phases from a free-text answer: one per
// "Phase" marker, padded or truncated to PhaseCount.
func ParseText(text string) []model.PhaseStep {
	pieces := strings.Split(text, "Phase")
	steps := make([]model.PhaseStep, 0, PhaseCount)
	for i := 1; i < len(pieces) && len(steps) < PhaseCount; i++ {
		steps = append(steps, model.PhaseStep{
			Phase:       fmt.Sprintf("Phase %d", i),
			Duration:    "2-3 months",
			Skills:      []string{"Skill analysis from text"},
			Courses:     []string{"Course recommendations"},
			Projects:    []string{"Project suggestions"},
			Description: "Phase description extracted from text",
		})
	}
	for len(steps) < PhaseCount {
		steps = append(steps, model.PhaseStep{
			Phase:       fmt.Sprintf("Phase %d", len(steps)+1),
			Duration:    "1-2 months",
			Skills:      []string{"Additional skills"},
			Courses:     []string{"Additional courses"},
			Projects:    []string{"Additional projects"},
			Description: "Additional phase for comprehensive learning",
		})
	}
	return steps
}
