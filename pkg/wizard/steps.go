package wizard

import "github.com/goliatone/go-roadmap/pkg/model"

const (
	// FirstStep is the step a new or reset session starts on.
	FirstStep = 1
	// FinalStep is the step on which Submit becomes available.
	FinalStep = 3
	// TotalSteps is the number of wizard screens.
	TotalSteps = FinalStep
)

var stepFields = map[int][]string{
	1: {model.FieldCurrentRole, model.FieldCurrentSkills},
	2: {model.FieldDreamJob, model.FieldExperience},
	3: {model.FieldTimeline},
}

// StepFields returns the field names gated by step, in display order. Steps
// outside [FirstStep, FinalStep] gate nothing.
func StepFields(step int) []string {
	fields := stepFields[step]
	if len(fields) == 0 {
		return nil
	}
	return append([]string(nil), fields...)
}

// StepOf reports the step that gates field, or 0 when the field is not gated
// (additionalInfo) or unknown.
func StepOf(field string) int {
	for step := FirstStep; step <= FinalStep; step++ {
		for _, name := range stepFields[step] {
			if name == field {
				return step
			}
		}
	}
	return 0
}
