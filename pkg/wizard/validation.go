package wizard

import (
	"unicode/utf8"

	"github.com/goliatone/go-roadmap/pkg/model"
)

// Rule validates a single FormInput field.
type Rule struct {
	Field   string
	Message string
	Check   func(value string) bool
}

var rules = map[string]Rule{
	model.FieldCurrentRole: {
		Field:   model.FieldCurrentRole,
		Message: "Current role must be at least 2 characters",
		Check:   minLength(2),
	},
	model.FieldCurrentSkills: {
		Field:   model.FieldCurrentSkills,
		Message: "Please list your current skills",
		Check:   minLength(5),
	},
	model.FieldDreamJob: {
		Field:   model.FieldDreamJob,
		Message: "Dream job must be at least 2 characters",
		Check:   minLength(2),
	},
	model.FieldExperience: {
		Field:   model.FieldExperience,
		Message: "Please select your experience level",
		Check:   func(v string) bool { return model.Experience(v).Valid() },
	},
	model.FieldTimeline: {
		Field:   model.FieldTimeline,
		Message: "Please select your preferred timeline",
		Check:   func(v string) bool { return model.Timeline(v).Valid() },
	},
}

// RuleFor returns the validation rule for field. additionalInfo has no rule.
func RuleFor(field string) (Rule, bool) {
	rule, ok := rules[field]
	return rule, ok
}

// ValidateFields checks the named fields of input and returns a message per
// failing field. Fields without a rule always pass. The result is nil when
// every field passes.
func ValidateFields(input model.FormInput, fields ...string) map[string]string {
	var out map[string]string
	for _, field := range fields {
		rule, ok := rules[field]
		if !ok {
			continue
		}
		value, _ := input.Value(field)
		if rule.Check(value) {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[field] = rule.Message
	}
	return out
}

// Validate checks every gated field across all steps.
func Validate(input model.FormInput) map[string]string {
	var fields []string
	for step := FirstStep; step <= FinalStep; step++ {
		fields = append(fields, stepFields[step]...)
	}
	return ValidateFields(input, fields...)
}

func minLength(n int) func(string) bool {
	return func(value string) bool {
		return utf8.RuneCountInString(value) >= n
	}
}
