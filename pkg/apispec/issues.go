package apispec

import (
	"errors"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Issue is one schema violation with the dotted path of the offending value.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationError lists every violation found in a payload.
type ValidationError struct {
	Schema string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return "apispec: validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return "apispec: " + e.Schema + " validation failed: " + strings.Join(parts, "; ")
}

// Fields returns the first message recorded for each field.
func (e *ValidationError) Fields() map[string]string {
	if e == nil {
		return nil
	}
	out := make(map[string]string, len(e.Issues))
	for _, issue := range e.Issues {
		if _, seen := out[issue.Field]; !seen {
			out[issue.Field] = issue.Message
		}
	}
	return out
}

func issuesFromError(err error) []Issue {
	var out []Issue
	collectIssues(err, &out)

	seen := make(map[Issue]struct{}, len(out))
	unique := out[:0]
	for _, issue := range out {
		if _, ok := seen[issue]; ok {
			continue
		}
		seen[issue] = struct{}{}
		unique = append(unique, issue)
	}
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Field < unique[j].Field
	})
	return unique
}

func collectIssues(err error, out *[]Issue) {
	switch typed := err.(type) {
	case nil:
		return
	case openapi3.MultiError:
		for _, inner := range typed {
			collectIssues(inner, out)
		}
		return
	case *openapi3.SchemaError:
		*out = append(*out, Issue{
			Field:   fieldPath(typed.JSONPointer()),
			Message: strings.TrimSpace(typed.Reason),
		})
		return
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		collectIssues(schemaErr, out)
		return
	}
	*out = append(*out, Issue{Message: strings.TrimSpace(err.Error())})
}

// fieldPath joins pointer segments into a dotted path, decoding the JSON
// pointer escapes.
func fieldPath(pointer []string) string {
	if len(pointer) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pointer))
	for _, segment := range pointer {
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		if segment == "" {
			continue
		}
		parts = append(parts, segment)
	}
	return strings.Join(parts, ".")
}
