package html

import (
	"time"

	"github.com/goliatone/go-roadmap/pkg/model"
	"github.com/goliatone/go-roadmap/pkg/render"
)

// WizardView is everything the wizard page needs for one step.
type WizardView struct {
	Step       int
	TotalSteps int
	Progress   int
	Input      model.FormInput
	Errors     map[string]string
	InFlight   bool
	Notice     string
	Actions    WizardActions
	Hidden     map[string]string
}

// WizardActions are the form targets for the navigation buttons.
type WizardActions struct {
	Next     string
	Previous string
	Submit   string
}

// HistoryEntry is one saved roadmap listed on the dashboard page.
type HistoryEntry struct {
	ID       string
	Title    string
	Timeline string
	SavedAt  time.Time
	URL      string
}

// HistoryView lists saved roadmaps.
type HistoryView struct {
	Entries   []HistoryEntry
	WizardURL string
	Notice    string
}

type fieldKind string

const (
	kindInput    fieldKind = "input"
	kindTextarea fieldKind = "textarea"
	kindSelect   fieldKind = "select"
)

type fieldLayout struct {
	name        string
	label       string
	kind        fieldKind
	placeholder string
	rows        int
	options     func() []model.Option
}

type stepLayout struct {
	heading    string
	subheading string
	fields     []fieldLayout
}

// stepLayouts holds the copy and controls for each wizard step. The optional
// additionalInfo textarea rides along on the final step.
var stepLayouts = map[int]stepLayout{
	1: {
		heading:    "Tell us about yourself",
		subheading: "Let's understand your current situation",
		fields: []fieldLayout{
			{name: model.FieldCurrentRole, label: "Current Role/Position", kind: kindInput,
				placeholder: "e.g., Junior Developer, Student, Marketing Manager"},
			{name: model.FieldCurrentSkills, label: "Current Skills & Technologies", kind: kindTextarea, rows: 4,
				placeholder: "e.g., HTML, CSS, JavaScript, Python, Project Management, Communication..."},
		},
	},
	2: {
		heading:    "What's your dream job?",
		subheading: "Define your career aspirations",
		fields: []fieldLayout{
			{name: model.FieldDreamJob, label: "Dream Job/Role", kind: kindInput,
				placeholder: "e.g., Senior Full-Stack Developer, Data Scientist, Product Manager"},
			{name: model.FieldExperience, label: "Experience Level", kind: kindSelect,
				placeholder: "Select your experience level", options: model.ExperienceOptions},
		},
	},
	3: {
		heading:    "Final details",
		subheading: "Help us create the perfect roadmap",
		fields: []fieldLayout{
			{name: model.FieldTimeline, label: "Preferred Timeline", kind: kindSelect,
				placeholder: "Select your timeline", options: model.TimelineOptions},
			{name: model.FieldAdditionalInfo, label: "Additional Information (Optional)", kind: kindTextarea, rows: 3,
				placeholder: "Any specific preferences, constraints, or goals you'd like to mention..."},
		},
	},
}

// FormFields lists the input names rendered on step. Handlers use it to pick
// the posted values that belong to the page.
func FormFields(step int) []string {
	layout, ok := stepLayouts[step]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(layout.fields))
	for _, field := range layout.fields {
		out = append(out, field.name)
	}
	return out
}

func wizardData(view WizardView) (map[string]any, bool) {
	layout, ok := stepLayouts[view.Step]
	if !ok {
		return nil, false
	}

	fields := make([]map[string]any, 0, len(layout.fields))
	for _, field := range layout.fields {
		value, _ := view.Input.Value(field.name)
		entry := map[string]any{
			"name":        field.name,
			"label":       field.label,
			"kind":        string(field.kind),
			"placeholder": field.placeholder,
			"rows":        field.rows,
			"value":       value,
			"error":       view.Errors[field.name],
		}
		if field.options != nil {
			var options []map[string]any
			for _, opt := range field.options() {
				options = append(options, map[string]any{
					"value":    opt.Value,
					"label":    opt.Label,
					"selected": opt.Value == value,
				})
			}
			entry["options"] = options
		}
		fields = append(fields, entry)
	}

	total := view.TotalSteps
	if total <= 0 {
		total = len(stepLayouts)
	}
	return map[string]any{
		"step":       view.Step,
		"totalSteps": total,
		"progress":   view.Progress,
		"heading":    layout.heading,
		"subheading": layout.subheading,
		"fields":     fields,
		"inFlight":   view.InFlight,
		"notice":     view.Notice,
		"hidden":     hiddenData(view.Hidden),
		"actions": map[string]any{
			"next":     view.Actions.Next,
			"previous": view.Actions.Previous,
			"submit":   view.Actions.Submit,
		},
	}, true
}

func roadmapData(tree render.Tree, options render.RenderOptions) map[string]any {
	return map[string]any{
		"tree":        tree,
		"resetAction": options.ResetAction,
		"saveAction":  options.SaveAction,
		"saved":       options.Saved,
		"notice":      options.Notice,
		"hidden":      hiddenData(options.Hidden),
	}
}

func historyData(view HistoryView) map[string]any {
	entries := make([]map[string]any, 0, len(view.Entries))
	for _, entry := range view.Entries {
		entries = append(entries, map[string]any{
			"id":       entry.ID,
			"title":    entry.Title,
			"timeline": entry.Timeline,
			"savedAt":  entry.SavedAt.UTC().Format("2006-01-02 15:04 MST"),
			"url":      entry.URL,
		})
	}
	return map[string]any{
		"entries":   entries,
		"wizardURL": view.WizardURL,
		"notice":    view.Notice,
	}
}

func hiddenData(fields map[string]string) []map[string]string {
	sorted := render.SortedHiddenFields(fields)
	out := make([]map[string]string, 0, len(sorted))
	for _, field := range sorted {
		out = append(out, map[string]string{"name": field.Name, "value": field.Value})
	}
	return out
}
