package model

// Field names used by the wizard step table, validation errors, and the HTML
// form inputs. They match the JSON keys of FormInput.
const (
	FieldCurrentRole    = "currentRole"
	FieldCurrentSkills  = "currentSkills"
	FieldDreamJob       = "dreamJob"
	FieldExperience     = "experience"
	FieldTimeline       = "timeline"
	FieldAdditionalInfo = "additionalInfo"
)

// FormInput is the career information collected by the wizard and posted to
// the generate-roadmap endpoint.
type FormInput struct {
	CurrentRole    string     `json:"currentRole"`
	CurrentSkills  string     `json:"currentSkills"`
	DreamJob       string     `json:"dreamJob"`
	Experience     Experience `json:"experience"`
	Timeline       Timeline   `json:"timeline"`
	AdditionalInfo string     `json:"additionalInfo,omitempty"`
}

// Value returns the raw value stored for a field name and whether the name is
// known.
func (in FormInput) Value(field string) (string, bool) {
	switch field {
	case FieldCurrentRole:
		return in.CurrentRole, true
	case FieldCurrentSkills:
		return in.CurrentSkills, true
	case FieldDreamJob:
		return in.DreamJob, true
	case FieldExperience:
		return string(in.Experience), true
	case FieldTimeline:
		return string(in.Timeline), true
	case FieldAdditionalInfo:
		return in.AdditionalInfo, true
	default:
		return "", false
	}
}

// WithValue returns a copy of the input with field set to value. The boolean
// is false when the field name is unknown; the input is returned unchanged.
func (in FormInput) WithValue(field, value string) (FormInput, bool) {
	switch field {
	case FieldCurrentRole:
		in.CurrentRole = value
	case FieldCurrentSkills:
		in.CurrentSkills = value
	case FieldDreamJob:
		in.DreamJob = value
	case FieldExperience:
		in.Experience = Experience(value)
	case FieldTimeline:
		in.Timeline = Timeline(value)
	case FieldAdditionalInfo:
		in.AdditionalInfo = value
	default:
		return in, false
	}
	return in, true
}

// Roadmap is the generated career roadmap.
type Roadmap struct {
	Title          string         `json:"title"`
	Timeline       string         `json:"timeline"`
	Steps          []PhaseStep    `json:"steps"`
	MarketInsights MarketInsights `json:"marketInsights"`
}

// PhaseStep is one phase of a roadmap.
type PhaseStep struct {
	Phase       string   `json:"phase"`
	Duration    string   `json:"duration"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Courses     []string `json:"courses"`
	Projects    []string `json:"projects"`
}

// MarketInsights summarises the job market for the target role.
type MarketInsights struct {
	AverageSalary  string   `json:"averageSalary"`
	JobGrowth      string   `json:"jobGrowth"`
	TopCompanies   []string `json:"topCompanies"`
	InDemandSkills []string `json:"inDemandSkills"`
}

// Clone returns a deep copy so callers can hand the roadmap to renderers or
// stores without sharing backing arrays.
func (r Roadmap) Clone() Roadmap {
	out := r
	if r.Steps != nil {
		out.Steps = make([]PhaseStep, len(r.Steps))
		for i, step := range r.Steps {
			out.Steps[i] = step.Clone()
		}
	}
	out.MarketInsights = r.MarketInsights.Clone()
	return out
}

// Normalize replaces nil slices with empty ones so the JSON encoding always
// carries arrays, never null.
func (r Roadmap) Normalize() Roadmap {
	out := r.Clone()
	if out.Steps == nil {
		out.Steps = []PhaseStep{}
	}
	for i := range out.Steps {
		out.Steps[i].Skills = nonNil(out.Steps[i].Skills)
		out.Steps[i].Courses = nonNil(out.Steps[i].Courses)
		out.Steps[i].Projects = nonNil(out.Steps[i].Projects)
	}
	out.MarketInsights.TopCompanies = nonNil(out.MarketInsights.TopCompanies)
	out.MarketInsights.InDemandSkills = nonNil(out.MarketInsights.InDemandSkills)
	return out
}

// Clone deep-copies the phase lists.
func (p PhaseStep) Clone() PhaseStep {
	out := p
	out.Skills = cloneStrings(p.Skills)
	out.Courses = cloneStrings(p.Courses)
	out.Projects = cloneStrings(p.Projects)
	return out
}

// Clone deep-copies the insight lists.
func (m MarketInsights) Clone() MarketInsights {
	out := m
	out.TopCompanies = cloneStrings(m.TopCompanies)
	out.InDemandSkills = cloneStrings(m.InDemandSkills)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
