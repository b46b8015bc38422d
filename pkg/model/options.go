package model

// Experience is the self-reported seniority of the user.
type Experience string

const (
	ExperienceEntry  Experience = "entry"
	ExperienceMid    Experience = "mid"
	ExperienceSenior Experience = "senior"
	ExperienceLead   Experience = "lead"
)

// Timeline is the preferred duration of the roadmap.
type Timeline string

const (
	Timeline3Months  Timeline = "3-months"
	Timeline6Months  Timeline = "6-months"
	Timeline12Months Timeline = "12-months"
	TimelineFlexible Timeline = "flexible"
)

// Option pairs an enum value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var experienceOptions = []Option{
	{Value: string(ExperienceEntry), Label: "Entry Level (0-2 years)"},
	{Value: string(ExperienceMid), Label: "Mid Level (2-5 years)"},
	{Value: string(ExperienceSenior), Label: "Senior Level (5+ years)"},
	{Value: string(ExperienceLead), Label: "Lead/Management (8+ years)"},
}

var timelineOptions = []Option{
	{Value: string(Timeline3Months), Label: "3 months (Intensive)"},
	{Value: string(Timeline6Months), Label: "6 months (Balanced)"},
	{Value: string(Timeline12Months), Label: "12 months (Gradual)"},
	{Value: string(TimelineFlexible), Label: "Flexible timeline"},
}

// ExperienceOptions lists the experience levels in display order.
func ExperienceOptions() []Option {
	return append([]Option(nil), experienceOptions...)
}

// TimelineOptions lists the timelines in display order.
func TimelineOptions() []Option {
	return append([]Option(nil), timelineOptions...)
}

// Valid reports whether e is one of the known experience levels.
func (e Experience) Valid() bool {
	return hasOption(experienceOptions, string(e))
}

// Label returns the display label, or the raw value when unknown.
func (e Experience) Label() string {
	return labelFor(experienceOptions, string(e))
}

// Valid reports whether t is one of the known timelines.
func (t Timeline) Valid() bool {
	return hasOption(timelineOptions, string(t))
}

// Label returns the display label, or the raw value when unknown.
func (t Timeline) Label() string {
	return labelFor(timelineOptions, string(t))
}

func hasOption(options []Option, value string) bool {
	for _, opt := range options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

func labelFor(options []Option, value string) string {
	for _, opt := range options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}
