package generator

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-roadmap/pkg/model"
)

// SystemInstruction frames the model as a career counselor.
const SystemInstruction = "You are an expert career counselor and AI assistant specializing in creating detailed, " +
	"actionable career roadmaps. You provide practical, step-by-step guidance tailored to individual career transitions."

// PhaseCount is the number of phases every roadmap carries.
const PhaseCount = 4

// BuildPrompt renders the user prompt for input. The additional information
// line is only present when the user provided some.
func BuildPrompt(input model.FormInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed career roadmap for someone transitioning from %q to %q.\n\n", input.CurrentRole, input.DreamJob)

	b.WriteString("Current Situation:\n")
	fmt.Fprintf(&b, "- Current Role: %s\n", input.CurrentRole)
	fmt.Fprintf(&b, "- Current Skills: %s\n", input.CurrentSkills)
	fmt.Fprintf(&b, "- Experience Level: %s\n", input.Experience)
	fmt.Fprintf(&b, "- Timeline: %s\n", input.Timeline)
	if info := strings.TrimSpace(input.AdditionalInfo); info != "" {
		fmt.Fprintf(&b, "- Additional Information: %s\n", info)
	}

	fmt.Fprintf(&b, `
Please provide a structured roadmap with %d phases, each containing:
1. Phase name and duration
2. Key skills to learn
3. Recommended courses/resources
4. Practical projects to build
5. Brief description of the phase

Format your response as a JSON object with this structure:
{
  "steps": [
    {
      "phase": "Phase Name",
      "duration": "X months",
      "skills": ["skill1", "skill2", "skill3"],
      "courses": ["course1", "course2"],
      "projects": ["project1", "project2"],
      "description": "Brief description of what this phase accomplishes"
    }
  ]
}

Make the roadmap:
- Realistic and achievable within the specified timeline
- Progressive (building from basics to advanced)
- Practical with hands-on projects
- Industry-relevant and current
- Tailored to the specific career transition
`, PhaseCount)
	return b.String()
}

// Title is the roadmap heading for a transition.
func Title(input model.FormInput) string {
	return fmt.Sprintf("Career Roadmap: %s → %s", input.CurrentRole, input.DreamJob)
}
