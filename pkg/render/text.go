package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

// Text renders a plain-text roadmap suitable for terminals and logs.
type Text struct {
	indent string
}

// NewText returns the plain-text renderer.
func NewText() *Text {
	return &Text{indent: "  "}
}

// Name reports the renderer identifier.
func (t *Text) Name() string { return "text" }

// ContentType reports the MIME type of Render output.
func (t *Text) ContentType() string { return "text/plain; charset=utf-8" }

// Render writes the tree in display order: header, market insights, phases.
func (t *Text) Render(ctx context.Context, tree Tree, _ RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, tree.Title)
	fmt.Fprintf(&buf, "Estimated Timeline: %s\n", tree.Timeline)

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "Market Insights")
	fmt.Fprintf(&buf, "%sAverage Salary: %s\n", t.indent, tree.Insights.AverageSalary)
	fmt.Fprintf(&buf, "%sJob Growth: %s\n", t.indent, tree.Insights.JobGrowth)
	fmt.Fprintf(&buf, "%sTop Hiring Companies: %s\n", t.indent, strings.Join(tree.Insights.TopCompanies, ", "))
	fmt.Fprintf(&buf, "%sIn-Demand Skills: %s\n", t.indent, strings.Join(tree.Insights.InDemandSkills, ", "))

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "Your Career Roadmap")
	for _, phase := range tree.Phases {
		fmt.Fprintf(&buf, "%s (%s)\n", phase.Heading, phase.Duration)
		if phase.Description != "" {
			fmt.Fprintf(&buf, "%s%s\n", t.indent, phase.Description)
		}
		t.writeList(&buf, "Skills to Learn", phase.Skills)
		t.writeList(&buf, "Recommended Courses", phase.Courses)
		t.writeList(&buf, "Projects to Build", phase.Projects)
	}
	return buf.Bytes(), nil
}

func (t *Text) writeList(buf *bytes.Buffer, label string, items []string) {
	fmt.Fprintf(buf, "%s%s:\n", t.indent, label)
	for _, item := range items {
		fmt.Fprintf(buf, "%s%s- %s\n", t.indent, t.indent, item)
	}
}
