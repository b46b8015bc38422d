package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/goliatone/go-roadmap/pkg/model"
	"github.com/goliatone/go-roadmap/pkg/render"
	"github.com/goliatone/go-roadmap/pkg/wizard"
)

// Saver persists a generated roadmap and returns its identifier.
type Saver interface {
	Save(ctx context.Context, input model.FormInput, roadmap model.Roadmap) (string, error)
}

const (
	actionNext     = "Next Step"
	actionPrevious = "Previous"
	actionGenerate = "Generate My Roadmap"
)

type promptKind int

const (
	promptInput promptKind = iota
	promptTextArea
	promptSelect
)

type prompt struct {
	field   string
	message string
	help    string
	kind    promptKind
	options func() []model.Option
}

var stepPrompts = map[int][]prompt{
	1: {
		{field: model.FieldCurrentRole, message: "Current Role/Position", kind: promptInput,
			help: "e.g., Junior Developer, Student, Marketing Manager"},
		{field: model.FieldCurrentSkills, message: "Current Skills & Technologies", kind: promptTextArea,
			help: "e.g., HTML, CSS, JavaScript, Python, Project Management, Communication..."},
	},
	2: {
		{field: model.FieldDreamJob, message: "Dream Job/Role", kind: promptInput,
			help: "e.g., Senior Full-Stack Developer, Data Scientist, Product Manager"},
		{field: model.FieldExperience, message: "Experience Level", kind: promptSelect,
			options: model.ExperienceOptions},
	},
	3: {
		{field: model.FieldTimeline, message: "Preferred Timeline", kind: promptSelect,
			options: model.TimelineOptions},
		{field: model.FieldAdditionalInfo, message: "Additional Information (Optional)", kind: promptTextArea,
			help: "Any specific preferences, constraints, or goals you'd like to mention..."},
	},
}

// Runner walks a wizard session through the terminal: it prompts each step's
// fields, reports validation messages, submits on the final step, prints the
// roadmap, and offers to start over.
type Runner struct {
	driver   PromptDriver
	renderer render.Renderer
	out      io.Writer
	saver    Saver
	theme    Theme
	logger   *zap.Logger
}

// New constructs a Runner with defaults (survey driver, text renderer,
// stdout).
func New(options ...Option) *Runner {
	r := &Runner{
		renderer: render.NewText(),
		out:      os.Stdout,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(r.out)
	}
	return r
}

// Run drives session until the user declines to create another roadmap or
// aborts. Aborting returns ErrAborted.
func (r *Runner) Run(ctx context.Context, session *wizard.Session) error {
	if session == nil {
		return ErrNoSession
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if roadmap, ok := session.Roadmap(); ok {
			again, err := r.present(ctx, session.Input(), roadmap)
			if err != nil {
				return err
			}
			if !again {
				return nil
			}
			session.Reset()
			continue
		}

		if err := r.runStep(ctx, session); err != nil {
			return err
		}
	}
}

func (r *Runner) runStep(ctx context.Context, session *wizard.Session) error {
	step := session.Step()
	if err := r.info(ctx, fmt.Sprintf("Step %d of %d · %d%% Complete", step, wizard.TotalSteps, session.Progress())); err != nil {
		return err
	}

	for _, p := range stepPrompts[step] {
		value, err := r.ask(ctx, session, p)
		if err != nil {
			return err
		}
		if err := session.Set(p.field, value); err != nil {
			return fmt.Errorf("tui: set %s: %w", p.field, err)
		}
	}

	if step > wizard.FirstStep {
		forward := actionNext
		if step == wizard.FinalStep {
			forward = actionGenerate
		}
		choice, err := r.driver.Select(ctx, SelectConfig{
			Message: "Continue?",
			Options: []string{forward, actionPrevious},
		})
		if err != nil {
			return err
		}
		if choice == 1 {
			session.Retreat()
			return nil
		}
	}

	if !session.Advance() {
		return r.reportErrors(ctx, session, wizard.StepFields(step))
	}
	if step < wizard.FinalStep {
		return nil
	}
	return r.submit(ctx, session)
}

func (r *Runner) submit(ctx context.Context, session *wizard.Session) error {
	if err := r.info(ctx, "Generating Roadmap..."); err != nil {
		return err
	}

	_, err := session.Submit(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, wizard.ErrValidation):
		return r.reportErrors(ctx, session, []string{
			model.FieldCurrentRole, model.FieldCurrentSkills, model.FieldDreamJob,
			model.FieldExperience, model.FieldTimeline,
		})
	default:
		var subErr *wizard.SubmissionError
		if !errors.As(err, &subErr) {
			return err
		}
		r.logger.Warn("roadmap generation failed", zap.Error(subErr.Err))
		if infoErr := r.errorf(ctx, "Could not generate roadmap: %v", subErr.Err); infoErr != nil {
			return infoErr
		}
		retry, confirmErr := r.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
		if confirmErr != nil {
			return confirmErr
		}
		if !retry {
			return err
		}
		return nil
	}
}

// present prints the roadmap, offers to save it, and reports whether the user
// wants to start over.
func (r *Runner) present(ctx context.Context, input model.FormInput, roadmap model.Roadmap) (bool, error) {
	out, err := r.renderer.Render(ctx, render.Project(roadmap), render.RenderOptions{})
	if err != nil {
		return false, fmt.Errorf("tui: render roadmap: %w", err)
	}
	if _, err := r.out.Write(out); err != nil {
		return false, err
	}

	if r.saver != nil {
		save, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Save to Dashboard?"})
		if err != nil {
			return false, err
		}
		if save {
			id, err := r.saver.Save(ctx, input, roadmap)
			if err != nil {
				if infoErr := r.errorf(ctx, "Could not save roadmap: %v", err); infoErr != nil {
					return false, infoErr
				}
			} else if err := r.info(ctx, "Saved roadmap "+id); err != nil {
				return false, err
			}
		}
	}

	return r.driver.Confirm(ctx, ConfirmConfig{Message: "Create another roadmap?"})
}

func (r *Runner) ask(ctx context.Context, session *wizard.Session, p prompt) (string, error) {
	current, _ := session.Input().Value(p.field)
	switch p.kind {
	case promptSelect:
		options := p.options()
		labels := make([]string, len(options))
		defaultIdx := 0
		for i, opt := range options {
			labels[i] = opt.Label
			if opt.Value == current {
				defaultIdx = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      p.message,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         p.help,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(options) {
			return "", nil
		}
		return options[idx].Value, nil
	case promptTextArea:
		return r.driver.TextArea(ctx, TextAreaConfig{Message: p.message, Default: current, Help: p.help})
	default:
		return r.driver.Input(ctx, InputConfig{Message: p.message, Default: current, Help: p.help})
	}
}

func (r *Runner) reportErrors(ctx context.Context, session *wizard.Session, fields []string) error {
	for _, field := range fields {
		if msg := session.ErrorFor(field); msg != "" {
			if err := r.errorf(ctx, "%s", msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Runner) errorf(ctx context.Context, format string, args ...any) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+fmt.Sprintf(format, args...))
}
