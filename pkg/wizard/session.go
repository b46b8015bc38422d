package wizard

import (
	"context"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-roadmap/pkg/model"
)

// Generator produces a roadmap for the collected input. The HTTP client in
// pkg/client and the local generator in pkg/generator both satisfy it.
type Generator interface {
	Generate(ctx context.Context, input model.FormInput) (model.Roadmap, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, input model.FormInput) (model.Roadmap, error)

// Generate calls fn.
func (fn GeneratorFunc) Generate(ctx context.Context, input model.FormInput) (model.Roadmap, error) {
	return fn(ctx, input)
}

// Session is one user's pass through the wizard. The lock is never held while
// the generator runs, so InFlight stays observable during a submission.
type Session struct {
	mu sync.Mutex

	generator Generator
	policy    FallbackPolicy
	observer  FallbackObserver
	logger    *zap.Logger

	step     int
	input    model.FormInput
	errors   map[string]string
	inFlight bool
	roadmap  *model.Roadmap
	// epoch changes on Reset so a submission that finishes afterwards does not
	// resurrect a cleared roadmap.
	epoch uint64
}

// New creates a session on the first step.
func New(generator Generator, options ...Option) (*Session, error) {
	if generator == nil {
		return nil, ErrNoGenerator
	}
	s := &Session{
		generator: generator,
		policy:    FallbackEnabled,
		logger:    zap.NewNop(),
		step:      FirstStep,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Step returns the current step index in [FirstStep, FinalStep].
func (s *Session) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Progress returns the completion percentage shown next to "Step N of 3".
func (s *Session) Progress() int {
	step := s.Step()
	return int(math.Round(float64(step) * 100 / float64(TotalSteps)))
}

// Policy reports the active fallback policy.
func (s *Session) Policy() FallbackPolicy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy
}

// Input returns a copy of the collected values.
func (s *Session) Input() model.FormInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// Set stores a field value and clears any message attached to that field.
func (s *Session) Set(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.input.WithValue(field, value)
	if !ok {
		return ErrUnknownField
	}
	s.input = next
	delete(s.errors, field)
	return nil
}

// SetInput replaces every collected value at once. Messages are kept until the
// next Advance or Submit re-validates.
func (s *Session) SetInput(input model.FormInput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = input
}

// Errors returns a copy of the per-field messages.
func (s *Session) Errors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.errors) == 0 {
		return nil
	}
	out := make(map[string]string, len(s.errors))
	for field, msg := range s.errors {
		out[field] = msg
	}
	return out
}

// ErrorFor returns the message attached to field, if any.
func (s *Session) ErrorFor(field string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors[field]
}

// Advance validates the fields of the current step. When they pass the step
// index moves forward (capped at FinalStep) and true is returned; otherwise
// the index is unchanged and every failing field carries its message.
func (s *Session) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := stepFields[s.step]
	for _, field := range fields {
		delete(s.errors, field)
	}
	failures := ValidateFields(s.input, fields...)
	if len(failures) > 0 {
		s.mergeErrors(failures)
		s.logger.Debug("wizard step rejected",
			zap.Int("step", s.step),
			zap.Int("failures", len(failures)))
		return false
	}
	if s.step < FinalStep {
		s.step++
	}
	return true
}

// Retreat moves back one step, never below FirstStep. It does not validate.
func (s *Session) Retreat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step > FirstStep {
		s.step--
	}
}

// InFlight reports whether a submission is running. Presentation layers use it
// to disable the submit action.
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Roadmap returns a copy of the current roadmap and whether one is present.
func (s *Session) Roadmap() (model.Roadmap, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roadmap == nil {
		return model.Roadmap{}, false
	}
	return s.roadmap.Clone(), true
}

// Submit sends the collected input to the generator. It is only available on
// the final step and rejects overlapping calls. The generator runs to
// completion; ctx only bounds the transport.
func (s *Session) Submit(ctx context.Context) (model.Roadmap, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return model.Roadmap{}, ErrSubmissionInFlight
	}
	if s.step != FinalStep {
		s.mu.Unlock()
		return model.Roadmap{}, ErrNotFinalStep
	}
	if failures := Validate(s.input); len(failures) > 0 {
		s.mergeErrors(failures)
		s.mu.Unlock()
		return model.Roadmap{}, ErrValidation
	}

	s.inFlight = true
	input := s.input
	epoch := s.epoch
	generator := s.generator
	logger := s.logger
	s.mu.Unlock()

	logger.Debug("submitting roadmap request",
		zap.String("currentRole", input.CurrentRole),
		zap.String("dreamJob", input.DreamJob))

	result, genErr := s.generate(ctx, generator, input)

	s.mu.Lock()
	s.inFlight = false
	policy := s.policy
	observer := s.observer

	var event *FallbackEvent
	if genErr != nil {
		if policy == FallbackDisabled {
			s.mu.Unlock()
			logger.Warn("roadmap submission failed", zap.Error(genErr))
			return model.Roadmap{}, &SubmissionError{Err: genErr}
		}
		result = FallbackRoadmap(input)
		event = &FallbackEvent{Input: input, Err: genErr, Roadmap: result.Clone()}
	}

	current := s.epoch == epoch
	if current {
		stored := result.Clone()
		s.roadmap = &stored
	}
	s.mu.Unlock()

	if event != nil {
		logger.Warn("roadmap submission failed, using fallback roadmap", zap.Error(genErr))
		// A reset during the call discarded the fallback, so nobody is shown it.
		if observer != nil && current {
			observer(*event)
		}
	}
	return result.Clone(), nil
}

// generate runs the generator and clears the in-flight flag if it panics, so
// the session stays usable after a recovered panic.
func (s *Session) generate(ctx context.Context, generator Generator, input model.FormInput) (result model.Roadmap, err error) {
	completed := false
	defer func() {
		if completed {
			return
		}
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()
	result, err = generator.Generate(ctx, input)
	completed = true
	return result, err
}

// Reset clears the roadmap, the collected input, and every message, and
// returns to FirstStep.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roadmap = nil
	s.input = model.FormInput{}
	s.errors = nil
	s.step = FirstStep
	s.epoch++
}

func (s *Session) mergeErrors(failures map[string]string) {
	if s.errors == nil {
		s.errors = make(map[string]string, len(failures))
	}
	for field, msg := range failures {
		s.errors[field] = msg
	}
}
