package wizard_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-roadmap/pkg/model"
	"github.com/goliatone/go-roadmap/pkg/testsupport"
	"github.com/goliatone/go-roadmap/pkg/wizard"
)

func newSession(t *testing.T, gen wizard.Generator, opts ...wizard.Option) *wizard.Session {
	t.Helper()
	session, err := wizard.New(gen, opts...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session
}

func finalStepSession(t *testing.T, gen wizard.Generator, opts ...wizard.Option) *wizard.Session {
	t.Helper()
	session := newSession(t, gen, opts...)
	session.SetInput(testsupport.ValidInput())
	for session.Step() < wizard.FinalStep {
		if !session.Advance() {
			t.Fatalf("advance from step %d failed: %#v", session.Step(), session.Errors())
		}
	}
	return session
}

func TestNew_RequiresGenerator(t *testing.T) {
	if _, err := wizard.New(nil); !errors.Is(err, wizard.ErrNoGenerator) {
		t.Fatalf("expected ErrNoGenerator, got %v", err)
	}
}

func TestAdvance_ShortCurrentRoleBlocksFirstStep(t *testing.T) {
	for _, role := range []string{"", "a", "é"} {
		session := newSession(t, &testsupport.StubGenerator{})
		input := testsupport.ValidInput()
		input.CurrentRole = role
		session.SetInput(input)

		if session.Advance() {
			t.Fatalf("role %q: expected advance to fail", role)
		}
		if got := session.Step(); got != 1 {
			t.Fatalf("role %q: expected step 1, got %d", role, got)
		}
		if got := session.ErrorFor(model.FieldCurrentRole); got != "Current role must be at least 2 characters" {
			t.Fatalf("role %q: unexpected error %q", role, got)
		}
		if got := session.ErrorFor(model.FieldCurrentSkills); got != "" {
			t.Fatalf("role %q: skills should pass, got %q", role, got)
		}
	}
}

func TestAdvance_OnlyValidatesCurrentStep(t *testing.T) {
	session := newSession(t, &testsupport.StubGenerator{})
	session.SetInput(model.FormInput{CurrentRole: "Student", CurrentSkills: "Python"})

	if !session.Advance() {
		t.Fatalf("expected step 1 to pass with later steps empty: %#v", session.Errors())
	}
	if got := session.Step(); got != 2 {
		t.Fatalf("expected step 2, got %d", got)
	}

	if session.Advance() {
		t.Fatalf("expected step 2 to fail with empty dream job and experience")
	}
	want := map[string]string{
		model.FieldDreamJob:   "Dream job must be at least 2 characters",
		model.FieldExperience: "Please select your experience level",
	}
	if diff := cmp.Diff(want, session.Errors()); diff != "" {
		t.Fatalf("step 2 errors mismatch (-want +got):\n%s", diff)
	}
}

func TestAdvance_CapsAtFinalStep(t *testing.T) {
	session := newSession(t, &testsupport.StubGenerator{})
	session.SetInput(testsupport.ValidInput())

	for want := 2; want <= 3; want++ {
		if !session.Advance() {
			t.Fatalf("advance failed: %#v", session.Errors())
		}
		if got := session.Step(); got != want {
			t.Fatalf("expected step %d, got %d", want, got)
		}
	}

	if !session.Advance() {
		t.Fatalf("expected validation to pass on the final step")
	}
	if got := session.Step(); got != 3 {
		t.Fatalf("expected step to stay at 3, got %d", got)
	}
}

func TestSet_ClearsFieldErrorAndRejectsUnknown(t *testing.T) {
	session := newSession(t, &testsupport.StubGenerator{})
	session.Advance()
	if session.ErrorFor(model.FieldCurrentRole) == "" {
		t.Fatalf("expected a role error after failed advance")
	}

	if err := session.Set(model.FieldCurrentRole, "Designer"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := session.ErrorFor(model.FieldCurrentRole); got != "" {
		t.Fatalf("expected role error to clear, got %q", got)
	}
	if got := session.ErrorFor(model.FieldCurrentSkills); got == "" {
		t.Fatalf("expected skills error to remain")
	}

	if err := session.Set("salary", "1"); !errors.Is(err, wizard.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestRetreat_FloorsAtFirstStep(t *testing.T) {
	session := newSession(t, &testsupport.StubGenerator{})
	session.Retreat()
	if got := session.Step(); got != 1 {
		t.Fatalf("expected step 1, got %d", got)
	}

	session = finalStepSession(t, &testsupport.StubGenerator{})
	session.Set(model.FieldCurrentRole, "")
	session.Retreat()
	session.Retreat()
	if got := session.Step(); got != 1 {
		t.Fatalf("expected retreat to ignore validation and reach step 1, got %d", got)
	}
}

func TestProgress(t *testing.T) {
	session := newSession(t, &testsupport.StubGenerator{})
	session.SetInput(testsupport.ValidInput())

	var got []int
	for i := 0; i < 3; i++ {
		got = append(got, session.Progress())
		session.Advance()
	}
	if diff := cmp.Diff([]int{33, 67, 100}, got); diff != "" {
		t.Fatalf("progress mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_RequiresFinalStep(t *testing.T) {
	gen := &testsupport.StubGenerator{}
	session := newSession(t, gen)
	session.SetInput(testsupport.ValidInput())

	if _, err := session.Submit(context.Background()); !errors.Is(err, wizard.ErrNotFinalStep) {
		t.Fatalf("expected ErrNotFinalStep, got %v", err)
	}
	if len(gen.Calls()) != 0 {
		t.Fatalf("expected no outbound call")
	}
}

func TestSubmit_ValidatesWholeForm(t *testing.T) {
	gen := &testsupport.StubGenerator{}
	session := finalStepSession(t, gen)
	session.Set(model.FieldCurrentSkills, "Go")

	if _, err := session.Submit(context.Background()); !errors.Is(err, wizard.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if session.ErrorFor(model.FieldCurrentSkills) == "" {
		t.Fatalf("expected skills error to be attached")
	}
	if len(gen.Calls()) != 0 {
		t.Fatalf("expected no outbound call")
	}
}

func TestSubmit_SuccessStoresResponse(t *testing.T) {
	gen := &testsupport.StubGenerator{Result: testsupport.SampleRoadmap()}
	session := finalStepSession(t, gen)

	got, err := session.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := testsupport.DiffRoadmap(testsupport.SampleRoadmap(), got); diff != "" {
		t.Fatalf("roadmap mismatch (-want +got):\n%s", diff)
	}
	stored, ok := session.Roadmap()
	if !ok {
		t.Fatalf("expected roadmap to be stored")
	}
	if diff := testsupport.DiffRoadmap(got, stored); diff != "" {
		t.Fatalf("stored roadmap mismatch (-want +got):\n%s", diff)
	}

	calls := gen.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly one outbound call, got %d", len(calls))
	}
	if diff := cmp.Diff(testsupport.ValidInput(), calls[0]); diff != "" {
		t.Fatalf("outbound input mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_FailureFallsBackAndTogglesInFlight(t *testing.T) {
	var (
		during []bool
		events []wizard.FallbackEvent
	)
	gen := testsupport.FailingGenerator()
	session := finalStepSession(t, gen, wizard.WithFallbackObserver(func(ev wizard.FallbackEvent) {
		events = append(events, ev)
	}))
	gen.Hook = func(context.Context, model.FormInput) {
		during = append(during, session.InFlight())
	}

	if session.InFlight() {
		t.Fatalf("expected in-flight to start false")
	}
	got, err := session.Submit(context.Background())
	if err != nil {
		t.Fatalf("expected fallback to swallow the failure, got %v", err)
	}

	if diff := cmp.Diff([]bool{true}, during); diff != "" {
		t.Fatalf("in-flight during call mismatch (-want +got):\n%s", diff)
	}
	if session.InFlight() {
		t.Fatalf("expected in-flight to clear after the call")
	}

	want := wizard.FallbackRoadmap(testsupport.ValidInput())
	if diff := testsupport.DiffRoadmap(want, got); diff != "" {
		t.Fatalf("fallback roadmap mismatch (-want +got):\n%s", diff)
	}
	if got.Title != "Career Roadmap: Junior Developer → Senior Full-Stack Developer" || got.Timeline != "6-months" {
		t.Fatalf("unexpected fallback header %q / %q", got.Title, got.Timeline)
	}
	if len(got.Steps) != 4 || got.Steps[3].Phase != "Job Preparation" {
		t.Fatalf("unexpected fallback phases %#v", got.Steps)
	}

	if len(events) != 1 || !errors.Is(events[0].Err, testsupport.ErrGeneratorDown) {
		t.Fatalf("expected one fallback event carrying the cause, got %#v", events)
	}
	if session.Policy() != wizard.FallbackEnabled {
		t.Fatalf("expected fallback to be enabled by default")
	}
}

func TestSubmit_FallbackDisabledSurfacesError(t *testing.T) {
	gen := testsupport.FailingGenerator()
	session := finalStepSession(t, gen, wizard.WithFallbackPolicy(wizard.FallbackDisabled))

	_, err := session.Submit(context.Background())
	var subErr *wizard.SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected *SubmissionError, got %v", err)
	}
	if !errors.Is(err, testsupport.ErrGeneratorDown) {
		t.Fatalf("expected cause to unwrap, got %v", err)
	}
	if _, ok := session.Roadmap(); ok {
		t.Fatalf("expected roadmap to stay absent")
	}
	if session.InFlight() {
		t.Fatalf("expected in-flight to clear after failure")
	}
}

func TestSubmit_RejectsDuplicateWhileInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	gen := &testsupport.StubGenerator{
		Result: testsupport.SampleRoadmap(),
		Hook: func(context.Context, model.FormInput) {
			close(entered)
			<-release
		},
	}
	session := finalStepSession(t, gen)

	var (
		wg       sync.WaitGroup
		firstErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = session.Submit(context.Background())
	}()

	<-entered
	if !session.InFlight() {
		t.Fatalf("expected in-flight while the call is pending")
	}
	if _, err := session.Submit(context.Background()); !errors.Is(err, wizard.ErrSubmissionInFlight) {
		t.Fatalf("expected ErrSubmissionInFlight, got %v", err)
	}

	close(release)
	wg.Wait()

	if firstErr != nil {
		t.Fatalf("first submit: %v", firstErr)
	}
	if len(gen.Calls()) != 1 {
		t.Fatalf("expected one outbound call, got %d", len(gen.Calls()))
	}
}

func TestReset_ClearsRoadmapAndReturnsToFirstStep(t *testing.T) {
	session := finalStepSession(t, &testsupport.StubGenerator{Result: testsupport.SampleRoadmap()})
	if _, err := session.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	session.Reset()

	if got := session.Step(); got != 1 {
		t.Fatalf("expected step 1, got %d", got)
	}
	if _, ok := session.Roadmap(); ok {
		t.Fatalf("expected roadmap to be cleared")
	}
	if diff := cmp.Diff(model.FormInput{}, session.Input()); diff != "" {
		t.Fatalf("expected input to be cleared (-want +got):\n%s", diff)
	}
	if session.Errors() != nil {
		t.Fatalf("expected errors to be cleared")
	}
}

func TestReset_DuringSubmissionDiscardsLateResult(t *testing.T) {
	var session *wizard.Session
	gen := &testsupport.StubGenerator{
		Result: testsupport.SampleRoadmap(),
		Hook: func(context.Context, model.FormInput) {
			session.Reset()
		},
	}
	session = finalStepSession(t, gen)

	got, err := session.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.Title == "" {
		t.Fatalf("expected caller to still receive the roadmap")
	}
	if _, ok := session.Roadmap(); ok {
		t.Fatalf("expected reset to win over the late result")
	}
	if session.InFlight() {
		t.Fatalf("expected in-flight to clear")
	}
}

func TestSubmit_PanickingGeneratorClearsInFlight(t *testing.T) {
	calls := 0
	gen := wizard.GeneratorFunc(func(context.Context, model.FormInput) (model.Roadmap, error) {
		calls++
		if calls == 1 {
			panic("generator exploded")
		}
		return testsupport.SampleRoadmap(), nil
	})
	session := finalStepSession(t, gen)

	func() {
		defer func() {
			if recovered := recover(); recovered == nil {
				t.Fatalf("expected the generator panic to propagate")
			}
		}()
		_, _ = session.Submit(context.Background())
	}()

	if session.InFlight() {
		t.Fatalf("expected in-flight to clear after a panic")
	}
	got, err := session.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit after panic: %v", err)
	}
	if diff := cmp.Diff(testsupport.SampleRoadmap(), got); diff != "" {
		t.Fatalf("unexpected roadmap (-want +got):\n%s", diff)
	}
}

func TestReset_DuringFailedSubmissionSkipsObserver(t *testing.T) {
	var (
		session *wizard.Session
		events  int
	)
	gen := &testsupport.StubGenerator{
		Err: testsupport.ErrGeneratorDown,
		Hook: func(context.Context, model.FormInput) {
			session.Reset()
		},
	}
	session = finalStepSession(t, gen, wizard.WithFallbackObserver(func(wizard.FallbackEvent) {
		events++
	}))

	if _, err := session.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if events != 0 {
		t.Fatalf("expected no fallback event for a discarded result, got %d", events)
	}
	if _, ok := session.Roadmap(); ok {
		t.Fatalf("expected reset to win over the late fallback")
	}
}
