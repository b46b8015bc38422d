package wizard

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFinalStep is returned when Submit is called before the last step.
	ErrNotFinalStep = errors.New("wizard: submit is only available on the final step")
	// ErrSubmissionInFlight is returned when Submit is called while a previous
	// submission has not completed.
	ErrSubmissionInFlight = errors.New("wizard: submission already in flight")
	// ErrValidation signals that the collected input failed validation. Field
	// messages are available through Session.Errors.
	ErrValidation = errors.New("wizard: form input is invalid")
	// ErrUnknownField is returned by Set for names outside FormInput.
	ErrUnknownField = errors.New("wizard: unknown field")
	// ErrNoGenerator is returned by New when no generator is supplied.
	ErrNoGenerator = errors.New("wizard: generator is required")
)

// SubmissionError wraps the failure of the outbound roadmap call. It is only
// returned when the fallback policy is FallbackDisabled.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	if e == nil || e.Err == nil {
		return "wizard: submission failed"
	}
	return fmt.Sprintf("wizard: submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
