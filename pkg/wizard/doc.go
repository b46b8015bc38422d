// Package wizard implements the three-step form controller behind the career
// roadmap wizard. A Session owns the step index, the collected FormInput, the
// per-field validation messages, the in-flight flag of the single outbound
// submission, and the resulting roadmap.
//
// Steps gate fields through an explicit table (see StepFields). Advance only
// validates the current step; Retreat never validates. Submit is only
// available on the final step and issues exactly one Generator call. When the
// call fails the session either substitutes FallbackRoadmap (FallbackEnabled,
// the default) or returns a *SubmissionError (FallbackDisabled). Reset clears
// the roadmap and the input and returns to the first step.
//
// Sessions are independent; there is no package-level mutable state.
package wizard
