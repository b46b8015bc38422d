package render

// RenderOptions carry per-request data renderers can use without touching the
// tree.
type RenderOptions struct {
	// ResetAction is the target of the "Create Another Roadmap" control. The
	// HTML renderer posts to it; text renderers ignore it.
	ResetAction string
	// SaveAction, when set, enables the "Save to Dashboard" control.
	SaveAction string
	// Saved marks the roadmap as already stored so the save control can be
	// hidden.
	Saved bool
	// Notice is a one-off message shown above the roadmap.
	Notice string
	// Hidden lists extra inputs (CSRF tokens) emitted inside every form.
	Hidden map[string]string
}
