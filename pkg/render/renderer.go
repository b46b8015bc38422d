package render

import "context"

// Renderer converts a display tree into a byte representation (text, HTML,
// JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, tree Tree, options RenderOptions) ([]byte, error)
}
