package render

import (
	"context"
	"encoding/json"
	"fmt"
)

// JSON renders the display tree as indented JSON.
type JSON struct{}

// NewJSON returns the JSON renderer.
func NewJSON() *JSON { return &JSON{} }

// Name reports the renderer identifier.
func (JSON) Name() string { return "json" }

// ContentType reports the MIME type of Render output.
func (JSON) ContentType() string { return "application/json" }

// Render marshals the tree.
func (JSON) Render(ctx context.Context, tree Tree, _ RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render: marshal tree: %w", err)
	}
	return append(out, '\n'), nil
}
