package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-roadmap/pkg/apispec"
	"github.com/goliatone/go-roadmap/pkg/model"
	"github.com/goliatone/go-roadmap/pkg/render"
	"github.com/goliatone/go-roadmap/pkg/renderers/html"
	"github.com/goliatone/go-roadmap/pkg/sanitize"
)

func newRenderCommand(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [roadmap.json]",
		Short: "Render a roadmap JSON document",
		Long: `render reads a roadmap as produced by POST /generate-roadmap from a file,
or from stdin when no file is given or the file is "-", and writes it in the
requested format.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var source string
			if len(args) == 1 {
				source = args[0]
			}
			raw, err := readSource(cmd.InOrStdin(), source)
			if err != nil {
				return err
			}

			doc, err := apispec.Default()
			if err != nil {
				return err
			}
			if err := doc.ValidateJSON(apispec.SchemaRoadmap, raw); err != nil {
				return fmt.Errorf("invalid roadmap: %w", err)
			}
			var record model.Roadmap
			if err := json.Unmarshal(raw, &record); err != nil {
				return fmt.Errorf("decode roadmap: %w", err)
			}
			record = sanitize.Roadmap(record.Normalize())

			registry, err := renderRegistry(a)
			if err != nil {
				return err
			}
			renderer, err := registry.Get(format)
			if err != nil {
				return fmt.Errorf("%w (available: %s)", err, strings.Join(registry.List(), ", "))
			}

			out, err := renderer.Render(ctx, render.Project(record), render.RenderOptions{})
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, html)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func renderRegistry(a *app) (*render.Registry, error) {
	registry := render.NewDefaultRegistry()

	pageOptions := []html.Option{}
	if dir := a.cfg.Server.TemplatesDir; dir != "" {
		pageOptions = append(pageOptions, html.WithTemplatesDir(dir))
	}
	pages, err := html.New(pageOptions...)
	if err != nil {
		return nil, err
	}
	if err := registry.Register(pages); err != nil {
		return nil, err
	}
	return registry, nil
}

func readSource(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
