package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-roadmap/pkg/client"
	"github.com/goliatone/go-roadmap/pkg/render"
	"github.com/goliatone/go-roadmap/pkg/renderers/tui"
	"github.com/goliatone/go-roadmap/pkg/store"
	"github.com/goliatone/go-roadmap/pkg/wizard"
)

func newWizardCommand(a *app) *cobra.Command {
	var (
		apiURL string
		local  bool
		save   bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Run the roadmap wizard in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			policy, err := a.cfg.FallbackPolicy()
			if err != nil {
				return err
			}

			var gen wizard.Generator
			if local {
				gen, err = a.generator(ctx)
			} else {
				if apiURL == "" {
					apiURL = a.cfg.API.BaseURL
				}
				gen, err = client.New(apiURL,
					client.WithTimeout(a.cfg.API.Timeout),
					client.WithLogger(a.logger))
			}
			if err != nil {
				return err
			}

			renderer, err := render.NewDefaultRegistry().Get(format)
			if err != nil {
				return err
			}

			runnerOptions := []tui.Option{
				tui.WithOutput(cmd.OutOrStdout()),
				tui.WithRenderer(renderer),
				tui.WithLogger(a.logger),
			}
			if save {
				history, err := store.Open(ctx, a.cfg.Store.Path, store.WithLogger(a.logger))
				if err != nil {
					return err
				}
				defer history.Close()
				runnerOptions = append(runnerOptions, tui.WithSaver(history))
			}

			session, err := wizard.New(gen,
				wizard.WithFallbackPolicy(policy),
				wizard.WithLogger(a.logger),
				wizard.WithFallbackObserver(func(event wizard.FallbackEvent) {
					fmt.Fprintln(cmd.ErrOrStderr(), "The roadmap service is unavailable, showing a sample roadmap instead.")
					a.logger.Debug("fallback roadmap shown", zap.Error(event.Err))
				}),
			)
			if err != nil {
				return err
			}

			err = tui.New(runnerOptions...).Run(ctx, session)
			if errors.Is(err, tui.ErrAborted) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&apiURL, "api", "", "Roadmap API base URL (default from config)")
	cmd.Flags().BoolVar(&local, "local", false, "Generate roadmaps in process instead of calling the API")
	cmd.Flags().BoolVar(&save, "save", false, "Offer to save generated roadmaps to the local history")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Roadmap output format (text, json)")
	return cmd
}
