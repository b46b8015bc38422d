package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-roadmap/pkg/config"
	"github.com/goliatone/go-roadmap/pkg/generator"
	"github.com/goliatone/go-roadmap/pkg/insights"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "roadmap",
		Short: "Build personalized career roadmaps",
		Long: `roadmap collects a career transition in a three step wizard and turns it
into a phased learning roadmap with market insights.

Commands:
  serve     - run the roadmap API and the browser wizard
  wizard    - run the wizard in the terminal
  render    - render a roadmap JSON file as text, json, or html
  insights  - show market insights for a job title`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			logConfig := zap.NewProductionConfig()
			if a.verbose {
				logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := logConfig.Build()
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newServeCommand(a),
		newWizardCommand(a),
		newRenderCommand(a),
		newInsightsCommand(a),
	)
	return root
}

// generator builds the in-process roadmap generator the configuration asks
// for.
func (a *app) generator(ctx context.Context) (*generator.Generator, error) {
	options := []generator.Option{
		generator.WithInsights(insights.New(insights.WithLogger(a.logger))),
		generator.WithLogger(a.logger),
	}

	if a.cfg.ResolvedProvider() == config.ProviderGenAI {
		model, err := generator.NewGenAIModel(ctx, generator.GenAIConfig{
			APIKey:          a.cfg.Generator.APIKey,
			Model:           a.cfg.Generator.Model,
			Temperature:     a.cfg.Generator.Temperature,
			MaxOutputTokens: a.cfg.Generator.MaxOutputTokens,
		})
		if err != nil {
			return nil, err
		}
		options = append(options, generator.WithSource(generator.NewModelSource(model, a.logger)))
	}

	gen := generator.New(options...)
	a.logger.Debug("roadmap generator ready", zap.String("source", gen.Source()))
	return gen, nil
}
