package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-roadmap/pkg/client"
	"github.com/goliatone/go-roadmap/pkg/insights"
	"github.com/goliatone/go-roadmap/pkg/model"
)

// insightsSource is satisfied by the local catalog adapter and the API client.
type insightsSource interface {
	JobInsights(ctx context.Context, title string) (model.MarketInsights, error)
	TrendingSkills(ctx context.Context, industry string) ([]string, error)
}

type catalogSource struct {
	catalog *insights.Catalog
}

func (s catalogSource) JobInsights(ctx context.Context, title string) (model.MarketInsights, error) {
	return s.catalog.MarketInsights(ctx, title)
}

func (s catalogSource) TrendingSkills(ctx context.Context, industry string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.catalog.TrendingSkills(industry), nil
}

func newInsightsCommand(a *app) *cobra.Command {
	var (
		industry string
		remote   bool
		apiURL   string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "insights [job title]",
		Short: "Show market insights for a job title or trending skills for an industry",
		Args: func(cmd *cobra.Command, args []string) error {
			if industry == "" && len(args) == 0 {
				return fmt.Errorf("a job title or --industry is required")
			}
			return cobra.MaximumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var source insightsSource = catalogSource{catalog: insights.New(insights.WithLogger(a.logger))}
			if remote {
				if apiURL == "" {
					apiURL = a.cfg.API.BaseURL
				}
				c, err := client.New(apiURL,
					client.WithTimeout(a.cfg.API.Timeout),
					client.WithLogger(a.logger))
				if err != nil {
					return err
				}
				source = c
			}

			out := cmd.OutOrStdout()
			if industry != "" {
				skills, err := source.TrendingSkills(ctx, industry)
				if err != nil {
					return err
				}
				if asJSON {
					return writeIndented(out, map[string]any{"industry": industry, "trending_skills": skills})
				}
				fmt.Fprintf(out, "Trending skills in %s\n", industry)
				writeItems(out, skills)
				return nil
			}

			title := strings.TrimSpace(args[0])
			result, err := source.JobInsights(ctx, title)
			if err != nil {
				return err
			}
			if asJSON {
				return writeIndented(out, result)
			}
			fmt.Fprintf(out, "Market insights for %s\n", title)
			fmt.Fprintf(out, "Average Salary: %s\n", result.AverageSalary)
			fmt.Fprintf(out, "Job Growth: %s\n", result.JobGrowth)
			fmt.Fprintln(out, "Top Companies:")
			writeItems(out, result.TopCompanies)
			fmt.Fprintln(out, "In-Demand Skills:")
			writeItems(out, result.InDemandSkills)
			return nil
		},
	}

	cmd.Flags().StringVar(&industry, "industry", "", "Show trending skills for an industry instead")
	cmd.Flags().BoolVar(&remote, "remote", false, "Query the roadmap API instead of the built-in catalog")
	cmd.Flags().StringVar(&apiURL, "api", "", "Roadmap API base URL (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func writeItems(w io.Writer, items []string) {
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func writeIndented(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
