package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-roadmap/internal/server"
	"github.com/goliatone/go-roadmap/pkg/renderers/html"
	"github.com/goliatone/go-roadmap/pkg/store"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		addr      string
		noHistory bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the roadmap API and the browser wizard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			policy, err := a.cfg.FallbackPolicy()
			if err != nil {
				return err
			}

			gen, err := a.generator(ctx)
			if err != nil {
				return err
			}

			pageOptions := []html.Option{}
			if dir := a.cfg.Server.TemplatesDir; dir != "" {
				pageOptions = append(pageOptions, html.WithTemplatesDir(dir))
			}
			pages, err := html.New(pageOptions...)
			if err != nil {
				return err
			}

			options := []server.Option{
				server.WithLogger(a.logger),
				server.WithPages(pages),
				server.WithFallbackPolicy(policy),
				server.WithAllowedOrigins(a.cfg.Server.AllowedOrigins...),
				server.WithSessionKey([]byte(a.cfg.Server.SessionKey)),
				server.WithSessionTTL(a.cfg.Server.SessionTTL),
				server.WithShutdownGrace(a.cfg.Server.ShutdownGrace),
			}
			if !noHistory {
				history, err := store.Open(ctx, a.cfg.Store.Path, store.WithLogger(a.logger))
				if err != nil {
					return err
				}
				defer history.Close()
				options = append(options, server.WithHistory(history))
				a.logger.Info("roadmap history enabled", zap.String("path", history.Path()))
			}

			srv, err := server.New(gen, options...)
			if err != nil {
				return err
			}
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Disable saving roadmaps")
	return cmd
}
