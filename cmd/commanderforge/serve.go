package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mtgtools/commanderforge/internal/api"
	"github.com/mtgtools/commanderforge/internal/deckgen"
	"github.com/mtgtools/commanderforge/internal/synergy"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	rules, err := newRuleSource(cfg, logger)
	if err != nil {
		return err
	}
	scorer := synergy.NewScorer(rules)
	generator := deckgen.NewGenerator(db, scorer, logger)

	server := api.NewServer(api.Config{Addr: cfg.Addr()}, db, generator, scorer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)
	if cfg.Rules.Watch {
		group.Go(func() error {
			err := rules.Watch(groupCtx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}
	group.Go(func() error {
		return server.Start(groupCtx)
	})
	return group.Wait()
}
