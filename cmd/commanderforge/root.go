package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mtgtools/commanderforge/internal/config"
	"github.com/mtgtools/commanderforge/internal/storage"
	"github.com/mtgtools/commanderforge/internal/synergy"
)

var rootCmd = &cobra.Command{
	Use:   "commanderforge",
	Short: "Commander deck generation engine",
	Long: "commanderforge analyzes Magic card mechanics, profiles commander strategies,\n" +
		"and generates complete 100-card Commander decks from a local card corpus.",
	SilenceUsage: true,
}

var flagDebug bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "enable debug logging")
}

// newLogger builds the process logger, honoring the debug flag and config.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if flagDebug || cfg.App.DebugMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads and validates the application configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openDB opens the card database from configuration.
func openDB(cfg *config.Config) (*storage.DB, error) {
	path, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}
	dbConfig := storage.DefaultConfig(path)
	dbConfig.AutoMigrate = cfg.Database.AutoMigrate
	db, err := storage.Open(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open card database: %w", err)
	}
	return db, nil
}

// newRuleSource builds the synergy rule source, from file when configured.
func newRuleSource(cfg *config.Config, logger *slog.Logger) (*synergy.RuleSource, error) {
	if cfg.Rules.Path == "" {
		return synergy.NewRuleSource(logger), nil
	}
	rules, err := synergy.NewRuleSourceFromFile(cfg.Rules.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load synergy rules: %w", err)
	}
	return rules, nil
}
