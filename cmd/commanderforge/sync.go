package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mtgtools/commanderforge/internal/cards/scryfall"
	"github.com/mtgtools/commanderforge/internal/cardsync"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download the Scryfall bulk dataset into the local corpus",
	RunE:  runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
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

	syncer := cardsync.New(scryfall.NewClient(), db, logger)
	result, err := syncer.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d cards (%d skipped) in %s\n",
		result.Imported, result.Skipped, result.Elapsed.Round(time.Second))
	return nil
}
