package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtgtools/commanderforge/internal/deckgen"
	"github.com/mtgtools/commanderforge/internal/synergy"
)

var generateCmd = &cobra.Command{
	Use:   "generate <commander name>",
	Short: "Generate a Commander deck",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

var (
	flagBudget         float64
	flagMaxCardPrice   float64
	flagPreferCheapest bool
	flagKeywordFocus   []string
	flagPlaneswalkers  int
	flagRandomTags     int
	flagSeed           int64
	flagJSON           bool
)

func init() {
	generateCmd.Flags().Float64Var(&flagBudget, "budget", 0, "total deck budget in USD (0 = unlimited)")
	generateCmd.Flags().Float64Var(&flagMaxCardPrice, "max-card-price", 0, "per-card USD ceiling (0 = unlimited)")
	generateCmd.Flags().BoolVar(&flagPreferCheapest, "prefer-cheapest", false, "prefer cheaper cards on score ties")
	generateCmd.Flags().StringSliceVar(&flagKeywordFocus, "focus", nil, "theme keywords to boost (repeatable)")
	generateCmd.Flags().IntVar(&flagPlaneswalkers, "planeswalkers", 0, "exact planeswalker count")
	generateCmd.Flags().IntVar(&flagRandomTags, "random-tags", 0, "number of random theme tags to inject")
	generateCmd.Flags().Int64Var(&flagSeed, "seed", 0, "random seed for reproducible generation")
	generateCmd.Flags().BoolVar(&flagJSON, "json", false, "print the deck as JSON")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
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
	generator := deckgen.NewGenerator(db, synergy.NewScorer(rules), logger)

	constraints := deckgen.DefaultConstraints()
	constraints.TotalBudget = flagBudget
	constraints.MaxCardPrice = flagMaxCardPrice
	constraints.PreferCheapest = flagPreferCheapest
	constraints.KeywordFocus = flagKeywordFocus
	constraints.CardTypeWeights.Planeswalkers = flagPlaneswalkers
	constraints.RandomTagCount = flagRandomTags
	constraints.Seed = flagSeed

	deck, err := generator.Generate(cmd.Context(), args[0], constraints)
	if err != nil {
		return err
	}

	if flagJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(deck)
	}

	printDeck(deck)
	return nil
}

func printDeck(deck *deckgen.Deck) {
	fmt.Printf("Commander: %s\n", deck.Commander.Name)
	if len(deck.CommanderProfile.Strategies) > 0 {
		fmt.Printf("Strategies: %s\n", strings.Join(deck.CommanderProfile.Strategies, ", "))
	}
	fmt.Printf("Cards: %d   Total price: $%.2f\n\n", deck.CardCount(), deck.TotalPrice)

	for _, entry := range deck.Entries {
		if entry.Quantity > 1 {
			fmt.Printf("%dx %s\n", entry.Quantity, entry.Card.Name)
			continue
		}
		fmt.Printf("1x %s\n", entry.Card.Name)
	}

	if len(deck.Warnings) > 0 {
		fmt.Println()
		for _, warning := range deck.Warnings {
			fmt.Printf("warning: %s\n", warning)
		}
	}
	for _, note := range deck.Notes {
		fmt.Printf("note: %s\n", note)
	}
}
