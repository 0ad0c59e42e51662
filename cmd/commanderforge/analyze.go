package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtgtools/commanderforge/internal/commander"
	"github.com/mtgtools/commanderforge/internal/tagger"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <card name>",
	Short: "Show a card's mechanics profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var flagAnalyzeJSON bool

func init() {
	analyzeCmd.Flags().BoolVar(&flagAnalyzeJSON, "json", false, "print the profile as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	card, err := db.GetCardByName(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if card == nil {
		return fmt.Errorf("card not found: %q (run 'commanderforge sync' to populate the corpus)", args[0])
	}

	mech := tagger.New().Analyze(card)

	if flagAnalyzeJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(mech)
	}

	fmt.Printf("%s  [%s]\n", card.Name, card.TypeLine)
	fmt.Printf("Primary role: %s   Power level: %d/10\n", mech.PrimaryType, mech.PowerLevel)
	if len(mech.FunctionalRoles) > 0 {
		fmt.Printf("Roles: %s\n", strings.Join(mech.FunctionalRoles, ", "))
	}
	if len(mech.ArchetypeRelevance) > 0 {
		fmt.Printf("Archetypes: %s\n", strings.Join(mech.ArchetypeRelevance, ", "))
	}
	fmt.Println()
	for _, tag := range mech.Tags {
		fmt.Printf("  %-40s priority %2d  confidence %.2f\n", tag.Name, tag.Priority, tag.Confidence)
	}

	if commander.IsEligible(card) {
		profile := commander.BuildProfile(card, mech)
		if len(profile.Strategies) > 0 {
			fmt.Printf("\nAs a commander: %s\n", strings.Join(profile.Strategies, ", "))
		}
	}
	return nil
}
