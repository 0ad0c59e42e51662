// Package deckgen builds complete Commander decks from a commander name and a
// set of generation constraints, scoring candidates against the commander's
// strategy profile and selecting under type-weight and budget rules.
package deckgen

import (
	"fmt"
)

// Type weight bounds. Weights are relative inclusion biases except
// planeswalkers, which is an exact count.
const (
	MinTypeWeight     = 0
	MaxTypeWeight     = 20
	NeutralTypeWeight = 5

	// MaxRandomTags bounds how many random theme tags a request may inject.
	MaxRandomTags = 10
)

// CardTypeWeights controls how strongly each primary card type is represented
// in the generated deck. 0 excludes the type entirely, 5 is neutral, higher
// values bias selection toward the type. Planeswalkers is an exact count
// rather than a bias.
type CardTypeWeights struct {
	Creatures     int `json:"creatures" toml:"creatures"`
	Artifacts     int `json:"artifacts" toml:"artifacts"`
	Enchantments  int `json:"enchantments" toml:"enchantments"`
	Instants      int `json:"instants" toml:"instants"`
	Sorceries     int `json:"sorceries" toml:"sorceries"`
	Planeswalkers int `json:"planeswalkers" toml:"planeswalkers"`
}

// DefaultCardTypeWeights returns neutral weights with no planeswalkers.
func DefaultCardTypeWeights() CardTypeWeights {
	return CardTypeWeights{
		Creatures:     NeutralTypeWeight,
		Artifacts:     NeutralTypeWeight,
		Enchantments:  NeutralTypeWeight,
		Instants:      NeutralTypeWeight,
		Sorceries:     NeutralTypeWeight,
		Planeswalkers: 0,
	}
}

// Constraints is one generation request's tunable input.
type Constraints struct {
	// TotalBudget is a USD ceiling for the whole deck; 0 means unlimited.
	TotalBudget float64 `json:"total_budget" toml:"total_budget"`
	// MaxCardPrice excludes any single card above this USD price; 0 means
	// unlimited.
	MaxCardPrice   float64 `json:"max_card_price" toml:"max_card_price"`
	PreferCheapest bool    `json:"prefer_cheapest" toml:"prefer_cheapest"`

	// Keywords and KeywordFocus are free-text theme hints. Matching cards get
	// an additive score bonus; they never hard-filter the pool.
	Keywords     []string `json:"keywords" toml:"keywords"`
	KeywordFocus []string `json:"keyword_focus" toml:"keyword_focus"`

	CardTypeWeights CardTypeWeights `json:"card_type_weights" toml:"card_type_weights"`

	// RandomTagCount injects this many randomly chosen vocabulary tags as
	// bonus themes, varying output across repeated runs for one commander.
	RandomTagCount int `json:"random_tag_count" toml:"random_tag_count"`

	// Seed fixes the random source for reproducible generations; 0 draws a
	// fresh seed per run.
	Seed int64 `json:"seed,omitempty" toml:"seed,omitempty"`
}

// DefaultConstraints returns an unconstrained request with neutral weights.
func DefaultConstraints() Constraints {
	return Constraints{CardTypeWeights: DefaultCardTypeWeights()}
}

// Validate checks constraint bounds.
func (c *Constraints) Validate() error {
	if c.TotalBudget < 0 {
		return fmt.Errorf("total_budget must not be negative, got %.2f", c.TotalBudget)
	}
	if c.MaxCardPrice < 0 {
		return fmt.Errorf("max_card_price must not be negative, got %.2f", c.MaxCardPrice)
	}
	if c.RandomTagCount < 0 || c.RandomTagCount > MaxRandomTags {
		return fmt.Errorf("random_tag_count must be between 0 and %d, got %d", MaxRandomTags, c.RandomTagCount)
	}
	weights := map[string]int{
		"creatures":     c.CardTypeWeights.Creatures,
		"artifacts":     c.CardTypeWeights.Artifacts,
		"enchantments":  c.CardTypeWeights.Enchantments,
		"instants":      c.CardTypeWeights.Instants,
		"sorceries":     c.CardTypeWeights.Sorceries,
		"planeswalkers": c.CardTypeWeights.Planeswalkers,
	}
	for name, w := range weights {
		if w < MinTypeWeight || w > MaxTypeWeight {
			return fmt.Errorf("card_type_weights.%s must be between %d and %d, got %d", name, MinTypeWeight, MaxTypeWeight, w)
		}
	}
	return nil
}

// typeCategory is the weight bucket a card falls into.
type typeCategory int

const (
	categoryOther typeCategory = iota
	categoryCreature
	categoryArtifact
	categoryEnchantment
	categoryInstant
	categorySorcery
	categoryPlaneswalker
	categoryLand
)

// weightFor returns the configured weight for a category. Categories without
// a weight knob are neutral.
func (w CardTypeWeights) weightFor(cat typeCategory) int {
	switch cat {
	case categoryCreature:
		return w.Creatures
	case categoryArtifact:
		return w.Artifacts
	case categoryEnchantment:
		return w.Enchantments
	case categoryInstant:
		return w.Instants
	case categorySorcery:
		return w.Sorceries
	case categoryPlaneswalker:
		return w.Planeswalkers
	default:
		return NeutralTypeWeight
	}
}
