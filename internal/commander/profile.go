// Package commander derives a strategy profile from a commander's mechanic
// tags and validates commander eligibility.
package commander

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mtgtools/commanderforge/internal/cards"
	"github.com/mtgtools/commanderforge/internal/tagger"
)

// ErrInvalidCommander indicates a card that exists but cannot lead a
// Commander deck (wrong type, or not legal in the format).
var ErrInvalidCommander = errors.New("card is not a valid commander")

// Profile is a commander's strategy profile: the flattened set of its own tag
// names, the archetype strategies those tags imply, and its color identity.
// Strategies are a pure function of the tag set.
type Profile struct {
	Name          string   `json:"name"`
	Tags          []string `json:"tags"`
	Strategies    []string `json:"strategies"`
	ColorIdentity []string `json:"color_identity"`
}

// HasTag reports whether the commander itself carries the named tag.
func (p *Profile) HasTag(name string) bool {
	for _, tag := range p.Tags {
		if tag == name {
			return true
		}
	}
	return false
}

// HasStrategy reports whether the profile matched the named strategy.
func (p *Profile) HasStrategy(name string) bool {
	for _, strategy := range p.Strategies {
		if strategy == name {
			return true
		}
	}
	return false
}

// signature is one way to recognize a strategy: every listed tag must be
// present. A strategy may have several signatures; any one match suffices.
type signature []string

// strategySignatures is the fixed archetype signature table. A commander may
// match zero, one, or many strategies; all matches are kept.
var strategySignatures = map[string][]signature{
	"tokens": {
		{"mechanic_token_creation"},
		{"mechanic_token_payoff"},
		{"mechanic_token_doubling"},
	},
	"aristocrats": {
		{"mechanic_sacrifice", "mechanic_death_trigger"},
		{"mechanic_aristocrats_payoff"},
		{"mechanic_sacrifice", "mechanic_aristocrats_payoff"},
	},
	"+1/+1 counters": {
		{"mechanic_plus_one_counters"},
		{"mechanic_proliferate"},
		{"mechanic_counter_doubling"},
	},
	"spellslinger": {
		{"mechanic_spellslinger_payoff"},
		{"mechanic_copy_spell"},
		{"mechanic_cast_trigger", "type_instant"},
		{"mechanic_cast_trigger", "type_sorcery"},
	},
	"graveyard": {
		{"mechanic_reanimation"},
		{"mechanic_graveyard_recursion", "mechanic_self_mill"},
	},
	"lifegain": {
		{"mechanic_lifegain_payoff"},
		{"mechanic_lifegain", "mechanic_lifedrain"},
	},
	"lands": {
		{"mechanic_landfall"},
		{"mechanic_extra_lands", "mechanic_land_search"},
	},
	"artifacts": {
		{"mechanic_artifact_matters"},
		{"mechanic_treasure", "type_artifact"},
	},
	"enchantments": {
		{"mechanic_enchantment_matters"},
		{"mechanic_aura_matters"},
	},
	"voltron": {
		{"mechanic_equipment_matters"},
		{"mechanic_aura_matters", "mechanic_evasion_grant"},
	},
	"blink": {
		{"mechanic_blink"},
		{"mechanic_etb_trigger", "mechanic_clone"},
	},
	"go-wide": {
		{"mechanic_anthem", "mechanic_token_creation"},
		{"mechanic_overrun"},
	},
	"control": {
		{"mechanic_counterspell", "mechanic_board_wipe"},
		{"mechanic_stax"},
	},
	"combat": {
		{"mechanic_extra_combat"},
		{"mechanic_attack_trigger", "mechanic_combat_damage_trigger"},
	},
}

// IsEligible reports whether the card can legally lead a Commander deck:
// a legendary creature, or a card whose rules text explicitly grants
// commander eligibility (planeswalker commanders, backgrounds).
func IsEligible(card *cards.Card) bool {
	if card.IsLegendary() && card.HasType("Creature") {
		return true
	}
	return strings.Contains(strings.ToLower(card.OracleText), "can be your commander")
}

// Validate returns ErrInvalidCommander (wrapped with the reason) if the card
// cannot lead a deck.
func Validate(card *cards.Card) error {
	if !IsEligible(card) {
		return fmt.Errorf("%w: %s is not a legendary creature and its text does not grant eligibility", ErrInvalidCommander, card.Name)
	}
	if !card.IsLegalIn("commander") {
		return fmt.Errorf("%w: %s is not legal in Commander", ErrInvalidCommander, card.Name)
	}
	return nil
}

// BuildProfile reduces a commander's mechanics profile to its strategy
// profile. Priority and confidence are dropped at this layer; only tag
// identity matters for downstream matching.
func BuildProfile(card *cards.Card, mechanics *tagger.MechanicsProfile) *Profile {
	tagSet := make(map[string]bool, len(mechanics.Tags))
	tags := make([]string, 0, len(mechanics.Tags))
	for _, tag := range mechanics.Tags {
		if !tagSet[tag.Name] {
			tagSet[tag.Name] = true
			tags = append(tags, tag.Name)
		}
	}
	sort.Strings(tags)

	var strategies []string
	for strategy, signatures := range strategySignatures {
		for _, sig := range signatures {
			if matchesSignature(tagSet, sig) {
				strategies = append(strategies, strategy)
				break
			}
		}
	}
	sort.Strings(strategies)

	return &Profile{
		Name:          card.Name,
		Tags:          tags,
		Strategies:    strategies,
		ColorIdentity: cards.NormalizeIdentity(card.ColorIdentity),
	}
}

func matchesSignature(tagSet map[string]bool, sig signature) bool {
	for _, tag := range sig {
		if !tagSet[tag] {
			return false
		}
	}
	return true
}

// Strategies returns the names of all recognized strategies, sorted.
func Strategies() []string {
	names := make([]string, 0, len(strategySignatures))
	for name := range strategySignatures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
