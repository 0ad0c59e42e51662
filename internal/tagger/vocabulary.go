// Package tagger analyzes card rules text into a structured mechanic tag
// vocabulary and derives a per-card mechanics profile from those tags.
package tagger

import "strings"

// Category classifies a mechanic tag by the kind of game function it denotes.
type Category string

// Tag categories. These are fixed; new tags must fit one of them.
const (
	CategoryTribal        Category = "tribal"
	CategoryTokens        Category = "tokens"
	CategoryResources     Category = "resource_generation"
	CategoryCombat        Category = "combat_abilities"
	CategoryRemoval       Category = "removal_interaction"
	CategoryTriggers      Category = "triggers_abilities"
	CategorySynergyThemes Category = "synergy_themes"
	CategoryCounters      Category = "counters_manipulation"
	CategoryWinConditions Category = "win_conditions"
	CategoryCardTypes     Category = "card_types"
	CategoryManual        Category = "manual"
	CategoryOther         Category = "other"
)

// VocabularyEntry describes one recognized mechanic tag.
type VocabularyEntry struct {
	Name          string
	Category      Category
	SynergyWeight float64 // multiplier applied in synergy scoring, 1.0 neutral
}

// Vocabulary is the static catalog of recognized mechanic tags. Dynamic tag
// families (ability_keyword_*, tribal_*, type_*) are derived on demand via
// LookupTag and share per-family defaults.
var Vocabulary = []VocabularyEntry{
	// Tokens
	{Name: "mechanic_token_creation", Category: CategoryTokens, SynergyWeight: 1.2},
	{Name: "mechanic_token_payoff", Category: CategoryTokens, SynergyWeight: 1.3},
	{Name: "mechanic_token_doubling", Category: CategoryTokens, SynergyWeight: 1.5},
	{Name: "mechanic_treasure", Category: CategoryTokens, SynergyWeight: 1.1},

	// Resource generation
	{Name: "mechanic_ramp", Category: CategoryResources, SynergyWeight: 1.1},
	{Name: "mechanic_mana_rock", Category: CategoryResources, SynergyWeight: 1.0},
	{Name: "mechanic_land_search", Category: CategoryResources, SynergyWeight: 1.0},
	{Name: "mechanic_extra_lands", Category: CategoryResources, SynergyWeight: 1.1},
	{Name: "mechanic_card_draw", Category: CategoryResources, SynergyWeight: 1.1},
	{Name: "mechanic_wheel", Category: CategoryResources, SynergyWeight: 1.2},
	{Name: "mechanic_tutor", Category: CategoryResources, SynergyWeight: 1.2},
	{Name: "mechanic_cost_reduction", Category: CategoryResources, SynergyWeight: 1.1},

	// Removal and interaction
	{Name: "mechanic_removal_targeted", Category: CategoryRemoval, SynergyWeight: 1.0},
	{Name: "mechanic_board_wipe", Category: CategoryRemoval, SynergyWeight: 1.1},
	{Name: "mechanic_counterspell", Category: CategoryRemoval, SynergyWeight: 1.0},
	{Name: "mechanic_discard", Category: CategoryRemoval, SynergyWeight: 0.9},
	{Name: "mechanic_graveyard_hate", Category: CategoryRemoval, SynergyWeight: 0.9},
	{Name: "mechanic_burn", Category: CategoryRemoval, SynergyWeight: 0.9},

	// Triggers
	{Name: "mechanic_etb_trigger", Category: CategoryTriggers, SynergyWeight: 1.1},
	{Name: "mechanic_death_trigger", Category: CategoryTriggers, SynergyWeight: 1.2},
	{Name: "mechanic_attack_trigger", Category: CategoryTriggers, SynergyWeight: 1.1},
	{Name: "mechanic_combat_damage_trigger", Category: CategoryTriggers, SynergyWeight: 1.1},
	{Name: "mechanic_landfall", Category: CategoryTriggers, SynergyWeight: 1.2},
	{Name: "mechanic_cast_trigger", Category: CategoryTriggers, SynergyWeight: 1.1},

	// Synergy themes
	{Name: "mechanic_sacrifice", Category: CategorySynergyThemes, SynergyWeight: 1.2},
	{Name: "mechanic_aristocrats_payoff", Category: CategorySynergyThemes, SynergyWeight: 1.3},
	{Name: "mechanic_graveyard_recursion", Category: CategorySynergyThemes, SynergyWeight: 1.2},
	{Name: "mechanic_reanimation", Category: CategorySynergyThemes, SynergyWeight: 1.3},
	{Name: "mechanic_self_mill", Category: CategorySynergyThemes, SynergyWeight: 1.1},
	{Name: "mechanic_lifegain", Category: CategorySynergyThemes, SynergyWeight: 1.0},
	{Name: "mechanic_lifegain_payoff", Category: CategorySynergyThemes, SynergyWeight: 1.3},
	{Name: "mechanic_lifedrain", Category: CategorySynergyThemes, SynergyWeight: 1.1},
	{Name: "mechanic_spellslinger_payoff", Category: CategorySynergyThemes, SynergyWeight: 1.3},
	{Name: "mechanic_copy_spell", Category: CategorySynergyThemes, SynergyWeight: 1.2},
	{Name: "mechanic_blink", Category: CategorySynergyThemes, SynergyWeight: 1.2},
	{Name: "mechanic_artifact_matters", Category: CategorySynergyThemes, SynergyWeight: 1.2},
	{Name: "mechanic_enchantment_matters", Category: CategorySynergyThemes, SynergyWeight: 1.2},
	{Name: "mechanic_equipment_matters", Category: CategorySynergyThemes, SynergyWeight: 1.2},
	{Name: "mechanic_aura_matters", Category: CategorySynergyThemes, SynergyWeight: 1.2},
	{Name: "mechanic_clone", Category: CategorySynergyThemes, SynergyWeight: 1.0},
	{Name: "mechanic_theft", Category: CategorySynergyThemes, SynergyWeight: 1.0},
	{Name: "mechanic_untap", Category: CategorySynergyThemes, SynergyWeight: 1.1},

	// Counters
	{Name: "mechanic_plus_one_counters", Category: CategoryCounters, SynergyWeight: 1.2},
	{Name: "mechanic_proliferate", Category: CategoryCounters, SynergyWeight: 1.4},
	{Name: "mechanic_counter_doubling", Category: CategoryCounters, SynergyWeight: 1.5},

	// Combat abilities
	{Name: "mechanic_anthem", Category: CategoryCombat, SynergyWeight: 1.1},
	{Name: "mechanic_evasion_grant", Category: CategoryCombat, SynergyWeight: 1.0},
	{Name: "mechanic_protection", Category: CategoryCombat, SynergyWeight: 0.9},

	// Win conditions
	{Name: "mechanic_overrun", Category: CategoryWinConditions, SynergyWeight: 1.2},
	{Name: "mechanic_extra_combat", Category: CategoryWinConditions, SynergyWeight: 1.3},
	{Name: "mechanic_extra_turn", Category: CategoryWinConditions, SynergyWeight: 1.4},
	{Name: "mechanic_mill_opponent", Category: CategoryWinConditions, SynergyWeight: 1.0},
	{Name: "mechanic_alt_win", Category: CategoryWinConditions, SynergyWeight: 1.5},

	// Tribal payoffs (the generic "creatures of a shared type matter" tag;
	// per-tribe tribal_<type> tags are derived from the type line).
	{Name: "mechanic_tribal_payoff", Category: CategoryTribal, SynergyWeight: 1.3},

	// Miscellaneous
	{Name: "mechanic_group_hug", Category: CategoryOther, SynergyWeight: 0.8},
	{Name: "mechanic_stax", Category: CategoryOther, SynergyWeight: 1.1},
}

// Dynamic tag family prefixes.
const (
	AbilityKeywordPrefix = "ability_keyword_"
	TribalPrefix         = "tribal_"
	TypePrefix           = "type_"
)

var vocabularyIndex = func() map[string]VocabularyEntry {
	index := make(map[string]VocabularyEntry, len(Vocabulary))
	for _, entry := range Vocabulary {
		index[entry.Name] = entry
	}
	return index
}()

// LookupTag resolves a tag name to its vocabulary entry. Names in the dynamic
// families resolve to synthesized entries; unknown names report ok=false.
func LookupTag(name string) (VocabularyEntry, bool) {
	if entry, ok := vocabularyIndex[name]; ok {
		return entry, true
	}
	switch {
	case strings.HasPrefix(name, AbilityKeywordPrefix):
		keyword := strings.TrimPrefix(name, AbilityKeywordPrefix)
		return VocabularyEntry{
			Name:          name,
			Category:      CategoryCombat,
			SynergyWeight: KeywordRarityWeight(keyword),
		}, true
	case strings.HasPrefix(name, TribalPrefix):
		return VocabularyEntry{Name: name, Category: CategoryTribal, SynergyWeight: 1.1}, true
	case strings.HasPrefix(name, TypePrefix):
		return VocabularyEntry{Name: name, Category: CategoryCardTypes, SynergyWeight: 0.5}, true
	}
	return VocabularyEntry{}, false
}

// TagNames returns all static vocabulary tag names in declaration order.
func TagNames() []string {
	names := make([]string, len(Vocabulary))
	for i, entry := range Vocabulary {
		names[i] = entry.Name
	}
	return names
}

// NormalizeTagToken lowercases a keyword or creature type and replaces spaces
// and apostrophes so it can be embedded in a tag name.
func NormalizeTagToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
