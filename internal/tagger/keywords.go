package tagger

import (
	"sort"
	"strings"
)

// keywordRarityWeights maps recognized keyword mechanics to a rarity weight.
// Common evergreen keywords score low because sharing them says little about a
// deck's plan; rare set mechanics shared between two cards are a strong signal.
var keywordRarityWeights = map[string]float64{
	// Evergreen, very common
	"flying":         0.5,
	"vigilance":      0.5,
	"haste":          0.5,
	"reach":          0.4,
	"defender":       0.4,
	"trample":        0.6,
	"lifelink":       0.7,
	"deathtouch":     0.7,
	"first strike":   0.6,
	"double strike":  0.9,
	"menace":         0.7,
	"hexproof":       0.8,
	"ward":           0.7,
	"indestructible": 0.9,
	"flash":          0.7,

	// Common mechanics
	"scry":     0.6,
	"surveil":  0.8,
	"explore":  0.9,
	"cycling":  0.9,
	"kicker":   0.8,
	"equip":    0.8,
	"landfall": 1.2,
	"prowess":  1.0,
	"mill":     1.0,

	// Uncommon mechanics, meaningful overlap
	"flashback":   1.3,
	"unearth":     1.4,
	"escape":      1.4,
	"disturb":     1.4,
	"embalm":      1.4,
	"eternalize":  1.5,
	"convoke":     1.2,
	"affinity":    1.5,
	"delirium":    1.4,
	"threshold":   1.3,
	"devotion":    1.3,
	"exalted":     1.3,
	"extort":      1.4,
	"afterlife":   1.4,
	"mentor":      1.3,
	"riot":        1.3,
	"outlast":     1.4,
	"bolster":     1.4,
	"support":     1.3,
	"fabricate":   1.5,
	"populate":    1.6,
	"amass":       1.4,
	"blitz":       1.3,
	"connive":     1.4,
	"bargain":     1.4,

	// Rare build-arounds, strong overlap signal
	"proliferate": 1.8,
	"storm":       2.5,
	"cascade":     2.2,
	"dredge":      2.2,
	"infect":      2.0,
	"annihilator": 2.0,
	"persist":     1.9,
	"undying":     1.9,
	"evoke":       1.7,
	"madness":     1.9,
	"devour":      1.9,
	"exploit":     1.7,
	"emerge":      1.9,
	"mutate":      2.1,
	"encore":      1.9,
	"myriad":      1.9,
	"melee":       1.8,
	"partner":     1.6,
	"goad":        1.7,
	"monarch":     1.8,
	"cipher":      2.0,
	"overload":    1.8,
	"replicate":   2.0,
	"rebound":     1.6,
	"suspend":     1.8,
	"awaken":      1.7,
	"surge":       1.8,
	"improvise":   1.7,
	"ascend":      1.6,
}

const defaultKeywordWeight = 1.0

// KeywordRarityWeight returns the rarity weight for a keyword mechanic.
// Unrecognized keywords get a neutral weight.
func KeywordRarityWeight(keyword string) float64 {
	keyword = strings.ReplaceAll(strings.ToLower(keyword), "_", " ")
	if w, ok := keywordRarityWeights[keyword]; ok {
		return w
	}
	return defaultKeywordWeight
}

// RecognizedKeywords returns the sorted list of recognized keyword mechanics.
func RecognizedKeywords() []string {
	keywords := make([]string, 0, len(keywordRarityWeights))
	for kw := range keywordRarityWeights {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}

// ExtractKeywords scans oracle text for recognized keyword mechanics and
// returns them sorted. Matching is word-boundary-insensitive substring search
// over lowercased text, which is how keyword lines actually read on cards.
func ExtractKeywords(oracleText string) []string {
	if oracleText == "" {
		return nil
	}
	text := strings.ToLower(oracleText)

	var found []string
	for keyword := range keywordRarityWeights {
		if strings.Contains(text, keyword) {
			found = append(found, keyword)
		}
	}
	sort.Strings(found)
	return found
}

// SharedKeywords returns the recognized keywords present in both texts.
func SharedKeywords(textA, textB string) []string {
	inA := make(map[string]bool)
	for _, kw := range ExtractKeywords(textA) {
		inA[kw] = true
	}

	var shared []string
	for _, kw := range ExtractKeywords(textB) {
		if inA[kw] {
			shared = append(shared, kw)
		}
	}
	sort.Strings(shared)
	return shared
}

// knownCreatureTypes is the set of creature types the tagger derives tribal
// tags from. Not exhaustive; covers the tribes with meaningful Commander
// support.
var knownCreatureTypes = map[string]bool{
	"Angel": true, "Beast": true, "Bird": true, "Cat": true, "Cleric": true,
	"Demon": true, "Dinosaur": true, "Dragon": true, "Druid": true, "Dwarf": true,
	"Elemental": true, "Elf": true, "Faerie": true, "Fungus": true, "Giant": true,
	"Goblin": true, "God": true, "Golem": true, "Horror": true, "Human": true,
	"Hydra": true, "Illusion": true, "Insect": true, "Knight": true, "Kraken": true,
	"Merfolk": true, "Minotaur": true, "Monk": true, "Ninja": true, "Ooze": true,
	"Phoenix": true, "Phyrexian": true, "Pirate": true, "Rat": true, "Rogue": true,
	"Samurai": true, "Saproling": true, "Shaman": true, "Skeleton": true,
	"Sliver": true, "Snake": true, "Soldier": true, "Sphinx": true, "Spider": true,
	"Spirit": true, "Squirrel": true, "Treefolk": true, "Vampire": true,
	"Warrior": true, "Wizard": true, "Wolf": true, "Wurm": true, "Zombie": true,
}

// CreatureTypes extracts recognized creature types from a type line.
// The subtype section follows the em-dash separator.
func CreatureTypes(typeLine string) []string {
	if !strings.Contains(strings.ToLower(typeLine), "creature") {
		return nil
	}

	_, subtypes, ok := strings.Cut(typeLine, "—")
	if !ok {
		// Some data sources use a plain hyphen separator.
		_, subtypes, ok = strings.Cut(typeLine, " - ")
		if !ok {
			return nil
		}
	}

	var types []string
	for _, token := range strings.Fields(subtypes) {
		if knownCreatureTypes[token] {
			types = append(types, token)
		}
	}
	sort.Strings(types)
	return types
}
