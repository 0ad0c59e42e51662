package tagger

import (
	"sort"
	"strings"

	"github.com/mtgtools/commanderforge/internal/cards"
)

// MechanicTag is one detected mechanic on a card.
type MechanicTag struct {
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	Priority      int      `json:"priority"`   // 1-10, higher = more central to the card
	Confidence    float64  `json:"confidence"` // 0-1, detector certainty
	Evidence      []string `json:"evidence,omitempty"`
	SynergyWeight float64  `json:"synergy_weight"`
}

// MechanicsProfile is the derived per-card analysis result. It is computed
// fresh on every Analyze call; callers that want caching should key it by card
// identity plus an oracle-text hash so text changes invalidate the entry.
type MechanicsProfile struct {
	CardName           string        `json:"card_name"`
	PrimaryType        string        `json:"primary_type"` // single semantic role
	FunctionalRoles    []string      `json:"functional_roles"`
	PowerLevel         int           `json:"power_level"` // 1-10 heuristic
	ArchetypeRelevance []string      `json:"archetype_relevance"`
	SynergyKeywords    []string      `json:"synergy_keywords"`
	Tags               []MechanicTag `json:"tags"`
}

// TagNames returns the profile's tag names in profile order.
func (p *MechanicsProfile) TagNames() []string {
	names := make([]string, len(p.Tags))
	for i, tag := range p.Tags {
		names[i] = tag.Name
	}
	return names
}

// HasTag reports whether the profile carries the named tag.
func (p *MechanicsProfile) HasTag(name string) bool {
	for _, tag := range p.Tags {
		if tag.Name == name {
			return true
		}
	}
	return false
}

// Tagger analyzes cards against the static vocabulary. It holds no mutable
// state and is safe for concurrent use.
type Tagger struct{}

// New creates a Tagger.
func New() *Tagger {
	return &Tagger{}
}

// Analyze produces a MechanicsProfile for the card. It is a pure function of
// the card's oracle text, type line, and keyword list: the same card always
// yields the same profile. Missing oracle text is not an error; keyword and
// type tags still apply.
func (t *Tagger) Analyze(card *cards.Card) *MechanicsProfile {
	text := strings.ToLower(card.OracleText)

	seen := make(map[string]bool)
	var tags []MechanicTag

	add := func(tag MechanicTag) {
		// A tag name is unique per card. Overlapping namespaces for the same
		// underlying mechanic (mechanic_x vs ability_keyword_x) are distinct
		// names here; folding them is a curation concern, not the tagger's.
		if seen[tag.Name] {
			return
		}
		seen[tag.Name] = true
		tags = append(tags, tag)
	}

	// Named keyword abilities from the keywords field are certain.
	for _, keyword := range card.Keywords {
		name := AbilityKeywordPrefix + NormalizeTagToken(keyword)
		entry, _ := LookupTag(name)
		add(MechanicTag{
			Name:          name,
			Category:      entry.Category,
			Priority:      keywordPriority(card),
			Confidence:    1.0,
			Evidence:      []string{keyword},
			SynergyWeight: entry.SynergyWeight,
		})
	}

	// Free-text pattern battery.
	if text != "" {
		for i := range detectorBattery {
			det, ok := detectorBattery[i].detect(text)
			if !ok {
				continue
			}
			entry, known := LookupTag(det.tag)
			if !known {
				// Detector for a tag outside the vocabulary: drift, handled
				// by curation tooling. Skip rather than emit an unknown name.
				continue
			}
			add(MechanicTag{
				Name:          det.tag,
				Category:      entry.Category,
				Priority:      centralityAdjusted(det, text),
				Confidence:    det.confidence,
				Evidence:      det.evidence,
				SynergyWeight: entry.SynergyWeight,
			})
		}
	}

	// Tribal tags from the type line.
	for _, creatureType := range CreatureTypes(card.TypeLine) {
		name := TribalPrefix + NormalizeTagToken(creatureType)
		entry, _ := LookupTag(name)
		add(MechanicTag{
			Name:          name,
			Category:      entry.Category,
			Priority:      3,
			Confidence:    1.0,
			Evidence:      []string{creatureType},
			SynergyWeight: entry.SynergyWeight,
		})
	}

	// Card type tags.
	for _, cardType := range []string{"creature", "artifact", "enchantment", "instant", "sorcery", "planeswalker", "land"} {
		if !card.HasType(cardType) {
			continue
		}
		name := TypePrefix + cardType
		entry, _ := LookupTag(name)
		add(MechanicTag{
			Name:          name,
			Category:      entry.Category,
			Priority:      1,
			Confidence:    1.0,
			SynergyWeight: entry.SynergyWeight,
		})
	}

	// Deterministic order: priority descending, ties by name ascending.
	sort.SliceStable(tags, func(i, j int) bool {
		if tags[i].Priority != tags[j].Priority {
			return tags[i].Priority > tags[j].Priority
		}
		return tags[i].Name < tags[j].Name
	})

	profile := &MechanicsProfile{
		CardName:        card.Name,
		Tags:            tags,
		SynergyKeywords: ExtractKeywords(card.OracleText),
	}
	profile.PrimaryType = primaryType(tags)
	profile.FunctionalRoles = functionalRoles(tags)
	profile.PowerLevel = powerLevel(card, tags)
	profile.ArchetypeRelevance = archetypeRelevance(tags)

	return profile
}

// keywordPriority rates how central a named keyword is to the card: a keyword
// on a card with little other text is the card's identity; on a wall of text
// it is an upside.
func keywordPriority(card *cards.Card) int {
	textLen := len(card.OracleText)
	switch {
	case textLen == 0:
		return 6
	case textLen < 60:
		return 5
	case textLen < 200:
		return 4
	default:
		return 3
	}
}

// centralityAdjusted bumps a detection's base priority when the matched text
// accounts for a large share of the card's rules text.
func centralityAdjusted(det detection, text string) int {
	matched := 0
	for _, ev := range det.evidence {
		matched += len(ev)
	}
	priority := det.priority
	share := float64(matched) / float64(len(text))
	switch {
	case share > 0.5:
		priority += 2
	case share > 0.25:
		priority++
	}
	if priority > 10 {
		priority = 10
	}
	return priority
}

// roleByTag maps specific tags to their semantic role. Tags not listed fall
// back to roleByCategory.
var roleByTag = map[string]string{
	"mechanic_ramp":                "ramp",
	"mechanic_mana_rock":           "ramp",
	"mechanic_land_search":         "ramp",
	"mechanic_extra_lands":         "ramp",
	"mechanic_card_draw":           "draw",
	"mechanic_wheel":               "draw",
	"mechanic_tutor":               "tutor",
	"mechanic_removal_targeted":    "removal",
	"mechanic_board_wipe":          "removal",
	"mechanic_counterspell":        "interaction",
	"mechanic_discard":             "interaction",
	"mechanic_graveyard_hate":      "interaction",
	"mechanic_burn":                "removal",
	"mechanic_token_creation":      "token-producer",
	"mechanic_token_payoff":        "payoff",
	"mechanic_token_doubling":      "payoff",
	"mechanic_aristocrats_payoff":  "payoff",
	"mechanic_lifegain_payoff":     "payoff",
	"mechanic_spellslinger_payoff": "payoff",
	"mechanic_tribal_payoff":       "payoff",
	"mechanic_reanimation":         "recursion",
	"mechanic_graveyard_recursion": "recursion",
	"mechanic_overrun":             "finisher",
	"mechanic_extra_combat":        "finisher",
	"mechanic_extra_turn":          "finisher",
	"mechanic_alt_win":             "finisher",
	"mechanic_anthem":              "support",
	"mechanic_protection":          "support",
	"mechanic_evasion_grant":       "support",
}

var roleByCategory = map[Category]string{
	CategoryTribal:        "tribal",
	CategoryTokens:        "token-producer",
	CategoryResources:     "ramp",
	CategoryCombat:        "combat",
	CategoryRemoval:       "removal",
	CategoryTriggers:      "value",
	CategorySynergyThemes: "synergy",
	CategoryCounters:      "counters",
	CategoryWinConditions: "finisher",
	CategoryCardTypes:     "utility",
	CategoryManual:        "utility",
	CategoryOther:         "utility",
}

func roleFor(tag MechanicTag) string {
	if role, ok := roleByTag[tag.Name]; ok {
		return role
	}
	if role, ok := roleByCategory[tag.Category]; ok {
		return role
	}
	return "utility"
}

// primaryType picks the role of the single highest-priority functional tag.
// Tags are already sorted priority desc, name asc, so the first non-type tag
// wins and ties break deterministically on name order.
func primaryType(tags []MechanicTag) string {
	for _, tag := range tags {
		if tag.Category == CategoryCardTypes {
			continue
		}
		return roleFor(tag)
	}
	return "utility"
}

func functionalRoles(tags []MechanicTag) []string {
	seen := make(map[string]bool)
	var roles []string
	for _, tag := range tags {
		if tag.Category == CategoryCardTypes {
			continue
		}
		role := roleFor(tag)
		if !seen[role] {
			seen[role] = true
			roles = append(roles, role)
		}
	}
	return roles
}

// powerLevel estimates card strength 1-10: many high-priority mechanics on a
// cheap card rate high, a single low-priority mechanic on an expensive card
// rates low.
func powerLevel(card *cards.Card, tags []MechanicTag) int {
	prioritySum := 0
	functional := 0
	for _, tag := range tags {
		if tag.Category == CategoryCardTypes {
			continue
		}
		functional++
		prioritySum += tag.Priority
	}
	if functional == 0 {
		return 1
	}

	level := 2 + prioritySum/3
	if card.CMC <= 3 && functional >= 3 {
		level++
	}
	if card.CMC >= 7 {
		level--
	}
	if level < 1 {
		level = 1
	}
	if level > 10 {
		level = 10
	}
	return level
}

// archetypeHints maps tags to the archetype labels they are relevant to.
var archetypeHints = map[string][]string{
	"mechanic_token_creation":      {"tokens"},
	"mechanic_token_payoff":        {"tokens"},
	"mechanic_token_doubling":      {"tokens"},
	"mechanic_treasure":            {"tokens", "artifacts"},
	"mechanic_sacrifice":           {"aristocrats"},
	"mechanic_aristocrats_payoff":  {"aristocrats"},
	"mechanic_death_trigger":       {"aristocrats"},
	"mechanic_plus_one_counters":   {"+1/+1 counters"},
	"mechanic_proliferate":         {"+1/+1 counters"},
	"mechanic_counter_doubling":    {"+1/+1 counters"},
	"mechanic_spellslinger_payoff": {"spellslinger"},
	"mechanic_copy_spell":          {"spellslinger"},
	"mechanic_cast_trigger":        {"spellslinger"},
	"mechanic_reanimation":         {"graveyard"},
	"mechanic_graveyard_recursion": {"graveyard"},
	"mechanic_self_mill":           {"graveyard"},
	"mechanic_lifegain":            {"lifegain"},
	"mechanic_lifegain_payoff":     {"lifegain"},
	"mechanic_lifedrain":           {"lifegain"},
	"mechanic_landfall":            {"lands"},
	"mechanic_extra_lands":         {"lands"},
	"mechanic_land_search":         {"lands"},
	"mechanic_artifact_matters":    {"artifacts"},
	"mechanic_enchantment_matters": {"enchantments"},
	"mechanic_aura_matters":        {"enchantments", "voltron"},
	"mechanic_equipment_matters":   {"voltron"},
	"mechanic_blink":               {"blink"},
	"mechanic_etb_trigger":         {"blink"},
	"mechanic_tribal_payoff":       {"tribal"},
	"mechanic_anthem":              {"go-wide"},
	"mechanic_overrun":             {"go-wide"},
}

func archetypeRelevance(tags []MechanicTag) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, tag := range tags {
		for _, label := range archetypeHints[tag.Name] {
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
	}
	sort.Strings(labels)
	return labels
}
