package synergy

import (
	"sort"
	"strings"

	"github.com/mtgtools/commanderforge/internal/cards"
	"github.com/mtgtools/commanderforge/internal/commander"
	"github.com/mtgtools/commanderforge/internal/tagger"
)

// Contribution is one rule's addition to a card's tag-based score, after
// weighting by the tag's synergy weight and detection confidence.
type Contribution struct {
	Source      string  `json:"source"` // "strategy:tokens", "tag:mechanic_landfall", or "shared"
	CardTag     string  `json:"card_tag"`
	Points      float64 `json:"points"`
	Description string  `json:"description,omitempty"`
}

// TagScore is the rule-table portion of a card's synergy score.
type TagScore struct {
	Total         float64        `json:"total"`
	Contributions []Contribution `json:"contributions,omitempty"`
}

// Score is the full synergy evaluation of one candidate card against a
// commander profile.
type Score struct {
	Total          float64        `json:"total"`
	TagBased       float64        `json:"tag_based"`
	KeywordOverlap float64        `json:"keyword_overlap"`
	Fallback       float64        `json:"fallback"`
	UsedFallback   bool           `json:"used_fallback"`
	Contributions  []Contribution `json:"contributions,omitempty"`
	SharedKeywords []string       `json:"shared_keywords,omitempty"`
}

// Scorer evaluates candidate cards against a commander profile using the rule
// table currently served by its RuleSource.
type Scorer struct {
	rules *RuleSource
}

// NewScorer creates a scorer backed by the given rule source.
func NewScorer(rules *RuleSource) *Scorer {
	return &Scorer{rules: rules}
}

// ScoreTags computes the rule-table score for a candidate's mechanics profile.
// Each matching rule contributes points scaled by the tag's synergy weight and
// detection confidence. Negative rules can pull individual contributions below
// zero, but the total is floored at zero.
func (s *Scorer) ScoreTags(profile *commander.Profile, mech *tagger.MechanicsProfile) TagScore {
	table := s.rules.Table()
	var result TagScore

	commanderTags := make(map[string]bool, len(profile.Tags))
	for _, tag := range profile.Tags {
		commanderTags[tag] = true
	}

	for _, tag := range mech.Tags {
		weight := tag.SynergyWeight * tag.Confidence

		for _, strategy := range profile.Strategies {
			rule, ok := table.byStrategy[strategy][tag.Name]
			if !ok {
				continue
			}
			result.Contributions = append(result.Contributions, Contribution{
				Source:      "strategy:" + strategy,
				CardTag:     tag.Name,
				Points:      rule.Points * weight,
				Description: rule.Description,
			})
		}

		for _, cmdTag := range profile.Tags {
			rule, ok := table.byCommanderTag[cmdTag][tag.Name]
			if !ok {
				continue
			}
			result.Contributions = append(result.Contributions, Contribution{
				Source:      "tag:" + cmdTag,
				CardTag:     tag.Name,
				Points:      rule.Points * weight,
				Description: rule.Description,
			})
		}

		if commanderTags[tag.Name] && table.sharedTagPoints != 0 {
			result.Contributions = append(result.Contributions, Contribution{
				Source:  "shared",
				CardTag: tag.Name,
				Points:  table.sharedTagPoints * weight,
			})
		}
	}

	for _, c := range result.Contributions {
		result.Total += c.Points
	}
	if result.Total < 0 {
		result.Total = 0
	}

	sort.Slice(result.Contributions, func(i, j int) bool {
		if result.Contributions[i].Points != result.Contributions[j].Points {
			return result.Contributions[i].Points > result.Contributions[j].Points
		}
		return result.Contributions[i].CardTag < result.Contributions[j].CardTag
	})

	return result
}

// KeywordOverlap scores ability keywords the commander and candidate share,
// weighting each shared keyword by its rarity. Common evergreen keywords like
// flying contribute little; rare build-arounds contribute more.
func KeywordOverlap(commanderText, candidateText string) (float64, []string) {
	shared := tagger.SharedKeywords(commanderText, candidateText)
	var score float64
	for _, keyword := range shared {
		score += tagger.KeywordRarityWeight(keyword)
	}
	return score, shared
}

// fallbackScore is the coarse heuristic used when a candidate matched no
// rules: color overlap with the commander plus small flat bonuses for broadly
// useful card types. It keeps obscure but on-color cards from scoring zero.
func fallbackScore(profile *commander.Profile, card *cards.Card) float64 {
	identity := make(map[string]bool, len(profile.ColorIdentity))
	for _, color := range profile.ColorIdentity {
		identity[color] = true
	}
	var overlap int
	for _, color := range card.ColorIdentity {
		if identity[color] {
			overlap++
		}
	}
	score := float64(overlap) * 0.5

	switch {
	case card.HasType("Creature"):
		score += 0.3
	case card.HasType("Instant"), card.HasType("Sorcery"):
		score += 0.2
	case card.HasType("Artifact"), card.HasType("Enchantment"):
		score += 0.25
	}
	if strings.Contains(strings.ToLower(card.OracleText), "draw a card") {
		score += 0.3
	}
	return score
}

// ScoreCard evaluates a candidate against the commander profile. The total is
// the tag-based score plus weighted keyword overlap; the fallback heuristic is
// substituted for the tag-based component only when it is zero.
func (s *Scorer) ScoreCard(profile *commander.Profile, commanderCard, candidate *cards.Card, mech *tagger.MechanicsProfile) Score {
	tagScore := s.ScoreTags(profile, mech)
	overlapScore, shared := KeywordOverlap(commanderCard.OracleText, candidate.OracleText)

	result := Score{
		TagBased:       tagScore.Total,
		KeywordOverlap: overlapScore,
		Contributions:  tagScore.Contributions,
		SharedKeywords: shared,
	}
	if tagScore.Total == 0 {
		result.UsedFallback = true
		result.Fallback = fallbackScore(profile, candidate)
		result.Total = result.Fallback + overlapScore
	} else {
		result.Total = tagScore.Total + overlapScore
	}
	return result
}
