package synergy

import (
	"math"
	"testing"

	"github.com/mtgtools/commanderforge/internal/cards"
	"github.com/mtgtools/commanderforge/internal/commander"
	"github.com/mtgtools/commanderforge/internal/tagger"
)

const scoreEpsilon = 1e-9

func scorerFromTOML(t *testing.T, content string) *Scorer {
	t.Helper()
	path := writeRules(t, t.TempDir(), content)
	src, err := NewRuleSourceFromFile(path, nil)
	if err != nil {
		t.Fatalf("Failed to load rules: %v", err)
	}
	return NewScorer(src)
}

func mech(tags ...tagger.MechanicTag) *tagger.MechanicsProfile {
	return &tagger.MechanicsProfile{Tags: tags}
}

func tag(name string, weight, confidence float64) tagger.MechanicTag {
	return tagger.MechanicTag{Name: name, SynergyWeight: weight, Confidence: confidence}
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < scoreEpsilon
}

func TestScoreTagsStrategyRule(t *testing.T) {
	scorer := scorerFromTOML(t, `
[[rule]]
strategy = "tokens"
card_tag = "mechanic_token_payoff"
points = 3.0
description = "payoff"
`)
	profile := &commander.Profile{Strategies: []string{"tokens"}}

	score := scorer.ScoreTags(profile, mech(tag("mechanic_token_payoff", 1.2, 0.9)))

	want := 3.0 * 1.2 * 0.9
	if !closeTo(score.Total, want) {
		t.Errorf("Expected total %v, got %v", want, score.Total)
	}
	if len(score.Contributions) != 1 {
		t.Fatalf("Expected 1 contribution, got %d", len(score.Contributions))
	}
	c := score.Contributions[0]
	if c.Source != "strategy:tokens" || c.CardTag != "mechanic_token_payoff" {
		t.Errorf("Unexpected contribution %+v", c)
	}
	if c.Description != "payoff" {
		t.Errorf("Expected rule description to carry through, got %q", c.Description)
	}
}

func TestScoreTagsCommanderTagRule(t *testing.T) {
	scorer := scorerFromTOML(t, `
[[rule]]
commander_tag = "mechanic_landfall"
card_tag = "mechanic_land_search"
points = 2.5
`)
	profile := &commander.Profile{Tags: []string{"mechanic_landfall"}}

	score := scorer.ScoreTags(profile, mech(tag("mechanic_land_search", 1.0, 1.0)))

	if !closeTo(score.Total, 2.5) {
		t.Errorf("Expected total 2.5, got %v", score.Total)
	}
	if score.Contributions[0].Source != "tag:mechanic_landfall" {
		t.Errorf("Unexpected source %q", score.Contributions[0].Source)
	}
}

func TestScoreTagsSharedTagPoints(t *testing.T) {
	scorer := scorerFromTOML(t, `shared_tag_points = 1.5`)
	profile := &commander.Profile{Tags: []string{"tribal_elf"}}

	score := scorer.ScoreTags(profile, mech(tag("tribal_elf", 1.0, 0.8)))

	want := 1.5 * 0.8
	if !closeTo(score.Total, want) {
		t.Errorf("Expected shared tag score %v, got %v", want, score.Total)
	}
	if score.Contributions[0].Source != "shared" {
		t.Errorf("Expected shared contribution, got %q", score.Contributions[0].Source)
	}
}

func TestScoreTagsNoMatch(t *testing.T) {
	scorer := scorerFromTOML(t, `
[[rule]]
strategy = "tokens"
card_tag = "mechanic_token_creation"
points = 4.0
`)
	profile := &commander.Profile{Strategies: []string{"lifegain"}}

	score := scorer.ScoreTags(profile, mech(tag("mechanic_ramp", 1.0, 1.0)))
	if score.Total != 0 || len(score.Contributions) != 0 {
		t.Errorf("Expected empty score, got %+v", score)
	}
}

func TestScoreTagsFlooredAtZero(t *testing.T) {
	scorer := scorerFromTOML(t, `
[[rule]]
strategy = "tokens"
card_tag = "mechanic_board_wipe"
points = -2.0

[[rule]]
strategy = "tokens"
card_tag = "mechanic_card_draw"
points = 1.0
`)
	profile := &commander.Profile{Strategies: []string{"tokens"}}

	score := scorer.ScoreTags(profile, mech(
		tag("mechanic_board_wipe", 1.0, 1.0),
		tag("mechanic_card_draw", 1.0, 1.0),
	))

	if score.Total != 0 {
		t.Errorf("Expected total floored at 0, got %v", score.Total)
	}
	// The negative contribution is still reported in the breakdown.
	if len(score.Contributions) != 2 {
		t.Fatalf("Expected 2 contributions, got %d", len(score.Contributions))
	}
	if score.Contributions[1].Points >= 0 {
		t.Errorf("Expected negative contribution last, got %+v", score.Contributions[1])
	}
}

func TestScoreTagsContributionOrdering(t *testing.T) {
	scorer := scorerFromTOML(t, `
[[rule]]
strategy = "aristocrats"
card_tag = "mechanic_death_trigger"
points = 2.0

[[rule]]
strategy = "aristocrats"
card_tag = "mechanic_sacrifice"
points = 2.0

[[rule]]
strategy = "aristocrats"
card_tag = "mechanic_aristocrats_payoff"
points = 5.0
`)
	profile := &commander.Profile{Strategies: []string{"aristocrats"}}

	score := scorer.ScoreTags(profile, mech(
		tag("mechanic_sacrifice", 1.0, 1.0),
		tag("mechanic_death_trigger", 1.0, 1.0),
		tag("mechanic_aristocrats_payoff", 1.0, 1.0),
	))

	got := make([]string, len(score.Contributions))
	for i, c := range score.Contributions {
		got[i] = c.CardTag
	}
	// Points descending, card tag ascending on ties.
	want := []string{"mechanic_aristocrats_payoff", "mechanic_death_trigger", "mechanic_sacrifice"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected contribution order %v, got %v", want, got)
		}
	}
}

func TestScoreTagsDeterministic(t *testing.T) {
	scorer := NewScorer(NewRuleSource(nil))
	profile := &commander.Profile{
		Strategies: []string{"tokens", "go-wide"},
		Tags:       []string{"mechanic_token_creation", "tribal_goblin"},
	}
	card := &cards.Card{
		Name:       "Impact Tremors",
		TypeLine:   "Enchantment",
		OracleText: "Whenever a creature you control enters, Impact Tremors deals 1 damage to each opponent.",
	}
	mechProfile := tagger.New().Analyze(card)

	first := scorer.ScoreTags(profile, mechProfile)
	second := scorer.ScoreTags(profile, mechProfile)

	if first.Total != second.Total {
		t.Errorf("Totals differ: %v vs %v", first.Total, second.Total)
	}
	if len(first.Contributions) != len(second.Contributions) {
		t.Fatalf("Contribution counts differ: %d vs %d", len(first.Contributions), len(second.Contributions))
	}
	for i := range first.Contributions {
		if first.Contributions[i] != second.Contributions[i] {
			t.Fatalf("Contribution %d differs: %+v vs %+v", i, first.Contributions[i], second.Contributions[i])
		}
	}
}

func TestKeywordOverlap(t *testing.T) {
	score, shared := KeywordOverlap(
		"Flying, deathtouch\nAt the beginning of your end step, proliferate.",
		"Flying\nWhen this creature enters, proliferate.",
	)

	want := tagger.KeywordRarityWeight("flying") + tagger.KeywordRarityWeight("proliferate")
	if !closeTo(score, want) {
		t.Errorf("Expected overlap score %v, got %v", want, score)
	}
	if len(shared) != 2 {
		t.Errorf("Expected 2 shared keywords, got %v", shared)
	}

	score, shared = KeywordOverlap("Flying", "Trample")
	if score != 0 || shared != nil {
		t.Errorf("Expected no overlap, got %v %v", score, shared)
	}
}

func TestScoreCardUsesFallbackOnlyAtZero(t *testing.T) {
	scorer := scorerFromTOML(t, `
[[rule]]
strategy = "tokens"
card_tag = "mechanic_token_creation"
points = 4.0
`)
	profile := &commander.Profile{
		Strategies:    []string{"tokens"},
		ColorIdentity: []string{"W", "G"},
	}
	commanderCard := &cards.Card{OracleText: "Flying"}

	// Tag score positive: fallback unused.
	producer := &cards.Card{
		Name:          "Producer",
		TypeLine:      "Creature — Elf",
		ColorIdentity: []string{"G"},
	}
	score := scorer.ScoreCard(profile, commanderCard, producer,
		mech(tag("mechanic_token_creation", 1.0, 1.0)))
	if score.UsedFallback {
		t.Error("Expected fallback unused when tags score")
	}
	if !closeTo(score.Total, 4.0) {
		t.Errorf("Expected total 4.0, got %v", score.Total)
	}

	// No matching tags: the fallback heuristic replaces the tag component.
	bystander := &cards.Card{
		Name:          "Bystander",
		TypeLine:      "Creature — Human",
		OracleText:    "When this creature enters, draw a card.",
		ColorIdentity: []string{"W"},
	}
	score = scorer.ScoreCard(profile, commanderCard, bystander, mech())
	if !score.UsedFallback {
		t.Fatal("Expected fallback for an unmatched card")
	}
	// One shared color, creature bonus, draw bonus.
	want := 0.5 + 0.3 + 0.3
	if !closeTo(score.Fallback, want) {
		t.Errorf("Expected fallback %v, got %v", want, score.Fallback)
	}
	if !closeTo(score.Total, want) {
		t.Errorf("Expected total %v, got %v", want, score.Total)
	}
}

func TestScoreCardAddsKeywordOverlap(t *testing.T) {
	scorer := scorerFromTOML(t, `
[[rule]]
strategy = "tokens"
card_tag = "mechanic_token_creation"
points = 4.0
`)
	profile := &commander.Profile{Strategies: []string{"tokens"}}
	commanderCard := &cards.Card{OracleText: "Flying"}
	candidate := &cards.Card{Name: "Winged Producer", OracleText: "Flying"}

	score := scorer.ScoreCard(profile, commanderCard, candidate,
		mech(tag("mechanic_token_creation", 1.0, 1.0)))

	want := 4.0 + tagger.KeywordRarityWeight("flying")
	if !closeTo(score.Total, want) {
		t.Errorf("Expected total %v, got %v", want, score.Total)
	}
	if len(score.SharedKeywords) != 1 || score.SharedKeywords[0] != "flying" {
		t.Errorf("Expected shared keyword flying, got %v", score.SharedKeywords)
	}
}
