package deckgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mtgtools/commanderforge/internal/cards"
	"github.com/mtgtools/commanderforge/internal/commander"
	"github.com/mtgtools/commanderforge/internal/synergy"
	"github.com/mtgtools/commanderforge/internal/tagger"
)

// ErrCommanderNotFound indicates the requested commander name matched no card.
var ErrCommanderNotFound = errors.New("commander not found")

// Score bonuses applied during candidate scoring.
const (
	keywordFocusBonus = 2.0
	keywordTextBonus  = 1.0
	randomTagBonus    = 3.0
)

// CardSource supplies the card corpus the generator draws from.
type CardSource interface {
	// GetCardByName resolves a card by exact name, case-insensitively.
	// It returns nil, nil when no card matches.
	GetCardByName(ctx context.Context, name string) (*cards.Card, error)

	// CommanderLegalCards returns every Commander-legal card available.
	CommanderLegalCards(ctx context.Context) ([]*cards.Card, error)
}

// Generator runs the deck generation pipeline.
type Generator struct {
	source  CardSource
	tagger  *tagger.Tagger
	scorer  *synergy.Scorer
	logger  *slog.Logger
	workers int
}

// NewGenerator creates a generator over the given card source and scorer.
func NewGenerator(source CardSource, scorer *synergy.Scorer, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		source:  source,
		tagger:  tagger.New(),
		scorer:  scorer,
		logger:  logger,
		workers: runtime.NumCPU(),
	}
}

type candidate struct {
	card     *cards.Card
	category typeCategory
	score    float64
	price    float64
	hasPrice bool
}

// Generate builds a complete deck for the named commander. Commander
// resolution and validation failures abort the run; an undersized candidate
// pool degrades to extra basic lands with a warning instead of failing.
func (g *Generator) Generate(ctx context.Context, commanderName string, constraints Constraints) (*Deck, error) {
	if err := constraints.Validate(); err != nil {
		return nil, fmt.Errorf("invalid constraints: %w", err)
	}

	cmdCard, err := g.source.GetCardByName(ctx, commanderName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve commander: %w", err)
	}
	if cmdCard == nil {
		return nil, fmt.Errorf("%w: %q", ErrCommanderNotFound, commanderName)
	}
	if err := commander.Validate(cmdCard); err != nil {
		return nil, err
	}

	cmdMech := g.tagger.Analyze(cmdCard)
	profile := commander.BuildProfile(cmdCard, cmdMech)
	g.logger.Info("commander profile built",
		"commander", profile.Name,
		"strategies", profile.Strategies,
		"tags", len(profile.Tags))

	pool, err := g.buildPool(ctx, cmdCard, profile, constraints)
	if err != nil {
		return nil, err
	}
	g.logger.Info("candidate pool built", "commander", profile.Name, "size", len(pool))

	seed := constraints.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	deck := &Deck{
		ID:               uuid.New().String(),
		Commander:        cmdCard,
		CommanderProfile: profile,
		PoolSize:         len(pool),
		GeneratedAt:      time.Now().UTC(),
	}

	randomTags := pickRandomTags(rng, constraints.RandomTagCount)
	if len(randomTags) > 0 {
		deck.Notes = append(deck.Notes, "injected theme tags: "+strings.Join(randomTags, ", "))
	}

	ranked, err := g.scorePool(ctx, profile, cmdCard, pool, constraints, randomTags)
	if err != nil {
		return nil, err
	}

	g.selectCards(deck, ranked, constraints, rng)
	g.finalize(deck, constraints)
	return deck, nil
}

// buildPool applies the hard filters: Commander legality, color identity
// within the commander's, not the commander itself, no lands (lands are
// filled by the basic-land policy), weight-0 types excluded, and the
// per-card price ceiling.
func (g *Generator) buildPool(ctx context.Context, cmdCard *cards.Card, profile *commander.Profile, constraints Constraints) ([]*cards.Card, error) {
	corpus, err := g.source.CommanderLegalCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load card pool: %w", err)
	}

	pool := make([]*cards.Card, 0, len(corpus))
	for _, card := range corpus {
		if !card.IsLegalIn("commander") || card.IsLand() {
			continue
		}
		if strings.EqualFold(card.Name, cmdCard.Name) {
			continue
		}
		if !card.ColorIdentityWithin(profile.ColorIdentity) {
			continue
		}
		if constraints.CardTypeWeights.weightFor(categorize(card)) == 0 {
			continue
		}
		if constraints.MaxCardPrice > 0 {
			if price, ok := card.PriceUSD(); ok && price > constraints.MaxCardPrice {
				continue
			}
		}
		pool = append(pool, card)
	}
	return pool, nil
}

// scorePool analyzes and scores every pool card concurrently, then ranks the
// survivors by score descending with deterministic tie-breaks. A panic while
// scoring one card drops that card, not the run.
func (g *Generator) scorePool(ctx context.Context, profile *commander.Profile, cmdCard *cards.Card, pool []*cards.Card, constraints Constraints, randomTags []string) ([]*candidate, error) {
	results := make([]*candidate, len(pool))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(g.workers)
	for i, card := range pool {
		i, card := i, card
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			defer func() {
				if r := recover(); r != nil {
					g.logger.Warn("skipping card, scoring panicked", "card", card.Name, "panic", r)
					results[i] = nil
				}
			}()
			results[i] = g.scoreCandidate(profile, cmdCard, card, constraints, randomTags)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("failed to score candidates: %w", err)
	}

	ranked := make([]*candidate, 0, len(results))
	for _, c := range results {
		if c != nil {
			ranked = append(ranked, c)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if constraints.PreferCheapest && ranked[i].hasPrice && ranked[j].hasPrice && ranked[i].price != ranked[j].price {
			return ranked[i].price < ranked[j].price
		}
		return ranked[i].card.Name < ranked[j].card.Name
	})
	return ranked, nil
}

func (g *Generator) scoreCandidate(profile *commander.Profile, cmdCard, card *cards.Card, constraints Constraints, randomTags []string) *candidate {
	mech := g.tagger.Analyze(card)
	score := g.scorer.ScoreCard(profile, cmdCard, card, mech)

	total := score.Total
	total += themeBonus(card, mech, constraints.Keywords)
	total += themeBonus(card, mech, constraints.KeywordFocus)
	for _, tag := range randomTags {
		if mech.HasTag(tag) {
			total += randomTagBonus
		}
	}

	c := &candidate{
		card:     card,
		category: categorize(card),
		score:    total,
	}
	c.price, c.hasPrice = card.PriceUSD()
	return c
}

// themeBonus rewards cards matching the request's free-text theme hints: a
// full bonus when a detected tag matches the hint, a smaller one when only
// the oracle text does.
func themeBonus(card *cards.Card, mech *tagger.MechanicsProfile, hints []string) float64 {
	var bonus float64
	lowerText := strings.ToLower(card.OracleText)
	for _, hint := range hints {
		token := tagger.NormalizeTagToken(hint)
		if token == "" {
			continue
		}
		matched := false
		for _, name := range mech.TagNames() {
			if strings.Contains(name, token) {
				matched = true
				break
			}
		}
		if matched {
			bonus += keywordFocusBonus
		} else if strings.Contains(lowerText, strings.ToLower(strings.TrimSpace(hint))) {
			bonus += keywordTextBonus
		}
	}
	return bonus
}

// pickRandomTags draws count distinct tags from the vocabulary.
func pickRandomTags(rng *rand.Rand, count int) []string {
	if count <= 0 {
		return nil
	}
	names := tagger.TagNames()
	rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	if count > len(names) {
		count = len(names)
	}
	picked := names[:count]
	sort.Strings(picked)
	return picked
}

// selectCards fills the ninety-nine non-commander slots: planeswalkers first
// as an exact count, then a weight-biased walk over the ranked list, then a
// deterministic top-up pass, with basic lands closing out the remainder.
func (g *Generator) selectCards(deck *Deck, ranked []*candidate, constraints Constraints, rng *rand.Rand) {
	taken := make(map[string]bool)
	var budgetSpent float64
	budgetBlocked := false

	if price, ok := deck.Commander.PriceUSD(); ok {
		budgetSpent = price
	}

	withinBudget := func(c *candidate) bool {
		if constraints.TotalBudget <= 0 || !c.hasPrice {
			return true
		}
		return budgetSpent+c.price <= constraints.TotalBudget
	}
	take := func(c *candidate) {
		deck.Entries = append(deck.Entries, Entry{Card: c.card, Quantity: 1, Score: c.score})
		taken[strings.ToLower(c.card.Name)] = true
		if c.hasPrice {
			budgetSpent += c.price
		}
	}

	// Planeswalkers: exact count, best first.
	pwTarget := constraints.CardTypeWeights.Planeswalkers
	pwTaken := 0
	if pwTarget > 0 {
		for _, c := range ranked {
			if pwTaken == pwTarget {
				break
			}
			if c.category != categoryPlaneswalker || taken[strings.ToLower(c.card.Name)] {
				continue
			}
			if !withinBudget(c) {
				budgetBlocked = true
				continue
			}
			take(c)
			pwTaken++
		}
		if pwTaken < pwTarget {
			deck.Warnings = append(deck.Warnings,
				fmt.Sprintf("could not fill planeswalker count: only %d of %d eligible cards available", pwTaken, pwTarget))
		}
	}

	nonLandTarget := 99 - defaultLandCount

	// Biased walk: acceptance probability scales with the category weight,
	// neutral weight accepting half. Planeswalkers are done already.
	for _, c := range ranked {
		if deck.NonCommanderCount() >= nonLandTarget {
			break
		}
		if c.category == categoryPlaneswalker || taken[strings.ToLower(c.card.Name)] {
			continue
		}
		weight := constraints.CardTypeWeights.weightFor(c.category)
		if rng.Float64() >= float64(weight)/(2*NeutralTypeWeight) {
			continue
		}
		if !withinBudget(c) {
			budgetBlocked = true
			continue
		}
		take(c)
	}

	// Top-up pass: fill remaining slots in rank order regardless of bias.
	for _, c := range ranked {
		if deck.NonCommanderCount() >= nonLandTarget {
			break
		}
		if c.category == categoryPlaneswalker || taken[strings.ToLower(c.card.Name)] {
			continue
		}
		if !withinBudget(c) {
			budgetBlocked = true
			continue
		}
		take(c)
	}

	if budgetBlocked {
		deck.Warnings = append(deck.Warnings,
			fmt.Sprintf("budget of $%.2f excluded some high-synergy cards", constraints.TotalBudget))
	}
	if short := nonLandTarget - deck.NonCommanderCount(); short > 0 {
		deck.Warnings = append(deck.Warnings,
			fmt.Sprintf("candidate pool exhausted: %d non-land slots padded with basic lands", short))
	}

	deck.Entries = append(deck.Entries, basicLands(deck.CommanderProfile.ColorIdentity, 99-deck.NonCommanderCount())...)
}

func (g *Generator) finalize(deck *Deck, constraints Constraints) {
	total := 0.0
	if price, ok := deck.Commander.PriceUSD(); ok {
		total += price
	}
	for _, entry := range deck.Entries {
		if price, ok := entry.Card.PriceUSD(); ok {
			total += price * float64(entry.Quantity)
		}
	}
	deck.TotalPrice = total

	if constraints.TotalBudget > 0 && total > constraints.TotalBudget {
		deck.Warnings = append(deck.Warnings,
			fmt.Sprintf("total price $%.2f exceeds budget $%.2f", total, constraints.TotalBudget))
	}
	g.logger.Info("deck generated",
		"id", deck.ID,
		"commander", deck.Commander.Name,
		"cards", deck.CardCount(),
		"total_price", deck.TotalPrice,
		"warnings", len(deck.Warnings))
}

// categorize buckets a card into its weight category by primary type.
// Multi-type cards resolve in the order lands, creatures, planeswalkers,
// then the spell types.
func categorize(card *cards.Card) typeCategory {
	switch {
	case card.IsLand():
		return categoryLand
	case card.HasType("Creature"):
		return categoryCreature
	case card.HasType("Planeswalker"):
		return categoryPlaneswalker
	case card.HasType("Artifact"):
		return categoryArtifact
	case card.HasType("Enchantment"):
		return categoryEnchantment
	case card.HasType("Instant"):
		return categoryInstant
	case card.HasType("Sorcery"):
		return categorySorcery
	default:
		return categoryOther
	}
}
