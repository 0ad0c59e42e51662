package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mtgtools/commanderforge/internal/cards"
	"github.com/mtgtools/commanderforge/internal/deckgen"
)

type captureGenerator struct {
	constraints deckgen.Constraints
	deck        *deckgen.Deck
}

func (g *captureGenerator) Generate(_ context.Context, _ string, constraints deckgen.Constraints) (*deckgen.Deck, error) {
	g.constraints = constraints
	return g.deck, nil
}

func generateWith(t *testing.T, body string) (*captureGenerator, *httptest.ResponseRecorder) {
	t.Helper()
	gen := &captureGenerator{
		deck: &deckgen.Deck{
			ID:        "test-deck",
			Commander: &cards.Card{Name: "Krenko, Mob Boss"},
		},
	}
	handler := NewDeckHandler(gen, nil)

	req := httptest.NewRequest(http.MethodPost, "/decks/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.GenerateDeck(rec, req)
	return gen, rec
}

func TestGenerateDeckDefaultConstraints(t *testing.T) {
	gen, rec := generateWith(t, `{"commander": "Krenko, Mob Boss"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if gen.constraints.CardTypeWeights != deckgen.DefaultCardTypeWeights() {
		t.Errorf("Expected default weights, got %+v", gen.constraints.CardTypeWeights)
	}
}

// A constraints object that names only some fields must keep neutral weights
// for the types it does not mention; absent keys are not exclusions.
func TestGenerateDeckPartialConstraints(t *testing.T) {
	gen, rec := generateWith(t, `{
		"commander": "Krenko, Mob Boss",
		"constraints": {"seed": 1, "card_type_weights": {"planeswalkers": 2}}
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if gen.constraints.Seed != 1 {
		t.Errorf("Expected seed 1, got %d", gen.constraints.Seed)
	}
	weights := gen.constraints.CardTypeWeights
	if weights.Planeswalkers != 2 {
		t.Errorf("Expected planeswalker count 2, got %d", weights.Planeswalkers)
	}
	for name, got := range map[string]int{
		"creatures":    weights.Creatures,
		"artifacts":    weights.Artifacts,
		"enchantments": weights.Enchantments,
		"instants":     weights.Instants,
		"sorceries":    weights.Sorceries,
	} {
		if got != deckgen.NeutralTypeWeight {
			t.Errorf("Expected neutral weight for unnamed %s, got %d", name, got)
		}
	}
}

func TestGenerateDeckExplicitZeroWeight(t *testing.T) {
	gen, rec := generateWith(t, `{
		"commander": "Krenko, Mob Boss",
		"constraints": {"card_type_weights": {"creatures": 0, "instants": 8}}
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	weights := gen.constraints.CardTypeWeights
	if weights.Creatures != 0 {
		t.Errorf("Expected explicit creature exclusion, got %d", weights.Creatures)
	}
	if weights.Instants != 8 {
		t.Errorf("Expected instants weight 8, got %d", weights.Instants)
	}
	if weights.Sorceries != deckgen.NeutralTypeWeight {
		t.Errorf("Expected neutral sorceries weight, got %d", weights.Sorceries)
	}
}

func TestGenerateDeckInvalidConstraintsBody(t *testing.T) {
	_, rec := generateWith(t, `{"commander": "Krenko, Mob Boss", "constraints": {"seed": "not a number"}}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed constraints, got %d", rec.Code)
	}
}

func TestGenerateDeckMissingCommander(t *testing.T) {
	_, rec := generateWith(t, `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing commander, got %d", rec.Code)
	}
}
