package cards

import (
	"testing"
)

func TestIsLegalIn(t *testing.T) {
	card := &Card{Legalities: map[string]string{"commander": "legal", "modern": "banned"}}

	if !card.IsLegalIn("commander") {
		t.Error("Expected commander legality")
	}
	if !card.IsLegalIn("Commander") {
		t.Error("Expected format lookup to be case-insensitive")
	}
	if card.IsLegalIn("modern") {
		t.Error("Expected banned to count as not legal")
	}
	if card.IsLegalIn("vintage") {
		t.Error("Expected unknown format to count as not legal")
	}
	if (&Card{}).IsLegalIn("commander") {
		t.Error("Expected no legalities to count as not legal")
	}
}

func TestHasType(t *testing.T) {
	card := &Card{TypeLine: "Legendary Artifact Creature — Golem"}

	for _, want := range []string{"Creature", "creature", "Artifact", "Legendary", "Golem"} {
		if !card.HasType(want) {
			t.Errorf("Expected type line to contain %q", want)
		}
	}
	if card.HasType("Enchantment") {
		t.Error("Did not expect Enchantment")
	}
}

func TestLandChecks(t *testing.T) {
	tests := []struct {
		typeLine string
		land     bool
		basic    bool
	}{
		{"Basic Land — Forest", true, true},
		{"Basic Snow Land — Island", true, true},
		{"Land — Gate", true, false},
		{"Artifact Land", true, false},
		{"Creature — Dryad", false, false},
	}

	for _, tt := range tests {
		card := &Card{TypeLine: tt.typeLine}
		if got := card.IsLand(); got != tt.land {
			t.Errorf("IsLand(%q) = %v, want %v", tt.typeLine, got, tt.land)
		}
		if got := card.IsBasicLand(); got != tt.basic {
			t.Errorf("IsBasicLand(%q) = %v, want %v", tt.typeLine, got, tt.basic)
		}
	}
}

func TestColorIdentityWithin(t *testing.T) {
	tests := []struct {
		name     string
		card     []string
		identity []string
		want     bool
	}{
		{"exact match", []string{"W", "U"}, []string{"W", "U"}, true},
		{"proper subset", []string{"G"}, []string{"G", "W"}, true},
		{"colorless fits anything", nil, []string{"B"}, true},
		{"colorless fits colorless", nil, nil, true},
		{"off color", []string{"R"}, []string{"W", "U"}, false},
		{"partial overlap", []string{"W", "R"}, []string{"W", "U"}, false},
		{"colored card, colorless commander", []string{"G"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := &Card{ColorIdentity: tt.card}
			if got := card.ColorIdentityWithin(tt.identity); got != tt.want {
				t.Errorf("ColorIdentityWithin(%v, %v) = %v, want %v", tt.card, tt.identity, got, tt.want)
			}
		})
	}
}

func TestPriceUSD(t *testing.T) {
	card := &Card{Prices: map[string]float64{"usd": 4.99, "eur": 3.50}}
	price, ok := card.PriceUSD()
	if !ok || price != 4.99 {
		t.Errorf("Expected 4.99, got %v %v", price, ok)
	}

	if _, ok := (&Card{}).PriceUSD(); ok {
		t.Error("Expected no price without listings")
	}
	if _, ok := (&Card{Prices: map[string]float64{"eur": 1.0}}).PriceUSD(); ok {
		t.Error("Expected no USD price with only EUR listed")
	}
}

func TestNormalizeIdentity(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"already ordered", []string{"W", "U"}, []string{"W", "U"}},
		{"reordered", []string{"G", "B", "W"}, []string{"W", "B", "G"}},
		{"lowercase and duplicates", []string{"g", "G", "r"}, []string{"R", "G"}},
		{"unknown symbols dropped", []string{"W", "C", "X"}, []string{"W"}},
		{"empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeIdentity(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("NormalizeIdentity(%v) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("NormalizeIdentity(%v) = %v, want %v", tt.input, got, tt.want)
				}
			}
		})
	}
}

func strPtr(s string) *string { return &s }

func TestScryfallCardToCard(t *testing.T) {
	sc := &ScryfallCard{
		ID:            "abc-123",
		OracleID:      "def-456",
		Name:          "Llanowar Elves",
		TypeLine:      "Creature — Elf Druid",
		ManaCost:      "{G}",
		CMC:           1,
		OracleText:    "{T}: Add {G}.",
		Power:         "1",
		Toughness:     "1",
		Colors:        []string{"G"},
		ColorIdentity: []string{"G"},
		Keywords:      []string{},
		Legalities:    map[string]string{"commander": "legal"},
		Prices: map[string]*string{
			"usd":      strPtr("0.25"),
			"usd_foil": nil,
			"eur":      strPtr("not a number"),
		},
		Set:    "m19",
		Rarity: "common",
	}

	card := sc.ToCard()

	if card.Name != "Llanowar Elves" || card.ScryfallID != "abc-123" {
		t.Errorf("Unexpected identity fields: %+v", card)
	}
	if card.Power == nil || *card.Power != "1" {
		t.Error("Expected power to carry over")
	}
	if card.Loyalty != nil {
		t.Error("Expected nil loyalty for a creature")
	}
	if price, ok := card.PriceUSD(); !ok || price != 0.25 {
		t.Errorf("Expected USD price 0.25, got %v %v", price, ok)
	}
	if _, ok := card.Prices["usd_foil"]; ok {
		t.Error("Expected null price to be dropped")
	}
	if _, ok := card.Prices["eur"]; ok {
		t.Error("Expected unparseable price to be dropped")
	}
}

func TestScryfallCardToCardFoldsFaces(t *testing.T) {
	sc := &ScryfallCard{
		ID:       "dfc-1",
		Name:     "Delver of Secrets // Insectile Aberration",
		Layout:   "transform",
		TypeLine: "Creature — Human Wizard // Creature — Human Insect",
		CardFaces: []ScryfallCardFace{
			{
				Name:       "Delver of Secrets",
				ManaCost:   "{U}",
				OracleText: "At the beginning of your upkeep, look at the top card of your library.",
				Power:      "1",
				Toughness:  "1",
			},
			{
				Name:       "Insectile Aberration",
				OracleText: "Flying",
				Power:      "3",
				Toughness:  "2",
			},
		},
	}

	card := sc.ToCard()

	if card.ManaCost != "{U}" {
		t.Errorf("Expected front face mana cost, got %q", card.ManaCost)
	}
	if card.Power == nil || *card.Power != "1" {
		t.Error("Expected front face power")
	}
	wantText := "At the beginning of your upkeep, look at the top card of your library.\nFlying"
	if card.OracleText != wantText {
		t.Errorf("Expected joined face text, got %q", card.OracleText)
	}
}
