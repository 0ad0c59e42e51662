// Package cards defines the card model shared by the tagging, scoring, and
// deck-generation subsystems, plus the conversion from Scryfall's wire format.
package cards

import (
	"strconv"
	"strings"
)

// Color order used everywhere a color identity is rendered or iterated.
var ColorOrder = []string{"W", "U", "B", "R", "G"}

// Card represents comprehensive metadata about a Magic card.
type Card struct {
	// Scryfall identifiers
	ScryfallID string `json:"id"`
	OracleID   string `json:"oracle_id,omitempty"`

	// Basic card information
	Name     string `json:"name"`
	TypeLine string `json:"type_line"`
	SetCode  string `json:"set"`
	Rarity   string `json:"rarity"` // "common", "uncommon", "rare", "mythic"

	// Mana information
	ManaCost string  `json:"mana_cost,omitempty"`
	CMC      float64 `json:"cmc"`

	// Colors and identity
	Colors        []string `json:"colors"`
	ColorIdentity []string `json:"color_identity"`

	// Rules text and named keyword abilities
	OracleText string   `json:"oracle_text,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`

	// Power/Toughness (creatures) and Loyalty (planeswalkers)
	Power     *string `json:"power,omitempty"`
	Toughness *string `json:"toughness,omitempty"`
	Loyalty   *string `json:"loyalty,omitempty"`

	// Format legality, e.g. "commander" -> "legal" | "not_legal" | "banned"
	Legalities map[string]string `json:"legalities,omitempty"`

	// Prices by currency, e.g. "usd" -> 4.99. Currencies with no listing are absent.
	Prices map[string]float64 `json:"prices,omitempty"`
}

// IsLegalIn reports whether the card is legal in the given format.
func (c *Card) IsLegalIn(format string) bool {
	if c.Legalities == nil {
		return false
	}
	return c.Legalities[strings.ToLower(format)] == "legal"
}

// HasType reports whether the type line contains the given card type
// (case-insensitive, e.g. "Creature", "Planeswalker").
func (c *Card) HasType(cardType string) bool {
	return strings.Contains(strings.ToLower(c.TypeLine), strings.ToLower(cardType))
}

// IsLand reports whether the card is any kind of land.
func (c *Card) IsLand() bool { return c.HasType("Land") }

// IsBasicLand reports whether the card is a basic land. Basic lands are exempt
// from the Commander singleton rule.
func (c *Card) IsBasicLand() bool {
	return strings.Contains(strings.ToLower(c.TypeLine), "basic") && c.IsLand()
}

// IsLegendary reports whether the card has the Legendary supertype.
func (c *Card) IsLegendary() bool { return c.HasType("Legendary") }

// ColorIdentityWithin reports whether the card's color identity is a subset of
// the given identity. Colorless cards fit any identity.
func (c *Card) ColorIdentityWithin(identity []string) bool {
	if len(c.ColorIdentity) == 0 {
		return true
	}
	allowed := make(map[string]bool, len(identity))
	for _, color := range identity {
		allowed[color] = true
	}
	for _, color := range c.ColorIdentity {
		if !allowed[color] {
			return false
		}
	}
	return true
}

// PriceUSD returns the card's USD price and whether a listing exists.
func (c *Card) PriceUSD() (float64, bool) {
	if c.Prices == nil {
		return 0, false
	}
	price, ok := c.Prices["usd"]
	return price, ok
}

// ScryfallCard represents the Scryfall API card object schema. Multi-faced
// cards carry their text on faces; Normalize folds faces into the top level so
// the rest of the system never deals with layout variants.
type ScryfallCard struct {
	ID            string             `json:"id"`
	OracleID      string             `json:"oracle_id"`
	Name          string             `json:"name"`
	Layout        string             `json:"layout"`
	ManaCost      string             `json:"mana_cost"`
	CMC           float64            `json:"cmc"`
	TypeLine      string             `json:"type_line"`
	OracleText    string             `json:"oracle_text,omitempty"`
	Power         string             `json:"power,omitempty"`
	Toughness     string             `json:"toughness,omitempty"`
	Loyalty       string             `json:"loyalty,omitempty"`
	Colors        []string           `json:"colors"`
	ColorIdentity []string           `json:"color_identity"`
	Keywords      []string           `json:"keywords"`
	Legalities    map[string]string  `json:"legalities"`
	Prices        map[string]*string `json:"prices"`
	Set           string             `json:"set"`
	Rarity        string             `json:"rarity"`
	CardFaces     []ScryfallCardFace `json:"card_faces,omitempty"`
}

// ScryfallCardFace represents a face of a multi-faced card.
type ScryfallCardFace struct {
	Name       string   `json:"name"`
	TypeLine   string   `json:"type_line"`
	ManaCost   string   `json:"mana_cost"`
	OracleText string   `json:"oracle_text"`
	Colors     []string `json:"colors"`
	Power      string   `json:"power,omitempty"`
	Toughness  string   `json:"toughness,omitempty"`
	Loyalty    string   `json:"loyalty,omitempty"`
}

// ToCard converts a ScryfallCard to the internal Card representation.
// Face text is joined for multi-faced cards and string prices are parsed;
// null or unparseable prices are dropped rather than carried as zeros.
func (sc *ScryfallCard) ToCard() *Card {
	card := &Card{
		ScryfallID:    sc.ID,
		OracleID:      sc.OracleID,
		Name:          sc.Name,
		TypeLine:      sc.TypeLine,
		SetCode:       sc.Set,
		Rarity:        sc.Rarity,
		ManaCost:      sc.ManaCost,
		CMC:           sc.CMC,
		Colors:        sc.Colors,
		ColorIdentity: sc.ColorIdentity,
		OracleText:    sc.OracleText,
		Keywords:      sc.Keywords,
		Legalities:    sc.Legalities,
	}

	if sc.Power != "" {
		card.Power = &sc.Power
	}
	if sc.Toughness != "" {
		card.Toughness = &sc.Toughness
	}
	if sc.Loyalty != "" {
		card.Loyalty = &sc.Loyalty
	}

	// Fold faces: double-faced and split cards keep their oracle text on the
	// face objects, with an empty top-level oracle_text.
	if card.OracleText == "" && len(sc.CardFaces) > 0 {
		parts := make([]string, 0, len(sc.CardFaces))
		for _, face := range sc.CardFaces {
			if face.OracleText != "" {
				parts = append(parts, face.OracleText)
			}
		}
		card.OracleText = strings.Join(parts, "\n")

		front := sc.CardFaces[0]
		if card.ManaCost == "" {
			card.ManaCost = front.ManaCost
		}
		if card.Power == nil && front.Power != "" {
			p := front.Power
			card.Power = &p
		}
		if card.Toughness == nil && front.Toughness != "" {
			t := front.Toughness
			card.Toughness = &t
		}
		if card.Loyalty == nil && front.Loyalty != "" {
			l := front.Loyalty
			card.Loyalty = &l
		}
	}

	if len(sc.Prices) > 0 {
		card.Prices = make(map[string]float64, len(sc.Prices))
		for currency, raw := range sc.Prices {
			if raw == nil {
				continue
			}
			price, err := strconv.ParseFloat(*raw, 64)
			if err != nil {
				continue
			}
			card.Prices[currency] = price
		}
	}

	return card
}

// NormalizeIdentity sorts a color identity into canonical WUBRG order and
// drops unknown symbols.
func NormalizeIdentity(identity []string) []string {
	present := make(map[string]bool, len(identity))
	for _, color := range identity {
		present[strings.ToUpper(color)] = true
	}
	out := make([]string, 0, len(identity))
	for _, color := range ColorOrder {
		if present[color] {
			out = append(out, color)
		}
	}
	return out
}
