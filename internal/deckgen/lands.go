package deckgen

import (
	"github.com/mtgtools/commanderforge/internal/cards"
)

// defaultLandCount is the number of the 99 non-commander slots reserved for
// lands before the pool degrades and more basics are padded in.
const defaultLandCount = 37

var basicLandByColor = map[string]string{
	"W": "Plains",
	"U": "Island",
	"B": "Swamp",
	"R": "Mountain",
	"G": "Forest",
}

func basicLand(name, color string) *cards.Card {
	var identity []string
	if color != "" {
		identity = []string{color}
	}
	return &cards.Card{
		Name:          name,
		TypeLine:      "Basic Land",
		ColorIdentity: identity,
		Legalities:    map[string]string{"commander": "legal"},
	}
}

// basicLands builds count basic-land entries split evenly across the
// commander's color identity, with the remainder distributed in WUBRG order.
// A colorless identity gets Wastes. Deterministic for a given identity and
// count.
func basicLands(identity []string, count int) []Entry {
	if count <= 0 {
		return nil
	}

	colors := cards.NormalizeIdentity(identity)
	if len(colors) == 0 {
		return []Entry{{Card: basicLand("Wastes", ""), Quantity: count}}
	}

	per := count / len(colors)
	extra := count % len(colors)

	entries := make([]Entry, 0, len(colors))
	for i, color := range colors {
		quantity := per
		if i < extra {
			quantity++
		}
		if quantity == 0 {
			continue
		}
		entries = append(entries, Entry{
			Card:     basicLand(basicLandByColor[color], color),
			Quantity: quantity,
		})
	}
	return entries
}
