package deckgen

import (
	"time"

	"github.com/mtgtools/commanderforge/internal/cards"
	"github.com/mtgtools/commanderforge/internal/commander"
)

// Entry is one deck slot. Nonbasic cards always carry quantity 1; basic lands
// are the only entries allowed a higher quantity.
type Entry struct {
	Card     *cards.Card `json:"card"`
	Quantity int         `json:"quantity"`
	// Score is the synergy score the card was selected at; zero for padded
	// basic lands.
	Score float64 `json:"score,omitempty"`
}

// Deck is a complete generated Commander deck: one commander plus entries
// totaling ninety-nine cards. PoolSize records how many candidates survived
// the hard filters before scoring.
type Deck struct {
	ID               string             `json:"id"`
	Commander        *cards.Card        `json:"commander"`
	CommanderProfile *commander.Profile `json:"commander_profile"`
	Entries          []Entry            `json:"entries"`
	TotalPrice       float64            `json:"total_price"`
	PoolSize         int                `json:"pool_size"`
	Warnings         []string           `json:"warnings,omitempty"`
	Notes            []string           `json:"notes,omitempty"`
	GeneratedAt      time.Time          `json:"generated_at"`
}

// NonCommanderCount sums entry quantities.
func (d *Deck) NonCommanderCount() int {
	var total int
	for _, e := range d.Entries {
		total += e.Quantity
	}
	return total
}

// CardCount is the full deck size including the commander.
func (d *Deck) CardCount() int {
	return d.NonCommanderCount() + 1
}
