package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mtgtools/commanderforge/internal/cards"
)

// CardFilters narrows a card search. Zero-valued fields are ignored.
type CardFilters struct {
	NameContains string
	// ColorIdentityWithin keeps only cards whose identity is a subset of the
	// given colors.
	ColorIdentityWithin []string
	TypeContains        string
	TypeExcludes        string
	MaxCMC              float64
	CommanderLegalOnly  bool
	Limit               int
}

const cardColumns = `scryfall_id, oracle_id, name, type_line, set_code, rarity,
	mana_cost, cmc, colors, color_identity, oracle_text, keywords,
	power, toughness, loyalty, legalities, prices`

// identityString folds a color identity into its canonical WUBRG-ordered
// string form for storage and prefix matching.
func identityString(identity []string) string {
	return strings.Join(cards.NormalizeIdentity(identity), "")
}

// SaveCard inserts or updates one card keyed by its Scryfall ID.
func (db *DB) SaveCard(ctx context.Context, card *cards.Card) error {
	colors, err := json.Marshal(card.Colors)
	if err != nil {
		return fmt.Errorf("failed to marshal colors: %w", err)
	}
	keywords, err := json.Marshal(card.Keywords)
	if err != nil {
		return fmt.Errorf("failed to marshal keywords: %w", err)
	}
	legalities, err := json.Marshal(card.Legalities)
	if err != nil {
		return fmt.Errorf("failed to marshal legalities: %w", err)
	}
	prices, err := json.Marshal(card.Prices)
	if err != nil {
		return fmt.Errorf("failed to marshal prices: %w", err)
	}

	commanderLegal := 0
	if card.IsLegalIn("commander") {
		commanderLegal = 1
	}

	query := `
		INSERT INTO cards (
			scryfall_id, oracle_id, name, type_line, set_code, rarity,
			mana_cost, cmc, colors, color_identity, oracle_text, keywords,
			power, toughness, loyalty, legalities, prices, commander_legal, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(scryfall_id) DO UPDATE SET
			oracle_id = excluded.oracle_id,
			name = excluded.name,
			type_line = excluded.type_line,
			set_code = excluded.set_code,
			rarity = excluded.rarity,
			mana_cost = excluded.mana_cost,
			cmc = excluded.cmc,
			colors = excluded.colors,
			color_identity = excluded.color_identity,
			oracle_text = excluded.oracle_text,
			keywords = excluded.keywords,
			power = excluded.power,
			toughness = excluded.toughness,
			loyalty = excluded.loyalty,
			legalities = excluded.legalities,
			prices = excluded.prices,
			commander_legal = excluded.commander_legal,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err = db.conn.ExecContext(ctx, query,
		card.ScryfallID, card.OracleID, card.Name, card.TypeLine, card.SetCode, card.Rarity,
		card.ManaCost, card.CMC, string(colors), identityString(card.ColorIdentity),
		card.OracleText, string(keywords),
		card.Power, card.Toughness, card.Loyalty,
		string(legalities), string(prices), commanderLegal,
	)
	if err != nil {
		return fmt.Errorf("failed to save card %q: %w", card.Name, err)
	}
	return nil
}

// GetCardByName retrieves a card by exact name, case-insensitively.
// It returns nil, nil when no card matches.
func (db *DB) GetCardByName(ctx context.Context, name string) (*cards.Card, error) {
	query := fmt.Sprintf("SELECT %s FROM cards WHERE name = ?", cardColumns)
	row := db.conn.QueryRowContext(ctx, query, name)

	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card %q: %w", name, err)
	}
	return card, nil
}

// CommanderLegalCards returns every Commander-legal card in the corpus.
func (db *DB) CommanderLegalCards(ctx context.Context) ([]*cards.Card, error) {
	query := fmt.Sprintf("SELECT %s FROM cards WHERE commander_legal = 1 ORDER BY name", cardColumns)
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query commander-legal cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectCards(rows)
}

// SearchCards returns cards matching the filters, ordered by name.
func (db *DB) SearchCards(ctx context.Context, filters CardFilters) ([]*cards.Card, error) {
	var conditions []string
	var args []interface{}

	if filters.NameContains != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, "%"+filters.NameContains+"%")
	}
	if filters.TypeContains != "" {
		conditions = append(conditions, "type_line LIKE ?")
		args = append(args, "%"+filters.TypeContains+"%")
	}
	if filters.TypeExcludes != "" {
		conditions = append(conditions, "type_line NOT LIKE ?")
		args = append(args, "%"+filters.TypeExcludes+"%")
	}
	if filters.MaxCMC > 0 {
		conditions = append(conditions, "cmc <= ?")
		args = append(args, filters.MaxCMC)
	}
	if filters.CommanderLegalOnly {
		conditions = append(conditions, "commander_legal = 1")
	}

	query := fmt.Sprintf("SELECT %s FROM cards", cardColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	matches, err := collectCards(rows)
	if err != nil {
		return nil, err
	}

	// The identity-subset test does not map onto a SQL predicate over the
	// folded identity string, so it runs over the coarse result set here.
	if len(filters.ColorIdentityWithin) > 0 {
		filtered := matches[:0]
		for _, card := range matches {
			if card.ColorIdentityWithin(filters.ColorIdentityWithin) {
				filtered = append(filtered, card)
			}
		}
		matches = filtered
	}

	if filters.Limit > 0 && len(matches) > filters.Limit {
		matches = matches[:filters.Limit]
	}
	return matches, nil
}

// CountCards returns the corpus size.
func (db *DB) CountCards(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM cards").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCard(row rowScanner) (*cards.Card, error) {
	var card cards.Card
	var colors, identity, keywords, legalities, prices string

	err := row.Scan(
		&card.ScryfallID, &card.OracleID, &card.Name, &card.TypeLine, &card.SetCode, &card.Rarity,
		&card.ManaCost, &card.CMC, &colors, &identity, &card.OracleText, &keywords,
		&card.Power, &card.Toughness, &card.Loyalty, &legalities, &prices,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(colors), &card.Colors); err != nil {
		return nil, fmt.Errorf("failed to unmarshal colors for %q: %w", card.Name, err)
	}
	if err := json.Unmarshal([]byte(keywords), &card.Keywords); err != nil {
		return nil, fmt.Errorf("failed to unmarshal keywords for %q: %w", card.Name, err)
	}
	if err := json.Unmarshal([]byte(legalities), &card.Legalities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal legalities for %q: %w", card.Name, err)
	}
	if err := json.Unmarshal([]byte(prices), &card.Prices); err != nil {
		return nil, fmt.Errorf("failed to unmarshal prices for %q: %w", card.Name, err)
	}

	for _, c := range identity {
		card.ColorIdentity = append(card.ColorIdentity, string(c))
	}
	return &card, nil
}

func collectCards(rows *sql.Rows) ([]*cards.Card, error) {
	var result []*cards.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		result = append(result, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}
	return result, nil
}
