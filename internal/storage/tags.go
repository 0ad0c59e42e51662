package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mtgtools/commanderforge/internal/tagger"
)

// TagUsage couples a tag with how many cards currently carry it.
type TagUsage struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ErrTagNotFound indicates a named tag does not exist.
var ErrTagNotFound = errors.New("tag not found")

// AvailableTags returns every stored tag with its card usage count, ordered
// by name.
func (db *DB) AvailableTags(ctx context.Context) ([]TagUsage, error) {
	query := `
		SELECT t.name, t.category, COUNT(ct.card_id)
		FROM tags t
		LEFT JOIN card_tags ct ON ct.tag_id = t.id
		GROUP BY t.id
		ORDER BY t.name
	`
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tags []TagUsage
	for rows.Next() {
		var usage TagUsage
		if err := rows.Scan(&usage.Name, &usage.Category, &usage.Count); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, usage)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return tags, nil
}

// SaveCardTags replaces a card's stored tags with the given analysis result.
// Tag rows are created on first use.
func (db *DB) SaveCardTags(ctx context.Context, scryfallID string, tags []tagger.MechanicTag) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM card_tags WHERE card_id = ?", scryfallID); err != nil {
		return fmt.Errorf("failed to clear card tags: %w", err)
	}

	for _, tag := range tags {
		tagID, err := ensureTag(ctx, tx, tag.Name, string(tag.Category))
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO card_tags (card_id, tag_id, priority, confidence) VALUES (?, ?, ?, ?)",
			scryfallID, tagID, tag.Priority, tag.Confidence)
		if err != nil {
			return fmt.Errorf("failed to save tag %q for card %s: %w", tag.Name, scryfallID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit card tags: %w", err)
	}
	return nil
}

// MergeTags folds fromName into toName: card associations move to the target
// tag, the source tag is deleted, and its name is kept as an alias of the
// target. Used by curation tooling to resolve overlapping detector output.
func (db *DB) MergeTags(ctx context.Context, fromName, toName string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	fromID, err := tagID(ctx, tx, fromName)
	if err != nil {
		return err
	}
	toID, err := tagID(ctx, tx, toName)
	if err != nil {
		return err
	}

	// Move associations, dropping any that the target tag already covers.
	_, err = tx.ExecContext(ctx, `
		UPDATE OR IGNORE card_tags SET tag_id = ? WHERE tag_id = ?`, toID, fromID)
	if err != nil {
		return fmt.Errorf("failed to remap card tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM card_tags WHERE tag_id = ?", fromID); err != nil {
		return fmt.Errorf("failed to drop merged associations: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE tag_aliases SET tag_id = ? WHERE tag_id = ?", toID, fromID); err != nil {
		return fmt.Errorf("failed to remap aliases: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", fromID); err != nil {
		return fmt.Errorf("failed to delete merged tag: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO tag_aliases (alias, tag_id) VALUES (?, ?)", fromName, toID); err != nil {
		return fmt.Errorf("failed to record alias: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tag merge: %w", err)
	}
	return nil
}

// DeleteTag removes a tag, its card associations, and its aliases.
func (db *DB) DeleteTag(ctx context.Context, name string) error {
	result, err := db.conn.ExecContext(ctx, "DELETE FROM tags WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete tag %q: %w", name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", ErrTagNotFound, name)
	}
	return nil
}

// ResolveTag maps a tag name or alias to its canonical tag name.
func (db *DB) ResolveTag(ctx context.Context, name string) (string, error) {
	var canonical string
	err := db.conn.QueryRowContext(ctx, "SELECT name FROM tags WHERE name = ?", name).Scan(&canonical)
	if err == nil {
		return canonical, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("failed to resolve tag %q: %w", name, err)
	}

	err = db.conn.QueryRowContext(ctx, `
		SELECT t.name FROM tag_aliases a
		JOIN tags t ON t.id = a.tag_id
		WHERE a.alias = ?`, name).Scan(&canonical)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %q", ErrTagNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve tag alias %q: %w", name, err)
	}
	return canonical, nil
}

func ensureTag(ctx context.Context, tx *sql.Tx, name, category string) (int64, error) {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO tags (name, category) VALUES (?, ?) ON CONFLICT(name) DO NOTHING", name, category)
	if err != nil {
		return 0, fmt.Errorf("failed to ensure tag %q: %w", name, err)
	}
	return tagID(ctx, tx, name)
}

func tagID(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, "SELECT id FROM tags WHERE name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %q", ErrTagNotFound, name)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up tag %q: %w", name, err)
	}
	return id, nil
}
