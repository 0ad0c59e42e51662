package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/mtgtools/commanderforge/internal/tagger"
)

func saveTestCardWithTags(t *testing.T, db *DB, scryfallID, name string, tags ...tagger.MechanicTag) {
	t.Helper()
	ctx := context.Background()

	if err := db.SaveCard(ctx, testCard(scryfallID, name)); err != nil {
		t.Fatalf("Failed to save card: %v", err)
	}
	if err := db.SaveCardTags(ctx, scryfallID, tags); err != nil {
		t.Fatalf("Failed to save card tags: %v", err)
	}
}

func mechTag(name string, category tagger.Category) tagger.MechanicTag {
	return tagger.MechanicTag{Name: name, Category: category, Priority: 5, Confidence: 1.0}
}

func TestAvailableTags(t *testing.T) {
	db := OpenTest(t)

	saveTestCardWithTags(t, db, "card-1", "Scute Swarm",
		mechTag("mechanic_token_creation", tagger.CategoryTokens),
		mechTag("mechanic_landfall", tagger.CategoryTriggers))
	saveTestCardWithTags(t, db, "card-2", "Rampaging Baloths",
		mechTag("mechanic_token_creation", tagger.CategoryTokens))

	tags, err := db.AvailableTags(context.Background())
	if err != nil {
		t.Fatalf("Failed to list tags: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("Expected 2 tags, got %d", len(tags))
	}

	// Ordered by name: landfall before token_creation.
	if tags[0].Name != "mechanic_landfall" || tags[0].Count != 1 {
		t.Errorf("Expected mechanic_landfall with count 1, got %s/%d", tags[0].Name, tags[0].Count)
	}
	if tags[1].Name != "mechanic_token_creation" || tags[1].Count != 2 {
		t.Errorf("Expected mechanic_token_creation with count 2, got %s/%d", tags[1].Name, tags[1].Count)
	}
}

func TestSaveCardTagsReplaces(t *testing.T) {
	db := OpenTest(t)
	ctx := context.Background()

	saveTestCardWithTags(t, db, "card-1", "Scute Swarm",
		mechTag("mechanic_token_creation", tagger.CategoryTokens))

	if err := db.SaveCardTags(ctx, "card-1", []tagger.MechanicTag{
		mechTag("mechanic_landfall", tagger.CategoryTriggers),
	}); err != nil {
		t.Fatalf("Failed to replace tags: %v", err)
	}

	tags, err := db.AvailableTags(ctx)
	if err != nil {
		t.Fatalf("Failed to list tags: %v", err)
	}
	for _, tag := range tags {
		switch tag.Name {
		case "mechanic_token_creation":
			if tag.Count != 0 {
				t.Errorf("Expected stale tag count 0, got %d", tag.Count)
			}
		case "mechanic_landfall":
			if tag.Count != 1 {
				t.Errorf("Expected replacement tag count 1, got %d", tag.Count)
			}
		}
	}
}

func TestMergeTags(t *testing.T) {
	db := OpenTest(t)
	ctx := context.Background()

	saveTestCardWithTags(t, db, "card-1", "Scute Swarm",
		mechTag("mechanic_token_making", tagger.CategoryTokens))
	saveTestCardWithTags(t, db, "card-2", "Rampaging Baloths",
		mechTag("mechanic_token_creation", tagger.CategoryTokens))
	// A card carrying both tags must not end up double-associated.
	saveTestCardWithTags(t, db, "card-3", "Avenger of Zendikar",
		mechTag("mechanic_token_making", tagger.CategoryTokens),
		mechTag("mechanic_token_creation", tagger.CategoryTokens))

	if err := db.MergeTags(ctx, "mechanic_token_making", "mechanic_token_creation"); err != nil {
		t.Fatalf("Failed to merge tags: %v", err)
	}

	tags, err := db.AvailableTags(ctx)
	if err != nil {
		t.Fatalf("Failed to list tags: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("Expected 1 tag after merge, got %d", len(tags))
	}
	if tags[0].Name != "mechanic_token_creation" || tags[0].Count != 3 {
		t.Errorf("Expected mechanic_token_creation with count 3, got %s/%d", tags[0].Name, tags[0].Count)
	}

	// The merged name resolves as an alias.
	canonical, err := db.ResolveTag(ctx, "mechanic_token_making")
	if err != nil {
		t.Fatalf("Failed to resolve alias: %v", err)
	}
	if canonical != "mechanic_token_creation" {
		t.Errorf("Expected alias to resolve to mechanic_token_creation, got %s", canonical)
	}
}

func TestMergeTagsMissing(t *testing.T) {
	db := OpenTest(t)

	err := db.MergeTags(context.Background(), "mechanic_nope", "mechanic_also_nope")
	if !errors.Is(err, ErrTagNotFound) {
		t.Errorf("Expected ErrTagNotFound, got %v", err)
	}
}

func TestDeleteTag(t *testing.T) {
	db := OpenTest(t)
	ctx := context.Background()

	saveTestCardWithTags(t, db, "card-1", "Scute Swarm",
		mechTag("mechanic_token_creation", tagger.CategoryTokens))

	if err := db.DeleteTag(ctx, "mechanic_token_creation"); err != nil {
		t.Fatalf("Failed to delete tag: %v", err)
	}

	tags, err := db.AvailableTags(ctx)
	if err != nil {
		t.Fatalf("Failed to list tags: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("Expected no tags after delete, got %d", len(tags))
	}

	if err := db.DeleteTag(ctx, "mechanic_token_creation"); !errors.Is(err, ErrTagNotFound) {
		t.Errorf("Expected ErrTagNotFound on second delete, got %v", err)
	}
}
