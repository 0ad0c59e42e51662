package cardsync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mtgtools/commanderforge/internal/cards/scryfall"
	"github.com/mtgtools/commanderforge/internal/storage"
)

func bulkServer(t *testing.T, cardsJSON string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/bulk-data", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"data": [{"id": "b-1", "type": "oracle_cards", "download_uri": "%s/bulk/oracle.json"}]}`, server.URL)
	})
	mux.HandleFunc("/bulk/oracle.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, cardsJSON)
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRunImportsCommanderLegalCards(t *testing.T) {
	server := bulkServer(t, `[
		{
			"id": "krenko-1",
			"name": "Krenko, Mob Boss",
			"type_line": "Legendary Creature — Goblin Warrior",
			"oracle_text": "{T}: Create X 1/1 red Goblin creature tokens, where X is the number of Goblins you control.",
			"color_identity": ["R"],
			"legalities": {"commander": "legal"}
		},
		{
			"id": "bolt-1",
			"name": "Lightning Bolt",
			"type_line": "Instant",
			"oracle_text": "Lightning Bolt deals 3 damage to any target.",
			"color_identity": ["R"],
			"legalities": {"commander": "legal"}
		},
		{
			"id": "unlegal-1",
			"name": "Un-set Joke",
			"type_line": "Creature — Clown",
			"legalities": {"commander": "not_legal"}
		}
	]`)

	db := storage.OpenTest(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	syncer := New(scryfall.NewClientWithBase(server.URL), db, logger)

	result, err := syncer.Run(context.Background())
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}

	if result.Downloaded != 3 {
		t.Errorf("Expected 3 downloaded, got %d", result.Downloaded)
	}
	if result.Imported != 2 {
		t.Errorf("Expected 2 imported, got %d", result.Imported)
	}
	if result.Skipped != 1 {
		t.Errorf("Expected 1 skipped, got %d", result.Skipped)
	}

	card, err := db.GetCardByName(context.Background(), "Krenko, Mob Boss")
	if err != nil || card == nil {
		t.Fatalf("Expected imported card, got %v %v", card, err)
	}

	// Tagging runs during import.
	tags, err := db.AvailableTags(context.Background())
	if err != nil {
		t.Fatalf("Failed to list tags: %v", err)
	}
	var tokenTag bool
	for _, tag := range tags {
		if tag.Name == "mechanic_token_creation" && tag.Count > 0 {
			tokenTag = true
		}
	}
	if !tokenTag {
		t.Error("Expected mechanic_token_creation tag from sync import")
	}
}

func TestRunBatchFlush(t *testing.T) {
	server := bulkServer(t, `[
		{"id": "a-1", "name": "Card A", "type_line": "Instant", "legalities": {"commander": "legal"}},
		{"id": "b-2", "name": "Card B", "type_line": "Instant", "legalities": {"commander": "legal"}},
		{"id": "c-3", "name": "Card C", "type_line": "Instant", "legalities": {"commander": "legal"}}
	]`)

	db := storage.OpenTest(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	syncer := New(scryfall.NewClientWithBase(server.URL), db, logger)
	syncer.batchSize = 2

	result, err := syncer.Run(context.Background())
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if result.Imported != 3 {
		t.Errorf("Expected 3 imported across batches, got %d", result.Imported)
	}

	count, err := db.CountCards(context.Background())
	if err != nil {
		t.Fatalf("Failed to count cards: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 stored cards, got %d", count)
	}
}

func TestRunNoOracleEntry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data": [{"id": "b-1", "type": "default_cards", "download_uri": "http://example.com/x.json"}]}`)
	}))
	defer server.Close()

	db := storage.OpenTest(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	syncer := New(scryfall.NewClientWithBase(server.URL), db, logger)

	if _, err := syncer.Run(context.Background()); err == nil {
		t.Error("Expected error when listing has no oracle_cards entry")
	}
}
