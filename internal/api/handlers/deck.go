// Package handlers implements the REST API endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mtgtools/commanderforge/internal/api/response"
	"github.com/mtgtools/commanderforge/internal/commander"
	"github.com/mtgtools/commanderforge/internal/deckgen"
)

// DeckGenerator is the deck generation entry point the handler calls.
type DeckGenerator interface {
	Generate(ctx context.Context, commanderName string, constraints deckgen.Constraints) (*deckgen.Deck, error)
}

// DeckHandler serves deck generation requests.
type DeckHandler struct {
	generator DeckGenerator
	observe   func(elapsed time.Duration, warnings, poolSize int)
}

// NewDeckHandler creates a deck handler. observe may be nil.
func NewDeckHandler(generator DeckGenerator, observe func(time.Duration, int, int)) *DeckHandler {
	return &DeckHandler{generator: generator, observe: observe}
}

// GenerateRequest is the body of POST /decks/generate. Constraints stay raw
// so absent fields keep their defaults instead of decoding to zero values.
type GenerateRequest struct {
	Commander   string          `json:"commander"`
	Constraints json.RawMessage `json:"constraints,omitempty"`
}

// GenerateDeck handles POST /decks/generate.
func (h *DeckHandler) GenerateDeck(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Commander == "" {
		response.BadRequest(w, fmt.Errorf("commander name is required"))
		return
	}

	// Unmarshal over the defaults: a partial constraints object (for example
	// one naming only the planeswalker count) keeps neutral weights for the
	// types it does not mention, while an explicit 0 still excludes a type.
	constraints := deckgen.DefaultConstraints()
	if len(req.Constraints) > 0 {
		if err := json.Unmarshal(req.Constraints, &constraints); err != nil {
			response.BadRequest(w, fmt.Errorf("invalid constraints: %w", err))
			return
		}
	}

	start := time.Now()
	deck, err := h.generator.Generate(r.Context(), req.Commander, constraints)
	switch {
	case errors.Is(err, deckgen.ErrCommanderNotFound):
		response.NotFound(w, err)
		return
	case errors.Is(err, commander.ErrInvalidCommander):
		response.UnprocessableEntity(w, err)
		return
	case err != nil:
		response.InternalError(w, err)
		return
	}

	if h.observe != nil {
		h.observe(time.Since(start), len(deck.Warnings), deck.PoolSize)
	}
	response.Success(w, deck)
}
