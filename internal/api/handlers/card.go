package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mtgtools/commanderforge/internal/api/response"
	"github.com/mtgtools/commanderforge/internal/cards"
	"github.com/mtgtools/commanderforge/internal/storage"
	"github.com/mtgtools/commanderforge/internal/tagger"
)

// CardStore is the corpus access the card handler needs.
type CardStore interface {
	GetCardByName(ctx context.Context, name string) (*cards.Card, error)
	SearchCards(ctx context.Context, filters storage.CardFilters) ([]*cards.Card, error)
}

// CardHandler serves card lookup and mechanics analysis requests.
type CardHandler struct {
	store  CardStore
	tagger *tagger.Tagger
}

// NewCardHandler creates a card handler.
func NewCardHandler(store CardStore) *CardHandler {
	return &CardHandler{store: store, tagger: tagger.New()}
}

// SearchCards handles GET /cards with query-string filters.
func (h *CardHandler) SearchCards(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filters := storage.CardFilters{
		NameContains: query.Get("name"),
		TypeContains: query.Get("type"),
		TypeExcludes: query.Get("exclude_type"),
		Limit:        50,
	}
	if raw := query.Get("max_cmc"); raw != "" {
		maxCMC, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			response.BadRequest(w, fmt.Errorf("invalid max_cmc %q", raw))
			return
		}
		filters.MaxCMC = maxCMC
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 500 {
			response.BadRequest(w, fmt.Errorf("limit must be between 1 and 500"))
			return
		}
		filters.Limit = limit
	}
	if identity := query.Get("identity"); identity != "" {
		for _, c := range strings.ToUpper(identity) {
			filters.ColorIdentityWithin = append(filters.ColorIdentityWithin, string(c))
		}
	}
	filters.CommanderLegalOnly = query.Get("commander_legal") == "true"

	matches, err := h.store.SearchCards(r.Context(), filters)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, matches)
}

// GetCardByName handles GET /cards/name/{name}.
func (h *CardHandler) GetCardByName(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		response.BadRequest(w, fmt.Errorf("invalid card name"))
		return
	}

	card, err := h.store.GetCardByName(r.Context(), name)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if card == nil {
		response.NotFound(w, fmt.Errorf("card not found: %q", name))
		return
	}
	response.Success(w, card)
}

// AnalyzeCardByName handles GET /cards/name/{name}/analysis: the stored
// card's mechanics profile.
func (h *CardHandler) AnalyzeCardByName(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		response.BadRequest(w, fmt.Errorf("invalid card name"))
		return
	}

	card, err := h.store.GetCardByName(r.Context(), name)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if card == nil {
		response.NotFound(w, fmt.Errorf("card not found: %q", name))
		return
	}
	response.Success(w, h.tagger.Analyze(card))
}

// AnalyzeCard handles POST /cards/analyze: analyze a caller-supplied card
// without touching the corpus.
func (h *CardHandler) AnalyzeCard(w http.ResponseWriter, r *http.Request) {
	var card cards.Card
	if err := json.NewDecoder(r.Body).Decode(&card); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid card body: %w", err))
		return
	}
	if card.Name == "" {
		response.BadRequest(w, fmt.Errorf("card name is required"))
		return
	}
	response.Success(w, h.tagger.Analyze(&card))
}
