package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mtgtools/commanderforge/internal/api/response"
	"github.com/mtgtools/commanderforge/internal/commander"
	"github.com/mtgtools/commanderforge/internal/synergy"
	"github.com/mtgtools/commanderforge/internal/tagger"
)

// SynergyHandler scores one card against one commander.
type SynergyHandler struct {
	store  CardStore
	scorer *synergy.Scorer
	tagger *tagger.Tagger
}

// NewSynergyHandler creates a synergy handler.
func NewSynergyHandler(store CardStore, scorer *synergy.Scorer) *SynergyHandler {
	return &SynergyHandler{store: store, scorer: scorer, tagger: tagger.New()}
}

// SynergyRequest is the body of POST /synergy.
type SynergyRequest struct {
	Commander string `json:"commander"`
	Card      string `json:"card"`
}

// SynergyResult pairs the score with the profiles it was computed from.
type SynergyResult struct {
	Commander *commander.Profile       `json:"commander"`
	Card      *tagger.MechanicsProfile `json:"card"`
	Score     synergy.Score            `json:"score"`
}

// CalculateSynergy handles POST /synergy.
func (h *SynergyHandler) CalculateSynergy(w http.ResponseWriter, r *http.Request) {
	var req SynergyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.Commander == "" || req.Card == "" {
		response.BadRequest(w, fmt.Errorf("commander and card names are required"))
		return
	}

	cmdCard, err := h.store.GetCardByName(r.Context(), req.Commander)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if cmdCard == nil {
		response.NotFound(w, fmt.Errorf("commander not found: %q", req.Commander))
		return
	}
	if err := commander.Validate(cmdCard); err != nil {
		if errors.Is(err, commander.ErrInvalidCommander) {
			response.UnprocessableEntity(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}

	card, err := h.store.GetCardByName(r.Context(), req.Card)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if card == nil {
		response.NotFound(w, fmt.Errorf("card not found: %q", req.Card))
		return
	}

	cmdMech := h.tagger.Analyze(cmdCard)
	profile := commander.BuildProfile(cmdCard, cmdMech)
	cardMech := h.tagger.Analyze(card)

	response.Success(w, SynergyResult{
		Commander: profile,
		Card:      cardMech,
		Score:     h.scorer.ScoreCard(profile, cmdCard, card, cardMech),
	})
}
