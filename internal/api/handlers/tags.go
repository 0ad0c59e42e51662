package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mtgtools/commanderforge/internal/api/response"
	"github.com/mtgtools/commanderforge/internal/storage"
)

// TagStore is the tag persistence the tag handler needs.
type TagStore interface {
	AvailableTags(ctx context.Context) ([]storage.TagUsage, error)
	MergeTags(ctx context.Context, fromName, toName string) error
	DeleteTag(ctx context.Context, name string) error
}

// TagHandler serves the tag vocabulary and curation endpoints.
type TagHandler struct {
	store TagStore
}

// NewTagHandler creates a tag handler.
func NewTagHandler(store TagStore) *TagHandler {
	return &TagHandler{store: store}
}

// GetTags handles GET /tags.
func (h *TagHandler) GetTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.store.AvailableTags(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if tags == nil {
		tags = []storage.TagUsage{}
	}
	response.Success(w, tags)
}

// MergeRequest is the body of POST /tags/merge.
type MergeRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MergeTags handles POST /tags/merge, folding one tag into another.
func (h *TagHandler) MergeTags(w http.ResponseWriter, r *http.Request) {
	var req MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.From == "" || req.To == "" {
		response.BadRequest(w, fmt.Errorf("from and to tag names are required"))
		return
	}
	if req.From == req.To {
		response.BadRequest(w, fmt.Errorf("cannot merge a tag into itself"))
		return
	}

	if err := h.store.MergeTags(r.Context(), req.From, req.To); err != nil {
		if errors.Is(err, storage.ErrTagNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}
	response.NoContent(w)
}

// DeleteTag handles DELETE /tags/{name}.
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.store.DeleteTag(r.Context(), name); err != nil {
		if errors.Is(err, storage.ErrTagNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}
	response.NoContent(w)
}
