// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/jingle-draw/middleware"
	"github.com/danielhkuo/jingle-draw/models"
	"github.com/danielhkuo/jingle-draw/store"
	"github.com/danielhkuo/jingle-draw/suggest"
)

type SuggestionHandler struct {
	store *store.Store
	ideas suggest.Provider
}

func NewSuggestionHandler(st *store.Store, ideas suggest.Provider) *SuggestionHandler {
	return &SuggestionHandler{store: st, ideas: ideas}
}

// Get handles GET /suggestions?name=...
// Never fails: on upstream trouble the provider serves its fallback.
func (h *SuggestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireMember(w, r, h.store); !ok {
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name query parameter is required")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuggestionsResponse{
		Ideas: h.ideas.Ideas(r.Context(), name),
	})
}
