// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/jingle-draw/draw"
	"github.com/danielhkuo/jingle-draw/groups"
	"github.com/danielhkuo/jingle-draw/middleware"
	"github.com/danielhkuo/jingle-draw/models"
	"github.com/danielhkuo/jingle-draw/store"
)

type DrawHandler struct {
	store  *store.Store
	engine *draw.Engine
}

func NewDrawHandler(st *store.Store, engine *draw.Engine) *DrawHandler {
	return &DrawHandler{store: st, engine: engine}
}

// Draw handles POST /groups/{id}/draw
// Idempotent: a member who has already drawn gets the same match back.
func (h *DrawHandler) Draw(w http.ResponseWriter, r *http.Request) {
	member, ok := requireMember(w, r, h.store)
	if !ok {
		return
	}

	groupID := r.PathValue("id")
	if groupID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "group id is required")
		return
	}

	match, err := h.engine.Draw(r.Context(), member.ID, groupID)
	if err != nil {
		switch {
		case errors.Is(err, groups.ErrGroupNotFound):
			middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
		case errors.Is(err, draw.ErrMemberNotInGroup):
			middleware.ErrorResponse(w, http.StatusForbidden, "You are not in this group")
		case errors.Is(err, draw.ErrInsufficientMembers):
			middleware.ErrorResponse(w, http.StatusConflict, "You need at least 2 members to draw")
		case errors.Is(err, draw.ErrDeadlockUnresolvable):
			middleware.ErrorResponse(w, http.StatusConflict, "Not enough participants to complete a valid assignment - invite more members")
		default:
			slog.Error("draw failed", "error", err, "member_id", member.ID, "group_id", groupID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Draw failed")
		}
		return
	}

	slog.Info("draw completed", "member_id", member.ID, "group_id", groupID)

	middleware.JSONResponse(w, http.StatusOK, models.DrawResponse{Match: match.Summary()})
}
