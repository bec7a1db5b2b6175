// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/jingle-draw/cliparse"
	"github.com/danielhkuo/jingle-draw/groups"
	"github.com/danielhkuo/jingle-draw/middleware"
	"github.com/danielhkuo/jingle-draw/models"
	"github.com/danielhkuo/jingle-draw/store"
)

type GroupHandler struct {
	store *store.Store
	dir   *groups.Directory
	cfg   cliparse.Config
}

func NewGroupHandler(st *store.Store, dir *groups.Directory, cfg cliparse.Config) *GroupHandler {
	return &GroupHandler{store: st, dir: dir, cfg: cfg}
}

// Create handles POST /groups
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	member, ok := requireMember(w, r, h.store)
	if !ok {
		return
	}

	var req models.CreateGroupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	group, err := h.dir.CreateGroup(r.Context(), req.Name, member.ID)
	if err != nil {
		if errors.Is(err, groups.ErrAlreadyInGroup) {
			middleware.ErrorResponse(w, http.StatusConflict, "You already belong to a group")
			return
		}
		slog.Error("failed to create group", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create group")
		return
	}

	slog.Info("group created", "group_id", group.ID, "owner", member.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateGroupResponse{Group: group})
}

// Join handles POST /groups/join
func (h *GroupHandler) Join(w http.ResponseWriter, r *http.Request) {
	member, ok := requireMember(w, r, h.store)
	if !ok {
		return
	}

	var req models.JoinGroupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	group, err := h.dir.Join(r.Context(), req.Code, member.ID)
	if err != nil {
		switch {
		case errors.Is(err, groups.ErrInvalidJoinCode):
			middleware.ErrorResponse(w, http.StatusNotFound, "Invalid join code")
		case errors.Is(err, groups.ErrGroupFull):
			middleware.ErrorResponse(w, http.StatusConflict, "Group is full")
		case errors.Is(err, groups.ErrAlreadyInGroup):
			middleware.ErrorResponse(w, http.StatusConflict, "You already belong to a group")
		default:
			slog.Error("failed to join group", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to join group")
		}
		return
	}

	slog.Info("member joined group", "group_id", group.ID, "member_id", member.ID)

	middleware.JSONResponse(w, http.StatusOK, models.CreateGroupResponse{Group: group})
}

// Get handles GET /groups/{id}
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	member, ok := requireMember(w, r, h.store)
	if !ok {
		return
	}

	groupID := r.PathValue("id")
	if groupID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "group id is required")
		return
	}

	group, roster, err := h.dir.Resolve(r.Context(), groupID)
	if err != nil {
		if errors.Is(err, groups.ErrGroupNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Group not found")
			return
		}
		slog.Error("failed to resolve group", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Rosters are visible to members only
	if member.GroupID == nil || *member.GroupID != group.ID {
		middleware.ErrorResponse(w, http.StatusForbidden, "You are not in this group")
		return
	}

	summaries := make([]models.MemberSummary, 0, len(roster))
	for _, m := range roster {
		summaries = append(summaries, m.Summary())
	}

	middleware.JSONResponse(w, http.StatusOK, models.GroupWithMembers{
		Group:   group,
		Members: summaries,
	})
}
