// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/jingle-draw/auth"
	"github.com/danielhkuo/jingle-draw/cliparse"
	"github.com/danielhkuo/jingle-draw/groups"
	"github.com/danielhkuo/jingle-draw/middleware"
	"github.com/danielhkuo/jingle-draw/models"
	"github.com/danielhkuo/jingle-draw/store"
)

const defaultAvatar = "🎅"

type AccountHandler struct {
	store *store.Store
	dir   *groups.Directory
	cfg   cliparse.Config
}

func NewAccountHandler(st *store.Store, dir *groups.Directory, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{store: st, dir: dir, cfg: cfg}
}

// requireMember resolves the caller's session to a member, writing the
// error response itself when the session is missing or invalid.
func requireMember(w http.ResponseWriter, r *http.Request, st *store.Store) (models.Member, bool) {
	token := middleware.SessionToken(r)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Session-Token header required")
		return models.Member{}, false
	}

	member, ok, err := st.GetSessionMember(r.Context(), token)
	if err != nil {
		slog.Error("failed to resolve session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Member{}, false
	}
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session token")
		return models.Member{}, false
	}
	return member, true
}

// Register handles POST /auth/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	email := auth.NormalizeEmail(req.Email)
	if email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}
	if req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password is required")
		return
	}
	if req.DisplayName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "display_name is required")
		return
	}
	if req.Avatar == "" {
		req.Avatar = defaultAvatar
	}

	// Registration collision
	_, exists, err := h.store.GetMemberByEmail(r.Context(), email)
	if err != nil {
		slog.Error("failed to query member by email", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if exists {
		middleware.ErrorResponse(w, http.StatusConflict, "This email is already registered")
		return
	}

	member := models.Member{
		ID:             uuid.NewString(),
		Email:          email,
		DisplayName:    req.DisplayName,
		Avatar:         req.Avatar,
		PasswordDigest: auth.PasswordDigest(email, req.Password, h.cfg.SessionSalt),
		CreatedAt:      time.Now().UTC(),
	}

	// Joining a group at registration goes through the directory so the
	// capacity check and the insert happen under its lock; every failure
	// comes before the write, so a bad code leaves no half-registered
	// member.
	if req.GroupCode != "" {
		if _, err := h.dir.Enroll(r.Context(), req.GroupCode, member); err != nil {
			switch {
			case errors.Is(err, groups.ErrInvalidJoinCode):
				middleware.ErrorResponse(w, http.StatusNotFound, "Invalid join code")
			case errors.Is(err, groups.ErrGroupFull):
				middleware.ErrorResponse(w, http.StatusConflict, "Group is full")
			default:
				slog.Error("failed to enroll member", "error", err)
				middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
			}
			return
		}
	} else if err := h.store.PutMember(r.Context(), member); err != nil {
		slog.Error("failed to insert member", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	token, err := h.openSession(r, member.ID)
	if err != nil {
		slog.Error("failed to open session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("member registered", "member_id", member.ID, "joined_group", req.GroupCode != "")

	middleware.JSONResponse(w, http.StatusCreated, models.SessionResponse{
		SessionToken: token,
		Member:       member.Summary(),
	})
}

// Login handles POST /auth/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := auth.NormalizeEmail(req.Email)
	member, ok, err := h.store.GetMemberByEmail(r.Context(), email)
	if err != nil {
		slog.Error("failed to query member by email", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !ok || auth.VerifyPassword(email, req.Password, h.cfg.SessionSalt, member.PasswordDigest) != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.openSession(r, member.ID)
	if err != nil {
		slog.Error("failed to open session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("member logged in", "member_id", member.ID)

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		SessionToken: token,
		Member:       member.Summary(),
	})
}

// Logout handles POST /auth/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.SessionToken(r)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Session-Token header required")
		return
	}

	if err := h.store.DeleteSession(r.Context(), token); err != nil {
		slog.Error("failed to delete session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	member, ok := requireMember(w, r, h.store)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, member)
}

func (h *AccountHandler) openSession(r *http.Request, memberID string) (string, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return "", err
	}
	if err := h.store.PutSession(r.Context(), token, memberID); err != nil {
		return "", err
	}
	return token, nil
}
