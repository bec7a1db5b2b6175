// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/jingle-draw/cliparse"
	"github.com/danielhkuo/jingle-draw/draw"
	"github.com/danielhkuo/jingle-draw/groups"
	"github.com/danielhkuo/jingle-draw/handlers"
	"github.com/danielhkuo/jingle-draw/middleware"
	"github.com/danielhkuo/jingle-draw/store"
	"github.com/danielhkuo/jingle-draw/suggest"
)

func NewRouter(st *store.Store, cfg cliparse.Config, dir *groups.Directory, engine *draw.Engine, ideas suggest.Provider) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(st, dir, cfg)
	groupHandler := handlers.NewGroupHandler(st, dir, cfg)
	drawHandler := handlers.NewDrawHandler(st, engine)
	suggestionHandler := handlers.NewSuggestionHandler(st, ideas)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts and sessions
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("POST /auth/logout", middleware.WithLogging(accountHandler.Logout))
	mux.HandleFunc("GET /auth/me", middleware.WithLogging(accountHandler.Me))

	// Groups
	mux.HandleFunc("POST /groups", middleware.WithLogging(groupHandler.Create))
	mux.HandleFunc("POST /groups/join", middleware.WithLogging(groupHandler.Join))
	mux.HandleFunc("GET /groups/{id}", middleware.WithLogging(groupHandler.Get))

	// The draw
	mux.HandleFunc("POST /groups/{id}/draw", middleware.WithLogging(drawHandler.Draw))

	// Gift ideas (display only)
	mux.HandleFunc("GET /suggestions", middleware.WithLogging(suggestionHandler.Get))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jingle-draw API v1"))
	})

	return mux
}
