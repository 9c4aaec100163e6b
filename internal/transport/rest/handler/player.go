package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"globetrotter/internal/service"
	"globetrotter/internal/transport/rest/middleware"
)

// PlayerHandler handles player profile and leaderboard endpoints
type PlayerHandler struct {
	playerSvc *service.PlayerService
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playerSvc *service.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerSvc: playerSvc}
}

// Profile handles GET /v1/players/{username}
func (h *PlayerHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	profile, err := h.playerSvc.GetProfile(r.Context(), username)
	if err != nil {
		writeError(w, http.StatusNotFound, "player not found")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// History handles GET /v1/players/me/games
func (h *PlayerHandler) History(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	games, err := h.playerSvc.GetGameHistory(r.Context(), username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load game history")
		return
	}

	writeJSON(w, http.StatusOK, games)
}

// Leaderboard handles GET /v1/leaderboard
func (h *PlayerHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.playerSvc.GetLeaderboard(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
