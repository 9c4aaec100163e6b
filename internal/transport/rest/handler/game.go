package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"globetrotter/internal/game"
	"globetrotter/internal/service"
	"globetrotter/internal/transport/rest/middleware"
)

// GameHandler handles gameplay endpoints
type GameHandler struct {
	manager   *game.Manager
	resultSvc *service.ResultService
}

// NewGameHandler creates a new game handler
func NewGameHandler(manager *game.Manager, resultSvc *service.ResultService) *GameHandler {
	return &GameHandler{
		manager:   manager,
		resultSvc: resultSvc,
	}
}

// Create handles POST /v1/games. It opens a game record, registers a live
// session and serves the first question before responding.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	record, err := h.resultSvc.CreateGame(r.Context(), username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create game")
		return
	}

	session, err := h.manager.Create(username, record.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	if err := session.Start(r.Context()); err != nil {
		h.manager.Remove(session.ID())
		writeError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	writeJSON(w, http.StatusCreated, session.Snapshot())
}

// Get handles GET /v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := h.ownedSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// Answer handles POST /v1/games/{id}/answer
func (h *GameHandler) Answer(w http.ResponseWriter, r *http.Request) {
	session, ok := h.ownedSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Choice string `json:"choice"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session.Answer(req.Choice)
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// Advance handles POST /v1/games/{id}/advance
func (h *GameHandler) Advance(w http.ResponseWriter, r *http.Request) {
	session, ok := h.ownedSession(w, r)
	if !ok {
		return
	}

	session.Advance(r.Context())
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// Bonus handles POST /v1/games/{id}/bonus
func (h *GameHandler) Bonus(w http.ResponseWriter, r *http.Request) {
	session, ok := h.ownedSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session.AnswerBonus(req.Index)
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// End handles POST /v1/games/{id}/end
func (h *GameHandler) End(w http.ResponseWriter, r *http.Request) {
	session, ok := h.ownedSession(w, r)
	if !ok {
		return
	}

	session.End()
	snapshot := session.Snapshot()
	h.manager.Remove(session.ID())
	writeJSON(w, http.StatusOK, snapshot)
}

// ownedSession loads the session from the path and checks it belongs to the
// authenticated player.
func (h *GameHandler) ownedSession(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	id := mux.Vars(r)["id"]
	session, err := h.manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	if session.Player() != middleware.GetUsername(r.Context()) {
		writeError(w, http.StatusForbidden, "not your session")
		return nil, false
	}
	return session, true
}
