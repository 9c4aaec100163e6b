package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"globetrotter/internal/service"
	"globetrotter/internal/transport/rest/middleware"
)

// ChallengeHandler handles friend challenge endpoints
type ChallengeHandler struct {
	challengeSvc *service.ChallengeService
}

// NewChallengeHandler creates a new challenge handler
func NewChallengeHandler(challengeSvc *service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeSvc: challengeSvc}
}

// Create handles POST /v1/challenges
func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())

	var req struct {
		Score  int      `json:"score"`
		Emojis []string `json:"emojis"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	challenge, err := h.challengeSvc.CreateChallenge(r.Context(), username, req.Score, req.Emojis)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create challenge")
		return
	}

	writeJSON(w, http.StatusCreated, challenge)
}

// Get handles GET /v1/challenges/{code}
func (h *ChallengeHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	challenge, err := h.challengeSvc.GetChallenge(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load challenge")
		return
	}
	if challenge == nil {
		writeError(w, http.StatusNotFound, "challenge not found")
		return
	}

	writeJSON(w, http.StatusOK, challenge)
}

// Join handles POST /v1/challenges/{code}/join
func (h *ChallengeHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	username := middleware.GetUsername(r.Context())

	challenge, err := h.challengeSvc.JoinChallenge(r.Context(), code, username)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, challenge)
}

// SubmitScore handles POST /v1/challenges/{code}/score
func (h *ChallengeHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	username := middleware.GetUsername(r.Context())

	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.challengeSvc.SubmitScore(r.Context(), code, username, req.Delta); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
