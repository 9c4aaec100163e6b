package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"globetrotter/internal/config"
	"globetrotter/internal/game"
	"globetrotter/internal/service"
	"globetrotter/internal/transport/rest/handler"
	"globetrotter/internal/transport/rest/middleware"
	"globetrotter/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	Config           *config.Config
	AuthService      *service.AuthService
	ResultService    *service.ResultService
	PlayerService    *service.PlayerService
	ChallengeService *service.ChallengeService
	Manager          *game.Manager
	WSHandler        *ws.Handler
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	gameHandler := handler.NewGameHandler(c.Manager, c.ResultService)
	playerHandler := handler.NewPlayerHandler(c.PlayerService)
	challengeHandler := handler.NewChallengeHandler(c.ChallengeService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.Config))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/leaderboard", playerHandler.Leaderboard).Methods("GET", "OPTIONS")
	v1.HandleFunc("/challenges/{code}", challengeHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/players/{username}", playerHandler.Profile).Methods("GET", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/games/{id}", c.WSHandler.GameWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Player routes (require player auth)
	playerRoutes := v1.NewRoute().Subrouter()
	playerRoutes.Use(authMW.RequirePlayer)

	playerRoutes.HandleFunc("/games", gameHandler.Create).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/games/{id}", gameHandler.Get).Methods("GET", "OPTIONS")
	playerRoutes.HandleFunc("/games/{id}/answer", gameHandler.Answer).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/games/{id}/advance", gameHandler.Advance).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/games/{id}/bonus", gameHandler.Bonus).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/games/{id}/end", gameHandler.End).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/players/me/games", playerHandler.History).Methods("GET", "OPTIONS")
	playerRoutes.HandleFunc("/challenges", challengeHandler.Create).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/challenges/{code}/join", challengeHandler.Join).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/challenges/{code}/score", challengeHandler.SubmitScore).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(cfg *config.Config) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
