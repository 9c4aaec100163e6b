package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"globetrotter/internal/cache"
	"globetrotter/internal/config"
	"globetrotter/internal/content"
	"globetrotter/internal/game"
	"globetrotter/internal/repository"
	"globetrotter/internal/service"
	"globetrotter/internal/transport/rest"
	"globetrotter/internal/transport/ws"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := config.Load()
	aiConfig := config.DefaultAIConfig()
	if aiConfig.IsEnabled() {
		logger.Info().
			Str("clueModel", aiConfig.Models.Clue).
			Str("funFactModel", aiConfig.Models.FunFact).
			Str("bonusModel", aiConfig.Models.Bonus).
			Msg("AI content generation enabled")
	} else {
		logger.Info().Msg("AI content generation disabled, using stored and bundled content")
	}

	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}
	logger.Info().Msg("connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping Redis")
	}
	logger.Info().Msg("connected to Redis")

	// Initialize repositories
	destinationRepo := repository.NewDestinationRepo(db)
	gameRepo := repository.NewGameRepo(db)
	playerRepo := repository.NewPlayerRepo(db)
	bonusRepo := repository.NewBonusRepo(db)
	challengeRepo := repository.NewChallengeRepo(db)

	// Initialize caches
	leaderboard := cache.NewLeaderboardCache(rdb)
	challengeCache := cache.NewChallengeCache(rdb)

	// Initialize content pipeline
	generator := content.NewGenerator(aiConfig, logger)
	provider := content.NewProvider(destinationRepo, bonusRepo, generator, logger)

	// Initialize services
	authSvc := service.NewAuthService(playerRepo, cfg.JWTSecret)
	resultSvc := service.NewResultService(gameRepo, playerRepo, leaderboard)
	playerSvc := service.NewPlayerService(playerRepo, gameRepo, leaderboard)
	challengeSvc := service.NewChallengeService(challengeRepo, playerRepo, challengeCache)

	// Initialize session manager and WebSocket hub
	manager := game.NewManager(provider, resultSvc, logger)
	wsHub := ws.NewHub(logger)
	manager.SetNotifier(wsHub)
	wsHandler := ws.NewHandler(wsHub, authSvc, manager, logger)

	// Create router with container
	container := &rest.Container{
		Config:           cfg,
		AuthService:      authSvc,
		ResultService:    resultSvc,
		PlayerService:    playerSvc,
		ChallengeService: challengeSvc,
		Manager:          manager,
		WSHandler:        wsHandler,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen and serve failed")
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}
