package service

import (
	"context"
	"fmt"

	"globetrotter/internal/cache"
	"globetrotter/internal/model"
	"globetrotter/internal/repository"
)

// ResultService persists game progress and outcomes. Sessions call it after
// their local state has already moved on, so every method is safe to fail
// without corrupting play.
type ResultService struct {
	games       repository.GameRepo
	players     repository.PlayerRepo
	leaderboard cache.LeaderboardCache
}

// NewResultService creates a new result service
func NewResultService(
	games repository.GameRepo,
	players repository.PlayerRepo,
	leaderboard cache.LeaderboardCache,
) *ResultService {
	return &ResultService{
		games:       games,
		players:     players,
		leaderboard: leaderboard,
	}
}

// CreateGame opens a new game record for the player.
func (s *ResultService) CreateGame(ctx context.Context, username string) (*model.Game, error) {
	game := &model.Game{
		PlayerUsername: username,
	}
	if err := s.games.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return game, nil
}

// GetGame retrieves a game record by ID.
func (s *ResultService) GetGame(ctx context.Context, id string) (*model.Game, error) {
	return s.games.GetByID(ctx, id)
}

// RecordAnswer appends one correctly guessed destination to the game record.
func (s *ResultService) RecordAnswer(ctx context.Context, gameID string, dest model.Destination) error {
	return s.games.AppendAnswer(ctx, gameID, dest.City, dest.Emoji)
}

// UpdateScore applies a score patch to the game record.
func (s *ResultService) UpdateScore(ctx context.Context, gameID string, patch model.ScorePatch) error {
	return s.games.ApplyScorePatch(ctx, gameID, patch)
}

// FinalizeSession closes the game record, folds the result into the player's
// aggregates and submits the score to the leaderboard.
func (s *ResultService) FinalizeSession(ctx context.Context, gameID string, stats model.FinalStats) error {
	game, err := s.games.GetByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to load game: %w", err)
	}
	if game == nil {
		return fmt.Errorf("game %s not found", gameID)
	}
	if game.Status == model.GameEnded {
		return nil
	}

	if err := s.games.Finalize(ctx, gameID, stats); err != nil {
		return fmt.Errorf("failed to finalize game: %w", err)
	}

	if err := s.players.AddGameResult(ctx, game.PlayerUsername, stats.Score, stats.CorrectCount, stats.Emojis); err != nil {
		return fmt.Errorf("failed to update player aggregates: %w", err)
	}

	if s.leaderboard != nil {
		if err := s.leaderboard.RecordScore(ctx, game.PlayerUsername, stats.Score); err != nil {
			return fmt.Errorf("failed to record leaderboard score: %w", err)
		}
	}
	return nil
}
