package service

import (
	"context"
	"fmt"

	"globetrotter/internal/cache"
	"globetrotter/internal/model"
	"globetrotter/internal/repository"
)

// PlayerProfile is a player's stored aggregates plus their live leaderboard
// standing.
type PlayerProfile struct {
	Player *model.Player `json:"player"`
	Rank   int64         `json:"rank"` // -1 when unranked
}

// PlayerService handles player profile and leaderboard reads
type PlayerService struct {
	players     repository.PlayerRepo
	games       repository.GameRepo
	leaderboard cache.LeaderboardCache
}

// NewPlayerService creates a new player service
func NewPlayerService(
	players repository.PlayerRepo,
	games repository.GameRepo,
	leaderboard cache.LeaderboardCache,
) *PlayerService {
	return &PlayerService{
		players:     players,
		games:       games,
		leaderboard: leaderboard,
	}
}

// GetProfile returns the player's aggregates and leaderboard rank.
func (s *PlayerService) GetProfile(ctx context.Context, username string) (*PlayerProfile, error) {
	player, err := s.players.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, fmt.Errorf("player not found")
	}

	rank := int64(-1)
	if s.leaderboard != nil {
		if r, err := s.leaderboard.GetRank(ctx, username); err == nil {
			rank = r
		}
	}

	return &PlayerProfile{Player: player, Rank: rank}, nil
}

// GetGameHistory returns the player's game records.
func (s *PlayerService) GetGameHistory(ctx context.Context, username string) ([]*model.Game, error) {
	return s.games.GetByPlayer(ctx, username)
}

// GetLeaderboard returns the top entries by best final score.
func (s *PlayerService) GetLeaderboard(ctx context.Context, limit int) ([]cache.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.leaderboard.GetTop(ctx, limit)
}
