package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"globetrotter/internal/cache"
	"globetrotter/internal/model"
	"globetrotter/internal/repository"
)

const challengeLifetime = 7 * 24 * time.Hour

// ChallengeService handles shareable friend challenges
type ChallengeService struct {
	challenges     repository.ChallengeRepo
	players        repository.PlayerRepo
	challengeCache cache.ChallengeCache
}

// NewChallengeService creates a new challenge service
func NewChallengeService(
	challenges repository.ChallengeRepo,
	players repository.PlayerRepo,
	challengeCache cache.ChallengeCache,
) *ChallengeService {
	return &ChallengeService{
		challenges:     challenges,
		players:        players,
		challengeCache: challengeCache,
	}
}

// CreateChallenge opens a challenge seeded with the creator's current score
// and trailing emoji collection.
func (s *ChallengeService) CreateChallenge(ctx context.Context, username string, score int, emojis []string) (*model.Challenge, error) {
	code, err := s.generateCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate challenge code: %w", err)
	}

	if len(emojis) > 5 {
		emojis = emojis[len(emojis)-5:]
	}

	challenge := &model.Challenge{
		Code:    code,
		Creator: username,
		Status:  model.ChallengeActive,
		Emojis:  append([]string(nil), emojis...),
		Participants: []model.ChallengeParticipant{
			{Username: username, Score: score},
		},
		Expires: time.Now().Add(challengeLifetime),
	}

	if err := s.challenges.Create(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	if s.challengeCache != nil {
		_ = s.challengeCache.Set(ctx, challenge)
	}
	return challenge, nil
}

// GetChallenge looks a challenge up by code, serving from cache when warm.
func (s *ChallengeService) GetChallenge(ctx context.Context, code string) (*model.Challenge, error) {
	if s.challengeCache != nil {
		if cached, err := s.challengeCache.Get(ctx, code); err == nil && cached != nil {
			return withExpiryApplied(cached), nil
		}
	}

	challenge, err := s.challenges.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, nil
	}

	if s.challengeCache != nil {
		_ = s.challengeCache.Set(ctx, challenge)
	}
	return withExpiryApplied(challenge), nil
}

// JoinChallenge adds a player as a participant. Joining twice is a no-op.
func (s *ChallengeService) JoinChallenge(ctx context.Context, code, username string) (*model.Challenge, error) {
	challenge, err := s.GetChallenge(ctx, code)
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, fmt.Errorf("challenge not found")
	}
	if challenge.Status == model.ChallengeExpired {
		return nil, fmt.Errorf("challenge has expired")
	}

	for _, p := range challenge.Participants {
		if p.Username == username {
			return challenge, nil
		}
	}

	participant := model.ChallengeParticipant{Username: username}
	if err := s.challenges.AddParticipant(ctx, challenge.ID, participant); err != nil {
		return nil, fmt.Errorf("failed to join challenge: %w", err)
	}
	challenge.Participants = append(challenge.Participants, participant)

	if s.challengeCache != nil {
		_ = s.challengeCache.Invalidate(ctx, code)
	}
	return challenge, nil
}

// SubmitScore bumps a participant's score inside the challenge.
func (s *ChallengeService) SubmitScore(ctx context.Context, code, username string, delta int) error {
	challenge, err := s.GetChallenge(ctx, code)
	if err != nil {
		return err
	}
	if challenge == nil {
		return fmt.Errorf("challenge not found")
	}
	if challenge.Status == model.ChallengeExpired {
		return fmt.Errorf("challenge has expired")
	}

	if err := s.challenges.AddParticipantScore(ctx, challenge.ID, username, delta); err != nil {
		return fmt.Errorf("failed to submit challenge score: %w", err)
	}
	if s.challengeCache != nil {
		_ = s.challengeCache.Invalidate(ctx, code)
	}
	return nil
}

// withExpiryApplied marks challenges past their deadline as expired. Expiry
// is evaluated on read; there is no background sweep.
func withExpiryApplied(c *model.Challenge) *model.Challenge {
	if c.Status == model.ChallengeActive && time.Now().After(c.Expires) {
		c.Status = model.ChallengeExpired
	}
	return c
}

// generateCode creates a 6-char uppercase alphanumeric code, retrying on the
// rare collision.
func (s *ChallengeService) generateCode(ctx context.Context) (string, error) {
	const chars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	const codeLen = 6

	for attempts := 0; attempts < 10; attempts++ {
		b := make([]byte, codeLen)
		if _, err := rand.Read(b); err != nil {
			return "", err
		}

		code := make([]byte, codeLen)
		for i := range code {
			code[i] = chars[int(b[i])%len(chars)]
		}
		codeStr := string(code)

		existing, err := s.challenges.GetByCode(ctx, codeStr)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return codeStr, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique challenge code")
}
