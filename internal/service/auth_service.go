package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"globetrotter/internal/model"
	"globetrotter/internal/repository"
)

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrInvalidToken  = errors.New("invalid or expired token")
)

// AuthService handles player identity. There are no passwords; a username
// claims a profile and gets a signed token for it.
type AuthService struct {
	players   repository.PlayerRepo
	jwtSecret []byte
}

// NewAuthService creates a new auth service
func NewAuthService(players repository.PlayerRepo, jwtSecret string) *AuthService {
	return &AuthService{
		players:   players,
		jwtSecret: []byte(jwtSecret),
	}
}

// Login resolves the username to a player profile, creating one on first
// sight, and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username string) (*model.LoginResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}

	player, err := s.players.GetOrCreate(ctx, username)
	if err != nil {
		return nil, err
	}

	claims := &model.PlayerClaims{
		PlayerID: player.ID,
		Username: player.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:    tokenString,
		PlayerID: player.ID,
		Username: player.Username,
	}, nil
}

// ValidatePlayerToken validates a player JWT and returns claims
func (s *AuthService) ValidatePlayerToken(tokenString string) (*model.PlayerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.PlayerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.PlayerClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
