package model

import "github.com/golang-jwt/jwt/v5"

// PlayerClaims are JWT claims for session-scoped player tokens
type PlayerClaims struct {
	PlayerID string `json:"playerId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for player login
type LoginRequest struct {
	Username string `json:"username"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token    string `json:"token"`
	PlayerID string `json:"playerId"`
	Username string `json:"username"`
}
