package model

import "time"

// Player is the per-username profile with cross-game aggregates.
type Player struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	Username       string    `json:"username" bson:"username"`
	TotalScore     int       `json:"totalScore" bson:"totalScore"`
	GamesPlayed    int       `json:"gamesPlayed" bson:"gamesPlayed"`
	CorrectAnswers int       `json:"correctAnswers" bson:"correctAnswers"`
	RecentEmojis   []string  `json:"recentEmojis" bson:"recentEmojis"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}
