package model

import "time"

type GameStatus string

const (
	GameActive GameStatus = "active"
	GameEnded  GameStatus = "ended"
)

// Game is the persisted record of one play-through. It mirrors what the
// session reports through the result sink; the live state lives in the
// session itself.
type Game struct {
	ID                     string     `json:"id" bson:"_id,omitempty"`
	PlayerUsername         string     `json:"playerUsername" bson:"playerUsername"`
	Status                 GameStatus `json:"status" bson:"status"`
	Score                  int        `json:"score" bson:"score"`
	DestinationsPlayed     []string   `json:"destinationsPlayed" bson:"destinationsPlayed"`
	CorrectAnswers         []string   `json:"correctAnswers" bson:"correctAnswers"`
	EmojisCollected        []string   `json:"emojisCollected" bson:"emojisCollected"`
	BonusQuestionsAnswered int        `json:"bonusQuestionsAnswered" bson:"bonusQuestionsAnswered"`
	BonusQuestionsCorrect  int        `json:"bonusQuestionsCorrect" bson:"bonusQuestionsCorrect"`
	CreatedAt              time.Time  `json:"createdAt" bson:"createdAt"`
	EndedAt                *time.Time `json:"endedAt,omitempty" bson:"endedAt,omitempty"`
}

// ScorePatch is a partial update pushed to the result sink after an answer or
// bonus round resolves. Nil fields are left untouched.
type ScorePatch struct {
	Score              *int `json:"score,omitempty"`
	BonusAnsweredDelta int  `json:"bonusAnsweredDelta,omitempty"`
	BonusCorrectDelta  int  `json:"bonusCorrectDelta,omitempty"`
}

// FinalStats is the payload flushed when a session reaches game over.
type FinalStats struct {
	Score        int      `json:"score"`
	CorrectCount int      `json:"correctCount"`
	Emojis       []string `json:"emojis"`
}
