package game

import (
	"context"
	"errors"

	"globetrotter/internal/model"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusNotStarted     Status = "not_started"
	StatusAwaitingAnswer Status = "awaiting_answer"
	StatusAnswerRevealed Status = "answer_revealed"
	StatusBonusPending   Status = "bonus_pending"
	StatusBonusRevealed  Status = "bonus_revealed"
	StatusGameOver       Status = "game_over"
)

var (
	ErrNoPlayer        = errors.New("session has no player identity")
	ErrSessionNotFound = errors.New("session not found")
)

// Gameplay constants. The speed bonus is evaluated against the countdown
// value at the moment the answer is accepted.
const (
	QuestionLimit = 10
	TimerSeconds  = 30
	OptionCount   = 4

	BasePoints     = 100
	FastBonus      = 50 // remaining >= 20s
	MediumBonus    = 25 // remaining >= 10s
	WrongPenalty   = 20
	BonusPoints    = 200
	BonusInterval  = 5
	EmojiSeedLimit = 5
)

// Question is the active destination plus its shuffled visible options.
type Question struct {
	Destination model.Destination `json:"destination"`
	Options     []string          `json:"options"`
}

// BonusState is the bonus-round sub-state, present only while the session is
// in BonusPending or BonusRevealed.
type BonusState struct {
	Question      model.BonusQuestion `json:"question"`
	SelectedIndex int                 `json:"selectedIndex"` // -1 until answered
	Correct       bool                `json:"correct"`
}

// Snapshot is a read-only copy of every observable session field.
type Snapshot struct {
	ID              string      `json:"id"`
	GameID          string      `json:"gameId"`
	Player          string      `json:"player"`
	Status          Status      `json:"status"`
	Score           int         `json:"score"`
	QuestionIndex   int         `json:"questionIndex"`
	CorrectCount    int         `json:"correctCount"`
	CollectedEmojis []string    `json:"collectedEmojis"`
	Timer           int         `json:"timer"`
	TimerBonus      int         `json:"timerBonus"`
	Question        *Question   `json:"question,omitempty"`
	SelectedAnswer  string      `json:"selectedAnswer,omitempty"`
	AnswerCorrect   bool        `json:"answerCorrect"`
	Bonus           *BonusState `json:"bonus,omitempty"`
}

// ContentProvider supplies destinations and bonus questions. Either call may
// fail or come back short; the session recovers with bundled fallback data.
type ContentProvider interface {
	FetchDestinations(ctx context.Context, n int) ([]model.Destination, error)
	FetchBonusQuestion(ctx context.Context, emojiSet []string) (*model.BonusQuestion, error)
}

// ResultSink receives best-effort persistence calls. The session dispatches
// them after the local transition commits and only logs failures; a sink
// error never rolls back session state.
type ResultSink interface {
	RecordAnswer(ctx context.Context, gameID string, dest model.Destination) error
	UpdateScore(ctx context.Context, gameID string, patch model.ScorePatch) error
	FinalizeSession(ctx context.Context, gameID string, stats model.FinalStats) error
}

// Notifier pushes session events to the presentation layer. Optional.
type Notifier interface {
	SessionEvent(sessionID string, event string, payload interface{})
}

// Session event names pushed through the Notifier.
const (
	EventQuestion       = "question"
	EventTimerTick      = "timer_tick"
	EventAnswerRevealed = "answer_revealed"
	EventBonusQuestion  = "bonus_question"
	EventBonusRevealed  = "bonus_revealed"
	EventGameOver       = "game_over"
)
