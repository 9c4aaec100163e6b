package model

import "time"

type ChallengeStatus string

const (
	ChallengeActive  ChallengeStatus = "active"
	ChallengeExpired ChallengeStatus = "expired"
)

// ChallengeParticipant is one entrant's standing within a challenge.
type ChallengeParticipant struct {
	Username string `json:"username" bson:"username"`
	Score    int    `json:"score" bson:"score"`
}

// Challenge is a shareable score-beating invite. The code goes into the
// challenge link; Emojis seeds the challenged game with the creator's
// trailing collection.
type Challenge struct {
	ID           string                 `json:"id" bson:"_id,omitempty"`
	Code         string                 `json:"code" bson:"code"`
	Creator      string                 `json:"creator" bson:"creator"`
	Status       ChallengeStatus        `json:"status" bson:"status"`
	Emojis       []string               `json:"emojis" bson:"emojis"`
	Participants []ChallengeParticipant `json:"participants" bson:"participants"`
	Expires      time.Time              `json:"expires" bson:"expires"`
	CreatedAt    time.Time              `json:"createdAt" bson:"createdAt"`
}
