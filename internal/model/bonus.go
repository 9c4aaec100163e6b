package model

// BonusQuestion is an interstitial multiple-choice question themed around
// recently collected emojis. CorrectIndex addresses Options (always 4 wide).
type BonusQuestion struct {
	ID           string   `json:"id,omitempty" bson:"_id,omitempty"`
	Question     string   `json:"question" bson:"question"`
	Options      []string `json:"options" bson:"options"`
	CorrectIndex int      `json:"correctIndex" bson:"correctIndex"`
	EmojiSet     []string `json:"emojiSet,omitempty" bson:"emojiSet,omitempty"`
}

// Valid reports whether the question is complete enough to show a player.
func (q *BonusQuestion) Valid() bool {
	return q != nil && q.Question != "" && len(q.Options) == 4 &&
		q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options)
}
