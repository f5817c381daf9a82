package models

import (
	"time"
)

// Score is one immutable point transfer. A user's total is always derived by
// counting these rows; reversal deletes the row rather than writing a
// negative one.
type Score struct {
	ScoreID     string    `db:"score_id"`
	Timestamp   time.Time `db:"timestamp"`
	ToUserID    string    `db:"to_user_id"`
	FromUserID  string    `db:"from_user_id"`
	ChannelID   string    `db:"channel_id"`
	Description string    `db:"description"`
}
