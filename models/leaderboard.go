package models

import (
	"time"
)

// ScoreCount is one aggregated leaderboard row: an item (user ID or free-text
// thing) and its derived score, as grouped and counted by the store.
type ScoreCount struct {
	Item  string `db:"item" json:"item"`
	Score int    `db:"score" json:"score"`
}

// RankedItem is the structured form of one ranked leaderboard entry, for
// programmatic consumers. Score carries the correct singular/plural noun.
type RankedItem struct {
	Rank   int    `json:"rank"`
	Item   string `json:"item"`
	Score  string `json:"score"`
	ItemID string `json:"item_id"`
}

// FeedEntry is one row of the activity feed, joined to display names.
type FeedEntry struct {
	Timestamp   time.Time `db:"timestamp" json:"timestamp"`
	ToUser      string    `db:"to_user" json:"toUser"`
	FromUser    string    `db:"from_user" json:"fromUser"`
	ChannelName string    `db:"channel_name" json:"channel_name"`
	Description string    `db:"description" json:"description"`
}

// FeedPage is one page of feed rows plus the total number of matching rows,
// so consumers can render a page count.
type FeedPage struct {
	Count int         `json:"count"`
	Feed  []FeedEntry `json:"feed"`
}

// DayCount is the number of score events on one calendar day (YYYY-MM-DD).
type DayCount struct {
	Date  string `db:"day"`
	Count int    `db:"count"`
}

// ActivityDay merges received and sent counts for one calendar day.
type ActivityDay struct {
	Date     string `json:"date"`
	Received int    `json:"received"`
	Sent     int    `json:"sent"`
}

// VoterBreakdown is the number of points one voter has given to the profiled
// user.
type VoterBreakdown struct {
	Name  string `db:"name" json:"name"`
	Value int    `db:"value" json:"value"`
}

// UserProfile aggregates everything shown on a user's profile page.
type UserProfile struct {
	Count        int              `json:"count"`
	Feed         []FeedEntry      `json:"feed"`
	NameSurname  string           `json:"nameSurname"`
	AllKarma     int              `json:"allKarma"`
	KarmaGiven   int              `json:"karmaGiven"`
	UserRank     int              `json:"userRank"`
	KarmaDivided []VoterBreakdown `json:"karmaDivided"`
	Activity     []ActivityDay    `json:"activity"`
}
