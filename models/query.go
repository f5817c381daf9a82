package models

import (
	"time"
)

// Direction selects which side of a user's activity a profile query covers.
// The values are the wire values used by the web frontend.
type Direction string

const (
	// DirectionReceived selects votes where the user is the recipient.
	DirectionReceived Direction = "from"
	// DirectionGiven selects votes the user cast.
	DirectionGiven Direction = "to"
	// DirectionAll selects both.
	DirectionAll Direction = "all"
)

// FeedQuery filters the activity feed. A nil Channels slice means all
// channels; Search is a case-insensitive substring match on the voter's
// display name.
type FeedQuery struct {
	Channels []string
	Start    time.Time
	End      time.Time
	Search   string
	Page     int
	PageSize int
}

// UserFeedQuery filters one user's given/received activity. PageSize 0 means
// no pagination.
type UserFeedQuery struct {
	UserID    string
	Direction Direction
	Channels  []string
	Search    string
	Page      int
	PageSize  int
}
