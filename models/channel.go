package models

import (
	"time"
)

// Channel represents a Slack channel in which votes have been recorded.
// Created lazily on the first vote seen in the channel, never deleted.
type Channel struct {
	ChannelID   string    `db:"channel_id" json:"channel_id"`
	ChannelName string    `db:"channel_name" json:"channel_name"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
}
