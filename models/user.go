package models

import (
	"strings"
	"time"
)

// User represents a Slack user known to the bot. Users are created lazily the
// first time they vote or receive a vote, and are never deleted.
type User struct {
	UserID      string     `db:"user_id"`
	UserName    string     `db:"user_name"`
	UserHandle  string     `db:"user_handle"`
	BannedUntil *time.Time `db:"banned_until"`
	CreatedAt   time.Time  `db:"created_at"`
}

// Handle derives the lowercase handle used for profile lookups from a display
// name: spaces stripped, everything lowercased.
func Handle(displayName string) string {
	return strings.ToLower(strings.ReplaceAll(displayName, " ", ""))
}
