package service

import (
	"context"
	"time"

	"scorebot/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by their Slack user ID, or nil if unknown
	GetByID(ctx context.Context, userID string) (*models.User, error)

	// GetByHandle retrieves a user by their derived lowercase handle
	GetByHandle(ctx context.Context, handle string) (*models.User, error)

	// Create inserts a new user, ignoring duplicate-key conflicts
	Create(ctx context.Context, userID, userName string) error
}

// ChannelRepository defines the interface for channel data access
type ChannelRepository interface {
	// GetByID retrieves a channel by its Slack channel ID, or nil if unknown
	GetByID(ctx context.Context, channelID string) (*models.Channel, error)

	// Create inserts a new channel, ignoring duplicate-key conflicts
	Create(ctx context.Context, channelID, channelName string) error

	// GetAll returns every channel votes have been recorded in
	GetAll(ctx context.Context) ([]models.Channel, error)
}

// ScoreRepository defines the interface for score event data access
type ScoreRepository interface {
	// Insert records one point transfer
	Insert(ctx context.Context, toUserID, fromUserID, channelID, description string, timestamp time.Time) (*models.Score, error)

	// CountByRecipient returns the recipient's derived score in one channel
	CountByRecipient(ctx context.Context, toUserID, channelID string) (int, error)

	// CountByVoterSince returns how many votes a voter has cast since a time
	CountByVoterSince(ctx context.Context, fromUserID string, since time.Time) (int, error)

	// CountForUser returns how many score rows match one user's activity
	CountForUser(ctx context.Context, userID string, direction models.Direction, channels []string) (int, error)

	// TopScores groups scores by recipient within a window and channel filter
	TopScores(ctx context.Context, channels []string, start, end time.Time) ([]models.ScoreCount, error)

	// LastVoteWithin returns the voter's most recent qualifying score, or nil
	LastVoteWithin(ctx context.Context, fromUserID, toUserID, channelID string, since time.Time) (*models.Score, error)

	// Delete removes one score row
	Delete(ctx context.Context, scoreID string) error

	// Feed returns one page of the activity feed plus the total match count
	Feed(ctx context.Context, q models.FeedQuery) (int, []models.FeedEntry, error)

	// UserFeed returns one user's activity plus the total match count
	UserFeed(ctx context.Context, q models.UserFeedQuery) (int, []models.FeedEntry, error)

	// ActivityByDay buckets one user's activity per calendar day
	ActivityByDay(ctx context.Context, userID string, direction models.Direction, channels []string) ([]models.DayCount, error)

	// ReceivedBreakdown groups received points by voter display name
	ReceivedBreakdown(ctx context.Context, userID string, channels []string) ([]models.VoterBreakdown, error)
}

// PlatformGateway is the narrow contract with the messaging platform. Both
// lookups fall back to "(unknown)" rather than failing.
type PlatformGateway interface {
	ResolveDisplayName(ctx context.Context, userID string) string
	ResolveChannelName(ctx context.Context, channelID string) string
}
