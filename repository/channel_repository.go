package repository

import (
	"context"
	"fmt"

	"scorebot/database"
	"scorebot/models"

	"github.com/jackc/pgx/v5"
)

// ChannelRepository implements the service.ChannelRepository interface
type ChannelRepository struct {
	q queryable
}

// NewChannelRepository creates a new channel repository
func NewChannelRepository(db *database.DB) *ChannelRepository {
	return &ChannelRepository{q: db.Pool}
}

// GetByID retrieves a channel by its Slack channel ID
func (r *ChannelRepository) GetByID(ctx context.Context, channelID string) (*models.Channel, error) {
	query := `
		SELECT channel_id, channel_name, created_at
		FROM channels
		WHERE channel_id = $1
	`

	var channel models.Channel
	err := r.q.QueryRow(ctx, query, channelID).Scan(
		&channel.ChannelID,
		&channel.ChannelName,
		&channel.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get channel %s: %w", channelID, err)
	}

	return &channel, nil
}

// Create inserts a new channel, ignoring the conflict when a concurrent vote
// already created it.
func (r *ChannelRepository) Create(ctx context.Context, channelID, channelName string) error {
	query := `
		INSERT INTO channels (channel_id, channel_name)
		VALUES ($1, $2)
		ON CONFLICT (channel_id) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, query, channelID, channelName); err != nil {
		return fmt.Errorf("failed to create channel %s: %w", channelID, err)
	}

	return nil
}

// GetAll returns all channels votes have been recorded in
func (r *ChannelRepository) GetAll(ctx context.Context) ([]models.Channel, error) {
	query := `
		SELECT channel_id, channel_name, created_at
		FROM channels
		ORDER BY channel_name
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get channels: %w", err)
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		var channel models.Channel
		if err := rows.Scan(&channel.ChannelID, &channel.ChannelName, &channel.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, channel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate channels: %w", err)
	}

	return channels, nil
}
