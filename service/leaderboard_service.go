package service

import (
	"context"
	"strings"
	"time"

	"scorebot/models"
)

// LeaderboardService answers the top-scores and channel-listing queries.
type LeaderboardService struct {
	scores   ScoreRepository
	channels ChannelRepository
	gateway  PlatformGateway
	now      func() time.Time
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(scores ScoreRepository, channels ChannelRepository, gateway PlatformGateway) *LeaderboardService {
	return &LeaderboardService{
		scores:   scores,
		channels: channels,
		gateway:  gateway,
		now:      time.Now,
	}
}

// ParseChannelFilter turns the external channel filter value ("all", one
// channel ID, or a comma-separated set) into a slice of channel IDs, or nil
// for all channels.
func ParseChannelFilter(filter string) []string {
	if filter == "" || filter == "all" {
		return nil
	}

	var channels []string
	for _, c := range strings.Split(filter, ",") {
		if c = strings.TrimSpace(c); c != "" {
			channels = append(channels, c)
		}
	}
	if len(channels) == 0 {
		return nil
	}
	return channels
}

// GetTopScores returns per-recipient counts within the window and channel
// filter, highest first. The window defaults to all time.
func (s *LeaderboardService) GetTopScores(ctx context.Context, channelFilter string, start, end *time.Time) ([]models.ScoreCount, error) {
	from := time.Unix(0, 0)
	to := s.now()
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}

	return s.scores.TopScores(ctx, ParseChannelFilter(channelFilter), from, to)
}

// GetRanked returns the leaderboard in structured form for web consumers.
func (s *LeaderboardService) GetRanked(ctx context.Context, channelFilter string, start, end *time.Time, itemType ItemType) ([]models.RankedItem, error) {
	scores, err := s.GetTopScores(ctx, channelFilter, start, end)
	if err != nil {
		return nil, err
	}
	return RankItems(ctx, scores, itemType, s.gateway), nil
}

// GetChannels returns every channel votes have been recorded in.
func (s *LeaderboardService) GetChannels(ctx context.Context) ([]models.Channel, error) {
	return s.channels.GetAll(ctx)
}
