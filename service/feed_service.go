package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"scorebot/config"
	"scorebot/models"
)

// FeedService answers the activity feed and per-user profile queries.
type FeedService struct {
	users  UserRepository
	scores ScoreRepository
	cfg    *config.Config
	now    func() time.Time
}

// NewFeedService creates a new feed service
func NewFeedService(users UserRepository, scores ScoreRepository, cfg *config.Config) *FeedService {
	return &FeedService{
		users:  users,
		scores: scores,
		cfg:    cfg,
		now:    time.Now,
	}
}

// GetFeed returns one page of the activity feed, newest first, plus the total
// matching count. When no window is supplied it defaults to the current
// calendar month.
func (s *FeedService) GetFeed(ctx context.Context, channelFilter string, start, end *time.Time, page, pageSize int, search string) (*models.FeedPage, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = s.cfg.DefaultPageSize
	}

	count, entries, err := s.scores.Feed(ctx, models.FeedQuery{
		Channels: ParseChannelFilter(channelFilter),
		Start:    from,
		End:      to,
		Search:   search,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}

	return &models.FeedPage{Count: count, Feed: entries}, nil
}

// GetProfile aggregates one user's rank, totals, per-voter breakdown, daily
// activity series and a paginated feed of their activity. A user with no
// recorded activity gets zero counts and empty series, not an error.
func (s *FeedService) GetProfile(ctx context.Context, username string, direction models.Direction, channelFilter string, page, pageSize int, search string) (*models.UserProfile, error) {
	user, err := s.users.GetByHandle(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}

	channels := ParseChannelFilter(channelFilter)

	// Rank against the all-time user leaderboard for the same channel
	// filter, so the profile rank always matches the displayed one.
	top, err := s.scores.TopScores(ctx, channels, time.Unix(0, 0), s.now())
	if err != nil {
		return nil, err
	}
	top = filterByType(top, ItemTypeUsers)
	userRank := 0
	ranks := competitionRanks(top)
	for i, sc := range top {
		if sc.Item == user.UserID {
			userRank = ranks[i]
			break
		}
	}

	received, err := s.scores.CountForUser(ctx, user.UserID, models.DirectionReceived, channels)
	if err != nil {
		return nil, err
	}
	given, err := s.scores.CountForUser(ctx, user.UserID, models.DirectionGiven, channels)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.scores.ReceivedBreakdown(ctx, user.UserID, channels)
	if err != nil {
		return nil, err
	}

	activity, err := s.mergedActivity(ctx, user.UserID, channels)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = s.cfg.DefaultPageSize
	}
	count, feed, err := s.scores.UserFeed(ctx, models.UserFeedQuery{
		UserID:    user.UserID,
		Direction: direction,
		Channels:  channels,
		Search:    search,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, err
	}

	return &models.UserProfile{
		Count:        count,
		Feed:         feed,
		NameSurname:  user.UserName,
		AllKarma:     received,
		KarmaGiven:   given,
		UserRank:     userRank,
		KarmaDivided: breakdown,
		Activity:     activity,
	}, nil
}

// mergedActivity builds the received-per-day and sent-per-day maps, unions
// their key sets (a day present in only one map gets zero for the other
// axis) and returns the merged series sorted ascending by date.
func (s *FeedService) mergedActivity(ctx context.Context, userID string, channels []string) ([]models.ActivityDay, error) {
	receivedDays, err := s.scores.ActivityByDay(ctx, userID, models.DirectionReceived, channels)
	if err != nil {
		return nil, err
	}
	sentDays, err := s.scores.ActivityByDay(ctx, userID, models.DirectionGiven, channels)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]*models.ActivityDay)
	for _, d := range receivedDays {
		merged[d.Date] = &models.ActivityDay{Date: d.Date, Received: d.Count}
	}
	for _, d := range sentDays {
		if day, ok := merged[d.Date]; ok {
			day.Sent = d.Count
		} else {
			merged[d.Date] = &models.ActivityDay{Date: d.Date, Sent: d.Count}
		}
	}

	activity := make([]models.ActivityDay, 0, len(merged))
	for _, day := range merged {
		activity = append(activity, *day)
	}
	sort.Slice(activity, func(i, j int) bool {
		return activity[i].Date < activity[j].Date
	})

	return activity, nil
}
