package service

import (
	"context"
	"fmt"
	"time"

	"scorebot/config"

	log "github.com/sirupsen/logrus"
)

// ScoreService applies and reverses votes, guaranteeing that every score row
// references an existing user and channel by lazy-creating them first. Totals
// are always derived by counting rows, never kept as running counters.
type ScoreService struct {
	users    UserRepository
	channels ChannelRepository
	scores   ScoreRepository
	gateway  PlatformGateway
	cfg      *config.Config
	now      func() time.Time
}

// NewScoreService creates a new score service
func NewScoreService(users UserRepository, channels ChannelRepository, scores ScoreRepository, gateway PlatformGateway, cfg *config.Config) *ScoreService {
	return &ScoreService{
		users:    users,
		channels: channels,
		scores:   scores,
		gateway:  gateway,
		cfg:      cfg,
		now:      time.Now,
	}
}

// ApplyVote records one point from voter to recipient in a channel and
// returns the recipient's new derived score there. The self-vote case is
// rejected upstream and must never reach this method.
func (s *ScoreService) ApplyVote(ctx context.Context, toUserID, fromUserID, channelID, description string) (int, error) {
	if err := s.ensureUser(ctx, toUserID); err != nil {
		return 0, err
	}
	if err := s.ensureUser(ctx, fromUserID); err != nil {
		return 0, err
	}
	if err := s.ensureChannel(ctx, channelID); err != nil {
		return 0, err
	}

	if _, err := s.scores.Insert(ctx, toUserID, fromUserID, channelID, description, s.now()); err != nil {
		return 0, err
	}

	newScore, err := s.scores.CountByRecipient(ctx, toUserID, channelID)
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{"user": toUserID, "channel": channelID, "score": newScore}).Info("Vote recorded")
	return newScore, nil
}

// ReverseVote deletes the voter's most recent vote for the recipient in the
// channel, provided it was cast within the undo window, and returns the
// recipient's recomputed score. Returns ErrUndoExpired when no vote falls
// inside the window.
func (s *ScoreService) ReverseVote(ctx context.Context, fromUserID, toUserID, channelID string) (int, error) {
	since := s.now().Add(-s.cfg.UndoWindow())

	last, err := s.scores.LastVoteWithin(ctx, fromUserID, toUserID, channelID, since)
	if err != nil {
		return 0, err
	}
	if last == nil {
		return 0, ErrUndoExpired
	}

	if err := s.scores.Delete(ctx, last.ScoreID); err != nil {
		return 0, err
	}

	newScore, err := s.scores.CountByRecipient(ctx, toUserID, channelID)
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{"user": toUserID, "channel": channelID, "score": newScore}).Info("Vote reversed")
	return newScore, nil
}

// CheckDailyLimit reports whether the voter may cast another point today.
// "Today" starts at local server midnight. The check is advisory: it runs
// before the vote is applied and is not transactional with it, so two
// concurrent votes near the ceiling can both pass. Accepted soft limit.
func (s *ScoreService) CheckDailyLimit(ctx context.Context, fromUserID string) error {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	count, err := s.scores.CountByVoterSince(ctx, fromUserID, dayStart)
	if err != nil {
		return err
	}

	if count+1 > s.cfg.DailyVoteLimit {
		return ErrRateLimited
	}
	return nil
}

func (s *ScoreService) ensureUser(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user %s: %w", userID, err)
	}
	if user != nil {
		return nil
	}

	name := s.gateway.ResolveDisplayName(ctx, userID)
	if err := s.users.Create(ctx, userID, name); err != nil {
		return fmt.Errorf("failed to create user %s: %w", userID, err)
	}
	return nil
}

func (s *ScoreService) ensureChannel(ctx context.Context, channelID string) error {
	channel, err := s.channels.GetByID(ctx, channelID)
	if err != nil {
		return fmt.Errorf("failed to check channel %s: %w", channelID, err)
	}
	if channel != nil {
		return nil
	}

	name := s.gateway.ResolveChannelName(ctx, channelID)
	if err := s.channels.Create(ctx, channelID, name); err != nil {
		return fmt.Errorf("failed to create channel %s: %w", channelID, err)
	}
	return nil
}
