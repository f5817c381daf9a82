package service

import (
	"context"
	"time"

	"scorebot/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, userID, userName string) error {
	args := m.Called(ctx, userID, userName)
	return args.Error(0)
}

// MockChannelRepository is a mock implementation of ChannelRepository
type MockChannelRepository struct {
	mock.Mock
}

func (m *MockChannelRepository) GetByID(ctx context.Context, channelID string) (*models.Channel, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Channel), args.Error(1)
}

func (m *MockChannelRepository) Create(ctx context.Context, channelID, channelName string) error {
	args := m.Called(ctx, channelID, channelName)
	return args.Error(0)
}

func (m *MockChannelRepository) GetAll(ctx context.Context) ([]models.Channel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Channel), args.Error(1)
}

// MockScoreRepository is a mock implementation of ScoreRepository
type MockScoreRepository struct {
	mock.Mock
}

func (m *MockScoreRepository) Insert(ctx context.Context, toUserID, fromUserID, channelID, description string, timestamp time.Time) (*models.Score, error) {
	args := m.Called(ctx, toUserID, fromUserID, channelID, description, timestamp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Score), args.Error(1)
}

func (m *MockScoreRepository) CountByRecipient(ctx context.Context, toUserID, channelID string) (int, error) {
	args := m.Called(ctx, toUserID, channelID)
	return args.Int(0), args.Error(1)
}

func (m *MockScoreRepository) CountByVoterSince(ctx context.Context, fromUserID string, since time.Time) (int, error) {
	args := m.Called(ctx, fromUserID, since)
	return args.Int(0), args.Error(1)
}

func (m *MockScoreRepository) CountForUser(ctx context.Context, userID string, direction models.Direction, channels []string) (int, error) {
	args := m.Called(ctx, userID, direction, channels)
	return args.Int(0), args.Error(1)
}

func (m *MockScoreRepository) TopScores(ctx context.Context, channels []string, start, end time.Time) ([]models.ScoreCount, error) {
	args := m.Called(ctx, channels, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ScoreCount), args.Error(1)
}

func (m *MockScoreRepository) LastVoteWithin(ctx context.Context, fromUserID, toUserID, channelID string, since time.Time) (*models.Score, error) {
	args := m.Called(ctx, fromUserID, toUserID, channelID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Score), args.Error(1)
}

func (m *MockScoreRepository) Delete(ctx context.Context, scoreID string) error {
	args := m.Called(ctx, scoreID)
	return args.Error(0)
}

func (m *MockScoreRepository) Feed(ctx context.Context, q models.FeedQuery) (int, []models.FeedEntry, error) {
	args := m.Called(ctx, q)
	var entries []models.FeedEntry
	if args.Get(1) != nil {
		entries = args.Get(1).([]models.FeedEntry)
	}
	return args.Int(0), entries, args.Error(2)
}

func (m *MockScoreRepository) UserFeed(ctx context.Context, q models.UserFeedQuery) (int, []models.FeedEntry, error) {
	args := m.Called(ctx, q)
	var entries []models.FeedEntry
	if args.Get(1) != nil {
		entries = args.Get(1).([]models.FeedEntry)
	}
	return args.Int(0), entries, args.Error(2)
}

func (m *MockScoreRepository) ActivityByDay(ctx context.Context, userID string, direction models.Direction, channels []string) ([]models.DayCount, error) {
	args := m.Called(ctx, userID, direction, channels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DayCount), args.Error(1)
}

func (m *MockScoreRepository) ReceivedBreakdown(ctx context.Context, userID string, channels []string) ([]models.VoterBreakdown, error) {
	args := m.Called(ctx, userID, channels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VoterBreakdown), args.Error(1)
}

// MockPlatformGateway is a mock implementation of PlatformGateway
type MockPlatformGateway struct {
	mock.Mock
}

func (m *MockPlatformGateway) ResolveDisplayName(ctx context.Context, userID string) string {
	args := m.Called(ctx, userID)
	return args.String(0)
}

func (m *MockPlatformGateway) ResolveChannelName(ctx context.Context, channelID string) string {
	args := m.Called(ctx, channelID)
	return args.String(0)
}
