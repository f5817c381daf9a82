package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"scorebot/config"
	"scorebot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testConfig() *config.Config {
	return &config.Config{
		DailyVoteLimit:  300,
		UndoTimeLimit:   300,
		DefaultPageSize: 20,
		Environment:     "test",
	}
}

func newTestScoreService(users *MockUserRepository, channels *MockChannelRepository, scores *MockScoreRepository, gateway *MockPlatformGateway, now time.Time) *ScoreService {
	svc := NewScoreService(users, channels, scores, gateway, testConfig())
	svc.now = func() time.Time { return now }
	return svc
}

func TestScoreService_ApplyVote_NewUsers(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 5, 10, 14, 30, 0, 0, time.UTC)

	mockUsers := new(MockUserRepository)
	mockChannels := new(MockChannelRepository)
	mockScores := new(MockScoreRepository)
	mockGateway := new(MockPlatformGateway)

	svc := newTestScoreService(mockUsers, mockChannels, mockScores, mockGateway, now)

	// Neither user nor channel exists yet; both get lazy-created.
	mockUsers.On("GetByID", ctx, "U111AAA").Return(nil, nil)
	mockGateway.On("ResolveDisplayName", ctx, "U111AAA").Return("Jane Doe")
	mockUsers.On("Create", ctx, "U111AAA", "Jane Doe").Return(nil)

	mockUsers.On("GetByID", ctx, "U222BBB").Return(nil, nil)
	mockGateway.On("ResolveDisplayName", ctx, "U222BBB").Return("John Smith")
	mockUsers.On("Create", ctx, "U222BBB", "John Smith").Return(nil)

	mockChannels.On("GetByID", ctx, "C333CCC").Return(nil, nil)
	mockGateway.On("ResolveChannelName", ctx, "C333CCC").Return("general")
	mockChannels.On("Create", ctx, "C333CCC", "general").Return(nil)

	mockScores.On("Insert", ctx, "U111AAA", "U222BBB", "C333CCC", "great work", now).
		Return(&models.Score{ScoreID: "s1"}, nil)
	mockScores.On("CountByRecipient", ctx, "U111AAA", "C333CCC").Return(5, nil)

	score, err := svc.ApplyVote(ctx, "U111AAA", "U222BBB", "C333CCC", "great work")

	assert.NoError(t, err)
	assert.Equal(t, 5, score)

	mockUsers.AssertExpectations(t)
	mockChannels.AssertExpectations(t)
	mockScores.AssertExpectations(t)
	mockGateway.AssertExpectations(t)
}

func TestScoreService_ApplyVote_ExistingUsers(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 5, 10, 14, 30, 0, 0, time.UTC)

	mockUsers := new(MockUserRepository)
	mockChannels := new(MockChannelRepository)
	mockScores := new(MockScoreRepository)
	mockGateway := new(MockPlatformGateway)

	svc := newTestScoreService(mockUsers, mockChannels, mockScores, mockGateway, now)

	mockUsers.On("GetByID", ctx, "U111AAA").Return(&models.User{UserID: "U111AAA"}, nil)
	mockUsers.On("GetByID", ctx, "U222BBB").Return(&models.User{UserID: "U222BBB"}, nil)
	mockChannels.On("GetByID", ctx, "C333CCC").Return(&models.Channel{ChannelID: "C333CCC"}, nil)

	mockScores.On("Insert", ctx, "U111AAA", "U222BBB", "C333CCC", "", now).
		Return(&models.Score{ScoreID: "s1"}, nil)
	mockScores.On("CountByRecipient", ctx, "U111AAA", "C333CCC").Return(42, nil)

	score, err := svc.ApplyVote(ctx, "U111AAA", "U222BBB", "C333CCC", "")

	assert.NoError(t, err)
	assert.Equal(t, 42, score)

	// No lookups or creation should hit the platform.
	mockGateway.AssertNotCalled(t, "ResolveDisplayName")
	mockUsers.AssertNotCalled(t, "Create")
	mockUsers.AssertExpectations(t)
	mockScores.AssertExpectations(t)
}

func TestScoreService_ApplyVote_InsertError(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	mockUsers := new(MockUserRepository)
	mockChannels := new(MockChannelRepository)
	mockScores := new(MockScoreRepository)
	mockGateway := new(MockPlatformGateway)

	svc := newTestScoreService(mockUsers, mockChannels, mockScores, mockGateway, now)

	mockUsers.On("GetByID", ctx, mock.Anything).Return(&models.User{}, nil)
	mockChannels.On("GetByID", ctx, mock.Anything).Return(&models.Channel{}, nil)
	mockScores.On("Insert", ctx, "U111AAA", "U222BBB", "C333CCC", "", now).
		Return(nil, errors.New("connection lost"))

	_, err := svc.ApplyVote(ctx, "U111AAA", "U222BBB", "C333CCC", "")

	assert.Error(t, err)
	mockScores.AssertNotCalled(t, "CountByRecipient")
}

func TestScoreService_ReverseVote_WithinWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 5, 10, 14, 30, 0, 0, time.UTC)

	mockUsers := new(MockUserRepository)
	mockChannels := new(MockChannelRepository)
	mockScores := new(MockScoreRepository)
	mockGateway := new(MockPlatformGateway)

	svc := newTestScoreService(mockUsers, mockChannels, mockScores, mockGateway, now)

	since := now.Add(-5 * time.Minute)
	last := &models.Score{ScoreID: "s1", ToUserID: "U111AAA"}

	mockScores.On("LastVoteWithin", ctx, "U222BBB", "U111AAA", "C333CCC", since).Return(last, nil)
	mockScores.On("Delete", ctx, "s1").Return(nil)
	mockScores.On("CountByRecipient", ctx, "U111AAA", "C333CCC").Return(4, nil)

	score, err := svc.ReverseVote(ctx, "U222BBB", "U111AAA", "C333CCC")

	assert.NoError(t, err)
	assert.Equal(t, 4, score)
	mockScores.AssertExpectations(t)
}

func TestScoreService_ReverseVote_Expired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 5, 10, 14, 30, 0, 0, time.UTC)

	mockUsers := new(MockUserRepository)
	mockChannels := new(MockChannelRepository)
	mockScores := new(MockScoreRepository)
	mockGateway := new(MockPlatformGateway)

	svc := newTestScoreService(mockUsers, mockChannels, mockScores, mockGateway, now)

	mockScores.On("LastVoteWithin", ctx, "U222BBB", "U111AAA", "C333CCC", mock.Anything).Return(nil, nil)

	_, err := svc.ReverseVote(ctx, "U222BBB", "U111AAA", "C333CCC")

	assert.ErrorIs(t, err, ErrUndoExpired)
	mockScores.AssertNotCalled(t, "Delete")
}

func TestScoreService_CheckDailyLimit_UnderLimit(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 5, 10, 14, 30, 0, 0, time.UTC)

	mockScores := new(MockScoreRepository)
	svc := newTestScoreService(new(MockUserRepository), new(MockChannelRepository), mockScores, new(MockPlatformGateway), now)

	dayStart := time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)
	mockScores.On("CountByVoterSince", ctx, "U222BBB", dayStart).Return(299, nil)

	assert.NoError(t, svc.CheckDailyLimit(ctx, "U222BBB"))
}

func TestScoreService_CheckDailyLimit_AtLimit(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 5, 10, 14, 30, 0, 0, time.UTC)

	mockScores := new(MockScoreRepository)
	svc := newTestScoreService(new(MockUserRepository), new(MockChannelRepository), mockScores, new(MockPlatformGateway), now)

	mockScores.On("CountByVoterSince", ctx, "U222BBB", mock.Anything).Return(300, nil)

	assert.ErrorIs(t, svc.CheckDailyLimit(ctx, "U222BBB"), ErrRateLimited)
}

func TestScoreService_CheckDailyLimit_ResetsAtMidnight(t *testing.T) {
	ctx := context.Background()
	// Just past midnight: the count window starts today, not 24h ago.
	now := time.Date(2023, 5, 11, 0, 0, 5, 0, time.UTC)

	mockScores := new(MockScoreRepository)
	svc := newTestScoreService(new(MockUserRepository), new(MockChannelRepository), mockScores, new(MockPlatformGateway), now)

	dayStart := time.Date(2023, 5, 11, 0, 0, 0, 0, time.UTC)
	mockScores.On("CountByVoterSince", ctx, "U222BBB", dayStart).Return(0, nil)

	assert.NoError(t, svc.CheckDailyLimit(ctx, "U222BBB"))
	mockScores.AssertExpectations(t)
}
