package bot

import (
	"context"
	"strings"
	"testing"
	"time"

	"scorebot/config"
	"scorebot/models"
	"scorebot/service"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type botFixture struct {
	bot      *Bot
	gateway  *MockGateway
	users    *service.MockUserRepository
	channels *service.MockChannelRepository
	scores   *service.MockScoreRepository
}

func newBotFixture() *botFixture {
	cfg := &config.Config{
		DailyVoteLimit:  300,
		UndoTimeLimit:   300,
		DefaultPageSize: 20,
		Environment:     "test",
	}

	gateway := new(MockGateway)
	users := new(service.MockUserRepository)
	channels := new(service.MockChannelRepository)
	scores := new(service.MockScoreRepository)

	scoreService := service.NewScoreService(users, channels, scores, gateway, cfg)
	leaderboardService := service.NewLeaderboardService(scores, channels, gateway)

	return &botFixture{
		bot:      New(cfg, gateway, scoreService, leaderboardService),
		gateway:  gateway,
		users:    users,
		channels: channels,
		scores:   scores,
	}
}

func TestHandleEvent_DropsMalformedEvents(t *testing.T) {
	ctx := context.Background()
	f := newBotFixture()

	assert.NoError(t, f.bot.HandleEvent(ctx, Event{}))
	assert.NoError(t, f.bot.HandleEvent(ctx, Event{Type: "message", SubType: "message_changed", Text: "<@U111AAA> ++"}))
	assert.NoError(t, f.bot.HandleEvent(ctx, Event{Type: "message", Text: "   "}))
	assert.NoError(t, f.bot.HandleEvent(ctx, Event{Type: "reaction_added", Text: "hello"}))

	f.gateway.AssertNotCalled(t, "SendEphemeral")
	f.scores.AssertNotCalled(t, "Insert")
}

func TestHandleEvent_MessageWithoutDirective(t *testing.T) {
	ctx := context.Background()
	f := newBotFixture()

	err := f.bot.HandleEvent(ctx, Event{Type: "message", Text: "good morning all", User: "U222BBB", Channel: "C333CCC"})

	assert.NoError(t, err)
	f.gateway.AssertNotCalled(t, "SendEphemeral")
}

func TestHandleEvent_PlusVote(t *testing.T) {
	ctx := context.Background()
	f := newBotFixture()

	f.gateway.On("IsBot", ctx, "U111AAA").Return(false)
	f.scores.On("CountByVoterSince", ctx, "U222BBB", mock.Anything).Return(0, nil)

	f.users.On("GetByID", ctx, "U111AAA").Return(&models.User{UserID: "U111AAA"}, nil)
	f.users.On("GetByID", ctx, "U222BBB").Return(&models.User{UserID: "U222BBB"}, nil)
	f.channels.On("GetByID", ctx, "C333CCC").Return(&models.Channel{ChannelID: "C333CCC"}, nil)

	f.scores.On("Insert", ctx, "U111AAA", "U222BBB", "C333CCC", "nice job", mock.Anything).
		Return(&models.Score{ScoreID: "s1"}, nil)
	f.scores.On("CountByRecipient", ctx, "U111AAA", "C333CCC").Return(7, nil)

	f.gateway.On("SendEphemeral", ctx, "C333CCC", "U222BBB", mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "*<@U111AAA>* is now on 7 points.")
	})).Return(nil)

	err := f.bot.HandleEvent(ctx, Event{
		Type:    "message",
		Text:    "<@U111AAA> ++ nice job",
		User:    "U222BBB",
		Channel: "C333CCC",
	})

	assert.NoError(t, err)
	f.scores.AssertExpectations(t)
	f.gateway.AssertExpectations(t)
}

func TestHandleEvent_MinusVoteIsIgnored(t *testing.T) {
	ctx := context.Background()
	f := newBotFixture()

	f.gateway.On("IsBot", ctx, "U111AAA").Return(false)

	err := f.bot.HandleEvent(ctx, Event{
		Type:    "message",
		Text:    "<@U111AAA> --",
		User:    "U222BBB",
		Channel: "C333CCC",
	})

	assert.NoError(t, err)
	f.scores.AssertNotCalled(t, "Insert")
	f.gateway.AssertNotCalled(t, "SendEphemeral")
}

func TestHandleEvent_RateLimited(t *testing.T) {
	ctx := context.Background()
	f := newBotFixture()

	f.gateway.On("IsBot", ctx, "U111AAA").Return(false)
	f.scores.On("CountByVoterSince", ctx, "U222BBB", mock.Anything).Return(300, nil)
	f.gateway.On("SendEphemeral", ctx, "C333CCC", "U222BBB", "You have reached your daily voting limit!").Return(nil)

	err := f.bot.HandleEvent(ctx, Event{
		Type:    "message",
		Text:    "<@U111AAA> ++",
		User:    "U222BBB",
		Channel: "C333CCC",
	})

	assert.NoError(t, err)
	f.scores.AssertNotCalled(t, "Insert")
	f.gateway.AssertExpectations(t)
}

func TestHandleEvent_SelfPlus(t *testing.T) {
	ctx := context.Background()
	f := newBotFixture()

	f.gateway.On("IsBot", ctx, "U222BBB").Return(false)
	f.gateway.On("SendEphemeral", ctx, "C333CCC", "U222BBB", mock.MatchedBy(func(text string) bool {
		return strings.HasPrefix(text, "<@U222BBB> ")
	})).Return(nil)

	err := f.bot.HandleEvent(ctx, Event{
		Type:    "message",
		Text:    "<@U222BBB> ++ me me me",
		User:    "U222BBB",
		Channel: "C333CCC",
	})

	assert.NoError(t, err)
	f.scores.AssertNotCalled(t, "Insert")
	f.gateway.AssertExpectations(t)
}

func TestHandleEvent_UndoWithNothingTracked(t *testing.T) {
	ctx := context.Background()
	f := newBotFixture()

	f.gateway.On("IsBot", ctx, "UBOT123").Return(true)
	f.gateway.On("SendEphemeral", ctx, "C333CCC", "U222BBB", "<@U222BBB> there is nothing to undo!").Return(nil)

	err := f.bot.HandleEvent(ctx, Event{
		Type:    "message",
		Text:    "<@UBOT123> undo",
		User:    "U222BBB",
		Channel: "C333CCC",
	})

	assert.NoError(t, err)
	f.gateway.AssertExpectations(t)
}

func TestHandleEvent_UndoAfterVote(t *testing.T) {
	ctx := context.Background()
	f := newBotFixture()

	// Cast a vote first so the ledger tracks it.
	f.gateway.On("IsBot", ctx, "U111AAA").Return(false)
	f.scores.On("CountByVoterSince", ctx, "U222BBB", mock.Anything).Return(0, nil)
	f.users.On("GetByID", ctx, mock.Anything).Return(&models.User{}, nil)
	f.channels.On("GetByID", ctx, "C333CCC").Return(&models.Channel{}, nil)
	f.scores.On("Insert", ctx, "U111AAA", "U222BBB", "C333CCC", "", mock.Anything).
		Return(&models.Score{ScoreID: "s1"}, nil)
	f.scores.On("CountByRecipient", ctx, "U111AAA", "C333CCC").Return(1, nil).Once()
	f.gateway.On("SendEphemeral", ctx, "C333CCC", "U222BBB", mock.Anything).Return(nil)

	err := f.bot.HandleEvent(ctx, Event{
		Type: "message", Text: "<@U111AAA> ++", User: "U222BBB", Channel: "C333CCC",
	})
	assert.NoError(t, err)

	// Then undo it.
	f.gateway.On("IsBot", ctx, "UBOT123").Return(true)
	f.scores.On("LastVoteWithin", ctx, "U222BBB", "U111AAA", "C333CCC", mock.Anything).
		Return(&models.Score{ScoreID: "s1", ToUserID: "U111AAA"}, nil)
	f.scores.On("Delete", ctx, "s1").Return(nil)
	f.scores.On("CountByRecipient", ctx, "U111AAA", "C333CCC").Return(0, nil).Once()

	err = f.bot.HandleEvent(ctx, Event{
		Type: "message", Text: "<@UBOT123> undo", User: "U222BBB", Channel: "C333CCC",
	})
	assert.NoError(t, err)

	f.scores.AssertExpectations(t)

	// A second undo finds the ledger empty.
	err = f.bot.HandleEvent(ctx, Event{
		Type: "message", Text: "<@UBOT123> undo", User: "U222BBB", Channel: "C333CCC",
	})
	assert.NoError(t, err)
	f.scores.AssertNumberOfCalls(t, "Delete", 1)
}

func TestHandleEvent_UndoExpired(t *testing.T) {
	ctx := context.Background()
	f := newBotFixture()

	// Vote, then have the window check come back empty.
	f.gateway.On("IsBot", ctx, "U111AAA").Return(false)
	f.scores.On("CountByVoterSince", ctx, "U222BBB", mock.Anything).Return(0, nil)
	f.users.On("GetByID", ctx, mock.Anything).Return(&models.User{}, nil)
	f.channels.On("GetByID", ctx, "C333CCC").Return(&models.Channel{}, nil)
	f.scores.On("Insert", ctx, "U111AAA", "U222BBB", "C333CCC", "", mock.Anything).
		Return(&models.Score{ScoreID: "s1"}, nil)
	f.scores.On("CountByRecipient", ctx, "U111AAA", "C333CCC").Return(1, nil)
	f.gateway.On("SendEphemeral", ctx, "C333CCC", "U222BBB", mock.Anything).Return(nil)

	err := f.bot.HandleEvent(ctx, Event{
		Type: "message", Text: "<@U111AAA> ++", User: "U222BBB", Channel: "C333CCC",
	})
	assert.NoError(t, err)

	f.gateway.On("IsBot", ctx, "UBOT123").Return(true)
	f.scores.On("LastVoteWithin", ctx, "U222BBB", "U111AAA", "C333CCC", mock.Anything).Return(nil, nil)
	f.gateway.On("SendEphemeral", ctx, "C333CCC", "U222BBB",
		"You can undo only for duration of 5 minutes after up voting!").Return(nil)

	err = f.bot.HandleEvent(ctx, Event{
		Type: "message", Text: "<@UBOT123> undo", User: "U222BBB", Channel: "C333CCC",
	})
	assert.NoError(t, err)
	f.scores.AssertNotCalled(t, "Delete")
}

func TestHandleEvent_AppMentionHelp(t *testing.T) {
	ctx := context.Background()
	f := newBotFixture()

	f.gateway.On("ResolveDisplayName", ctx, "UBOT123").Return("plusplus")
	f.gateway.On("SendEphemeral", ctx, "C333CCC", "U222BBB", mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "here's what I can do")
	})).Return(nil)

	err := f.bot.HandleEvent(ctx, Event{
		Type:    "app_mention",
		Text:    "<@UBOT123> help",
		User:    "U222BBB",
		Channel: "C333CCC",
	})

	assert.NoError(t, err)
	f.gateway.AssertExpectations(t)
}

func TestHandleEvent_AppMentionLeaderboard(t *testing.T) {
	ctx := context.Background()
	f := newBotFixture()
	f.bot.now = func() time.Time { return time.Date(2023, 5, 10, 14, 0, 0, 0, time.UTC) }

	// The chat leaderboard covers the current calendar month.
	monthStart := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	f.scores.On("TopScores", ctx, []string{"C333CCC"}, monthStart, mock.Anything).
		Return([]models.ScoreCount{
			{Item: "U111AAA", Score: 3},
			{Item: "U444DDD", Score: 1},
		}, nil)
	f.gateway.On("ResolveChannelName", ctx, "C333CCC").Return("general")
	f.gateway.On("SendEphemeralAttachment", ctx, "C333CCC", "U222BBB", mock.MatchedBy(func(a slack.Attachment) bool {
		return strings.Contains(a.Text, "<#C333CCC|general>") && a.Color == "good" &&
			strings.Contains(a.Fields[0].Value, "1. <@U111AAA> [3 points] :muscle:")
	})).Return(nil)

	err := f.bot.HandleEvent(ctx, Event{
		Type:    "app_mention",
		Text:    "<@UBOT123> leaderboard",
		User:    "U222BBB",
		Channel: "C333CCC",
	})

	assert.NoError(t, err)
	f.gateway.AssertExpectations(t)
}

func TestHandleEvent_AppMentionLeaderboardEmpty(t *testing.T) {
	ctx := context.Background()
	f := newBotFixture()

	f.scores.On("TopScores", ctx, []string{"C333CCC"}, mock.Anything, mock.Anything).
		Return([]models.ScoreCount{}, nil)
	f.gateway.On("SendEphemeralAttachment", ctx, "C333CCC", "U222BBB", mock.MatchedBy(func(a slack.Attachment) bool {
		return a.Text == "No Users on Leaderboard." && a.Color == "danger"
	})).Return(nil)

	err := f.bot.HandleEvent(ctx, Event{
		Type:    "app_mention",
		Text:    "<@UBOT123> leaderboard",
		User:    "U222BBB",
		Channel: "C333CCC",
	})

	assert.NoError(t, err)
	f.gateway.AssertExpectations(t)
}

func TestHandleEvent_AppMentionThanks(t *testing.T) {
	ctx := context.Background()
	f := newBotFixture()

	f.gateway.On("SendEphemeral", ctx, "C333CCC", "U222BBB", mock.MatchedBy(func(text string) bool {
		return strings.HasPrefix(text, "<@U222BBB> ")
	})).Return(nil)

	err := f.bot.HandleEvent(ctx, Event{
		Type:    "app_mention",
		Text:    "<@UBOT123> thanks",
		User:    "U222BBB",
		Channel: "C333CCC",
	})

	assert.NoError(t, err)
	f.gateway.AssertExpectations(t)
}

func TestHandleEvent_AppMentionUnknown(t *testing.T) {
	ctx := context.Background()
	f := newBotFixture()

	f.gateway.On("SendEphemeral", ctx, "C333CCC", "U222BBB", DefaultMentionReply).Return(nil)

	err := f.bot.HandleEvent(ctx, Event{
		Type:    "app_mention",
		Text:    "<@UBOT123> what is the meaning of life",
		User:    "U222BBB",
		Channel: "C333CCC",
	})

	assert.NoError(t, err)
	f.gateway.AssertExpectations(t)
}
