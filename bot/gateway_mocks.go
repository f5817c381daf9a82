package bot

import (
	"context"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/mock"
)

// MockGateway is a mock implementation of Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ResolveDisplayName(ctx context.Context, userID string) string {
	args := m.Called(ctx, userID)
	return args.String(0)
}

func (m *MockGateway) ResolveChannelName(ctx context.Context, channelID string) string {
	args := m.Called(ctx, channelID)
	return args.String(0)
}

func (m *MockGateway) SendEphemeral(ctx context.Context, channelID, userID, text string) error {
	args := m.Called(ctx, channelID, userID, text)
	return args.Error(0)
}

func (m *MockGateway) SendEphemeralAttachment(ctx context.Context, channelID, userID string, attachment slack.Attachment) error {
	args := m.Called(ctx, channelID, userID, attachment)
	return args.Error(0)
}

func (m *MockGateway) SendMessage(ctx context.Context, channelID, text string) error {
	args := m.Called(ctx, channelID, text)
	return args.Error(0)
}

func (m *MockGateway) IsBot(ctx context.Context, userID string) bool {
	args := m.Called(ctx, userID)
	return args.Bool(0)
}

func (m *MockGateway) RefreshDirectory(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
