package bot

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

// Gateway is the bot's full contract with the messaging platform: the name
// lookups the services need, plus message delivery and bot classification.
type Gateway interface {
	ResolveDisplayName(ctx context.Context, userID string) string
	ResolveChannelName(ctx context.Context, channelID string) string

	// SendEphemeral sends a message only the given user can see.
	SendEphemeral(ctx context.Context, channelID, userID, text string) error

	// SendEphemeralAttachment sends an ephemeral message with an attachment.
	SendEphemeralAttachment(ctx context.Context, channelID, userID string, attachment slack.Attachment) error

	// SendMessage posts a message to a channel.
	SendMessage(ctx context.Context, channelID, text string) error

	// IsBot reports whether the user ID belongs to a bot user.
	IsBot(ctx context.Context, userID string) bool

	// RefreshDirectory re-fetches the cached workspace user list.
	RefreshDirectory(ctx context.Context) error
}

type slackGateway struct {
	client    *slack.Client
	directory *userDirectory
}

// NewGateway creates a Gateway backed by the Slack Web API.
func NewGateway(client *slack.Client) Gateway {
	return &slackGateway{
		client:    client,
		directory: newUserDirectory(client),
	}
}

func (g *slackGateway) ResolveDisplayName(ctx context.Context, userID string) string {
	return g.directory.DisplayName(ctx, userID)
}

func (g *slackGateway) ResolveChannelName(ctx context.Context, channelID string) string {
	channel, err := g.client.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{
		ChannelID: channelID,
	})
	if err != nil {
		log.WithError(err).WithField("channel", channelID).Warn("Failed to resolve channel name")
		return unknownName
	}
	return channel.Name
}

func (g *slackGateway) SendEphemeral(ctx context.Context, channelID, userID, text string) error {
	_, err := g.client.PostEphemeralContext(ctx, channelID, userID, slack.MsgOptionText(text, false))
	return err
}

func (g *slackGateway) SendEphemeralAttachment(ctx context.Context, channelID, userID string, attachment slack.Attachment) error {
	_, err := g.client.PostEphemeralContext(ctx, channelID, userID, slack.MsgOptionAttachments(attachment))
	return err
}

func (g *slackGateway) SendMessage(ctx context.Context, channelID, text string) error {
	_, _, err := g.client.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	return err
}

func (g *slackGateway) IsBot(ctx context.Context, userID string) bool {
	return g.directory.IsBot(ctx, userID)
}

func (g *slackGateway) RefreshDirectory(ctx context.Context) error {
	return g.directory.Refresh(ctx)
}
