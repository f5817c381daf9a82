package bot

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"scorebot/service"
)

// slackLeaderboardLimit caps the entries shown in a chat reply; the web
// leaderboard carries the whole list.
const slackLeaderboardLimit = 5

// sendLeaderboard replies with the channel's top users and a link to the
// full web leaderboard.
func (b *Bot) sendLeaderboard(ctx context.Context, event Event) error {
	now := b.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	scores, err := b.leaderboard.GetTopScores(ctx, event.Channel, &monthStart, nil)
	if err != nil {
		return err
	}

	users := service.RankItemsSlack(scores, service.ItemTypeUsers)
	if len(users) == 0 {
		return b.gateway.SendEphemeralAttachment(ctx, event.Channel, event.User, slack.Attachment{
			Text:  "No Users on Leaderboard.",
			Color: "danger",
		})
	}
	if len(users) > slackLeaderboardLimit {
		users = users[:slackLeaderboardLimit]
	}

	channelName := b.gateway.ResolveChannelName(ctx, event.Channel)
	header := fmt.Sprintf("Here you go. Best people this month in channel <#%s|%s>.", event.Channel, channelName)
	footer := fmt.Sprintf("Or see the <%s|whole list>.", b.leaderboardURL(event.Channel))

	log.Info("Sending the leaderboard")
	return b.gateway.SendEphemeralAttachment(ctx, event.Channel, event.User, slack.Attachment{
		Text:  header,
		Color: "good",
		Fields: []slack.AttachmentField{
			{Value: strings.Join(users, "\n"), Short: true},
			{Value: "\n" + footer},
		},
	})
}

func (b *Bot) leaderboardURL(channelID string) string {
	params := url.Values{}
	params.Set("channel", channelID)
	return fmt.Sprintf("%s?%s", b.cfg.LeaderboardURL, params.Encode())
}
