package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"scorebot/config"
	"scorebot/service"
)

// Event is one parsed inbound message event, delivered by the HTTP layer.
type Event struct {
	Type    string
	SubType string
	Text    string
	User    string
	Channel string
}

// Bot interprets inbound events into score changes and replies. Each event is
// handled end-to-end on the goroutine that received it; there is no internal
// queue.
type Bot struct {
	cfg         *config.Config
	gateway     Gateway
	scores      *service.ScoreService
	leaderboard *service.LeaderboardService
	ledger      *service.UndoLedger
	now         func() time.Time
}

// New creates the bot with a fresh, empty undo ledger.
func New(cfg *config.Config, gateway Gateway, scores *service.ScoreService, leaderboard *service.LeaderboardService) *Bot {
	return &Bot{
		cfg:         cfg,
		gateway:     gateway,
		scores:      scores,
		leaderboard: leaderboard,
		ledger:      service.NewUndoLedger(),
		now:         time.Now,
	}
}

// HandleEvent validates and dispatches one inbound event. Malformed or
// unsupported events are dropped with a warning and no reply.
func (b *Bot) HandleEvent(ctx context.Context, event Event) error {
	if event.Type == "" {
		log.Warn("Event data missing")
		return nil
	}
	if event.SubType != "" {
		log.Warnf("Unsupported event subtype: %s", event.SubType)
		return nil
	}
	if strings.TrimSpace(event.Text) == "" {
		log.Warn("Event text missing")
		return nil
	}

	switch event.Type {
	case "message":
		return b.handleMessage(ctx, event)
	case "app_mention":
		return b.handleAppMention(ctx, event)
	default:
		log.Warnf("Invalid event received: %s", event.Type)
		return nil
	}
}

// handleMessage looks for a vote directive in a channel message.
func (b *Bot) handleMessage(ctx context.Context, event Event) error {
	directive := ParseDirective(event.Text)
	if directive == nil {
		return nil
	}

	targetIsBot := b.gateway.IsBot(ctx, directive.TargetID)

	// "undo" is addressed to the bot's own mention.
	if targetIsBot && directive.Operation == "undo" {
		return b.handleUndo(ctx, event)
	}
	if targetIsBot || directive.Operation == "undo" {
		return nil
	}

	if directive.TargetID == event.User && directive.Operation == "+" {
		return b.handleSelfPlus(ctx, event)
	}

	return b.handlePlusMinus(ctx, directive, event)
}

// handlePlusMinus applies a plus vote after the daily-limit check. Minus
// votes are recognized but deliberately not applied, keeping scores
// monotonically non-decreasing.
func (b *Bot) handlePlusMinus(ctx context.Context, directive *Directive, event Event) error {
	if directive.Operation == "-" {
		return nil
	}

	if err := b.scores.CheckDailyLimit(ctx, event.User); err != nil {
		if errors.Is(err, service.ErrRateLimited) {
			return b.gateway.SendEphemeral(ctx, event.Channel, event.User, "You have reached your daily voting limit!")
		}
		return err
	}

	score, err := b.scores.ApplyVote(ctx, directive.TargetID, event.User, event.Channel, directive.Reason)
	if err != nil {
		return err
	}

	b.ledger.Record(event.User, directive.TargetID)

	return b.gateway.SendEphemeral(ctx, event.Channel, event.User, RandomMessage(OperationPlus, directive.TargetID, score))
}

// handleUndo reverses the voter's tracked vote if it is still inside the
// undo window.
func (b *Bot) handleUndo(ctx context.Context, event Event) error {
	recipient, ok := b.ledger.Take(event.User)
	if !ok {
		return b.gateway.SendEphemeral(ctx, event.Channel, event.User,
			fmt.Sprintf("<@%s> there is nothing to undo!", event.User))
	}

	score, err := b.scores.ReverseVote(ctx, event.User, recipient, event.Channel)
	if err != nil {
		if errors.Is(err, service.ErrUndoExpired) {
			return b.gateway.SendEphemeral(ctx, event.Channel, event.User,
				fmt.Sprintf("You can undo only for duration of %d minutes after up voting!", b.cfg.UndoTimeLimit/60))
		}
		return err
	}

	return b.gateway.SendEphemeral(ctx, event.Channel, event.User, RandomMessage(OperationMinus, recipient, score))
}

// handleSelfPlus tells a user off for trying to raise their own score.
func (b *Bot) handleSelfPlus(ctx context.Context, event Event) error {
	log.WithField("user", event.User).Info("User tried to alter their own score")
	return b.gateway.SendEphemeral(ctx, event.Channel, event.User, RandomMessage(OperationSelf, event.User, 0))
}

// handleAppMention reacts to commands addressed directly to the bot.
func (b *Bot) handleAppMention(ctx context.Context, event Event) error {
	commands := []string{"leaderboard", "help", "thx", "thanks", "thankyou"}

	switch ExtractCommand(event.Text, commands) {
	case "leaderboard":
		return b.sendLeaderboard(ctx, event)
	case "help":
		return b.sendHelp(ctx, event)
	case "thx", "thanks", "thankyou":
		return b.gateway.SendEphemeral(ctx, event.Channel, event.User, RandomThankYou(event.User))
	default:
		return b.gateway.SendEphemeral(ctx, event.Channel, event.User, DefaultMentionReply)
	}
}

// sendHelp explains the bot's commands under the name the bot goes by.
func (b *Bot) sendHelp(ctx context.Context, event Event) error {
	botUserID := ExtractUserID(event.Text)
	botName := b.gateway.ResolveDisplayName(ctx, botUserID)

	return b.gateway.SendEphemeral(ctx, event.Channel, event.User, HelpMessage(botName, b.cfg.UndoTimeLimit/60))
}
