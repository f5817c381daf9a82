package bot

import (
	"fmt"
	"math/rand"
	"strings"

	"scorebot/service"
)

// Operation names the kind of score change a reply announces.
type Operation string

const (
	OperationPlus  Operation = "plus"
	OperationMinus Operation = "minus"
	OperationSelf  Operation = "selfPlus"
)

// messageSet is a pool of interchangeable reply phrases with a selection
// weight, so the rare set almost never fires.
type messageSet struct {
	probability int
	set         []string
}

var messagePools = map[Operation][]messageSet{
	OperationPlus: {
		{
			probability: 100,
			set: []string{
				"Congrats!",
				"Got it!",
				"Bravo.",
				"Oh well done.",
				"Nice work!",
				"Well done.",
				"Exquisite.",
				"Lovely.",
				"Superb.",
				"Classic!",
				"Charming.",
				"Noted.",
				"Well, well!",
				"Well played.",
				"Sincerest congratulations.",
				"Delicious.",
			},
		},
		{
			probability: 1,
			set:         []string{":shifty:"},
		},
	},
	OperationMinus: {
		{
			probability: 100,
			set: []string{
				"Oh RLY?",
				"Oh, really?",
				"Oh :slightly_frowning_face:.",
				"I see.",
				"Ouch.",
				"Oh là là.",
				"Oh.",
				"Condolences.",
			},
		},
		{
			probability: 1,
			set:         []string{":shifty:"},
		},
	},
	OperationSelf: {
		{
			probability: 100,
			set: []string{
				"Hahahahahahaha no.",
				"Nope.",
				"No. Just no.",
				"Not cool!",
			},
		},
		{
			probability: 1,
			set:         []string{":shifty:"},
		},
	},
}

var thankYouMessages = []string{
	"Don't mention it!",
	"You're welcome.",
	"Pleasure!",
	"No thank YOU!",
	"++ for taking the time to say thanks!\n..." +
		"just kidding, I can't `++` you. But it's the thought that counts, right??",
}

// RandomMessage picks a weighted random phrase for the operation and formats
// the full reply, including the item and its new score where relevant.
func RandomMessage(operation Operation, item string, score int) string {
	phrase := randomPhrase(operation)

	switch operation {
	case OperationSelf:
		return fmt.Sprintf("%s %s", service.MaybeLinkItem(item), phrase)
	default:
		return fmt.Sprintf("%s *%s* is now on %s.", phrase, service.MaybeLinkItem(item), service.PointsLabel(score))
	}
}

func randomPhrase(operation Operation) string {
	sets := messagePools[operation]

	totalProbability := 0
	for _, s := range sets {
		totalProbability += s.probability
	}

	chosen := sets[0].set
	roll := rand.Intn(totalProbability)
	for _, s := range sets {
		roll -= s.probability
		if roll < 0 {
			chosen = s.set
			break
		}
	}

	return chosen[rand.Intn(len(chosen))]
}

// RandomThankYou picks a reply for a user thanking the bot.
func RandomThankYou(userID string) string {
	return fmt.Sprintf("<@%s> %s", userID, thankYouMessages[rand.Intn(len(thankYouMessages))])
}

// HelpMessage explains the bot's commands, using the configured undo window.
func HelpMessage(botName string, undoMinutes int) string {
	lines := []string{
		"Sure, here's what I can do:",
		"",
		"• `<@Someone> ++ [reason]`: Add a point to user, optionally you can add a reason.",
		fmt.Sprintf("• `<@%s> undo`: Undo last added point (only works %d minutes after you gave ++).", botName, undoMinutes),
		fmt.Sprintf("• `<@%s> leaderboard`: Display the leaderboard.", botName),
		fmt.Sprintf("• `<@%s> help`: Display this message.", botName),
		"",
	}
	return strings.Join(lines, "\n")
}

// DefaultMentionReply is sent when the bot is mentioned with text it does not
// recognize as a command.
const DefaultMentionReply = "Sorry, I'm not quite sure what you're asking me. I'm not very smart - there's only a " +
	"few things I've been trained to do. Send me `help` for more details."
