package bot

import (
	"regexp"
	"strings"

	"scorebot/service"
)

// Directive is a recognized score-changing command extracted from message
// text: who it targets, what to do, and the optional free-text reason.
type Directive struct {
	TargetID  string
	Operation string // "+", "-" or "undo"
	Reason    string
}

// The mention token followed by a doubled operator, the em-dash (a common
// mobile-autocorrect substitution for "--"), or the word "undo". Only the
// first qualifying match in a message is used; a single "+" or "-" does not
// match.
var votePattern = regexp.MustCompile(`<@([A-Za-z0-9]+)>\s*(\+\+|--|—|undo)\s*(.*)`)

var userIDPattern = regexp.MustCompile(`U[A-Z0-9]+`)

// ParseDirective extracts a directive from raw message text, or returns nil
// when the text contains no recognizable command. Unrecognized text is noise,
// not an error.
func ParseDirective(text string) *Directive {
	m := votePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	if !service.IsUserID(m[1]) {
		return nil
	}

	operation := m[2]
	switch operation {
	case "++":
		operation = "+"
	case "--", "—":
		operation = "-"
	}

	return &Directive{
		TargetID:  m[1],
		Operation: operation,
		Reason:    strings.TrimSpace(m[3]),
	}
}

// ExtractCommand finds the earliest whole-word occurrence of any of the
// given commands in the message, or "" when none is present.
func ExtractCommand(message string, commands []string) string {
	firstLocation := len(message) + 1
	firstCommand := ""

	for _, command := range commands {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(command) + `\b`)
		loc := re.FindStringIndex(message)
		if loc != nil && loc[0] < firstLocation {
			firstLocation = loc[0]
			firstCommand = command
		}
	}

	return firstCommand
}

// ExtractUserID pulls the first Slack user ID out of a string of text.
func ExtractUserID(text string) string {
	return userIDPattern.FindString(text)
}
