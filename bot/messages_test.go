package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomMessage_Plus(t *testing.T) {
	msg := RandomMessage(OperationPlus, "U123ABC", 5)

	assert.Contains(t, msg, "*<@U123ABC>* is now on 5 points.")
}

func TestRandomMessage_SingularPoint(t *testing.T) {
	msg := RandomMessage(OperationMinus, "U123ABC", 1)

	assert.Contains(t, msg, "is now on 1 point.")
}

func TestRandomMessage_Self(t *testing.T) {
	msg := RandomMessage(OperationSelf, "U123ABC", 0)

	assert.True(t, strings.HasPrefix(msg, "<@U123ABC> "))
	assert.NotContains(t, msg, "is now on")
}

func TestRandomMessage_ThingIsNotLinked(t *testing.T) {
	msg := RandomMessage(OperationPlus, "coffee", 3)

	assert.Contains(t, msg, "*coffee* is now on 3 points.")
	assert.NotContains(t, msg, "<@")
}

func TestRandomThankYou(t *testing.T) {
	msg := RandomThankYou("U123ABC")

	assert.True(t, strings.HasPrefix(msg, "<@U123ABC> "))
}

func TestHelpMessage(t *testing.T) {
	msg := HelpMessage("plusplus", 5)

	assert.Contains(t, msg, "`<@plusplus> undo`")
	assert.Contains(t, msg, "5 minutes")
	assert.Contains(t, msg, "leaderboard")
}
