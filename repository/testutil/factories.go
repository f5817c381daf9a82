package testutil

import (
	"time"

	"github.com/google/uuid"

	"scorebot/models"
)

// CreateTestUser creates a test user with default values
func CreateTestUser(userID, userName string) *models.User {
	return &models.User{
		UserID:     userID,
		UserName:   userName,
		UserHandle: models.Handle(userName),
		CreatedAt:  time.Now(),
	}
}

// CreateTestChannel creates a test channel
func CreateTestChannel(channelID, channelName string) *models.Channel {
	return &models.Channel{
		ChannelID:   channelID,
		ChannelName: channelName,
		CreatedAt:   time.Now(),
	}
}

// CreateTestScore creates a test score row
func CreateTestScore(toUserID, fromUserID, channelID string) *models.Score {
	return &models.Score{
		ScoreID:    uuid.NewString(),
		Timestamp:  time.Now(),
		ToUserID:   toUserID,
		FromUserID: fromUserID,
		ChannelID:  channelID,
	}
}

// CreateTestScoreAt creates a test score row with a specific timestamp
func CreateTestScoreAt(toUserID, fromUserID, channelID string, at time.Time) *models.Score {
	score := CreateTestScore(toUserID, fromUserID, channelID)
	score.Timestamp = at
	return score
}

// CreateTestScoreWithDescription creates a test score row carrying a description
func CreateTestScoreWithDescription(toUserID, fromUserID, channelID, description string) *models.Score {
	score := CreateTestScore(toUserID, fromUserID, channelID)
	score.Description = description
	return score
}
