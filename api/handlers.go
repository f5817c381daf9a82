package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"scorebot/bot"
	"scorebot/models"
	"scorebot/service"
)

// eventPayload is the Slack Events API callback envelope, reduced to the
// fields the core consumes.
type eventPayload struct {
	Type      string `json:"type"`
	Challenge string `json:"challenge"`
	Event     struct {
		Type    string `json:"type"`
		SubType string `json:"subtype"`
		Text    string `json:"text"`
		User    string `json:"user"`
		Channel string `json:"channel"`
	} `json:"event"`
}

// EventsHandler receives Slack event callbacks and hands them to the bot.
func EventsHandler(b *bot.Bot) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload eventPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.String(http.StatusBadRequest, "invalid payload")
			return
		}

		// Slack's endpoint ownership handshake.
		if payload.Type == "url_verification" {
			c.JSON(http.StatusOK, gin.H{"challenge": payload.Challenge})
			return
		}

		if err := b.HandleEvent(c.Request.Context(), bot.Event{
			Type:    payload.Event.Type,
			SubType: payload.Event.SubType,
			Text:    payload.Event.Text,
			User:    payload.Event.User,
			Channel: payload.Event.Channel,
		}); err != nil {
			log.WithError(err).Error("Failed to handle event")
			c.Status(http.StatusInternalServerError)
			return
		}

		c.Status(http.StatusOK)
	}
}

// LeaderboardHandler returns the ranked leaderboard for the web frontend.
func LeaderboardHandler(leaderboard *service.LeaderboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := parseUnixDate(c.Query("startDate"))
		end := parseUnixDate(c.Query("endDate"))
		channel := c.DefaultQuery("channel", "all")

		users, err := leaderboard.GetRanked(c.Request.Context(), channel, start, end, service.ItemTypeUsers)
		if err != nil {
			serverError(c, err)
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

// ChannelsHandler lists every channel with recorded votes.
func ChannelsHandler(leaderboard *service.LeaderboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		channels, err := leaderboard.GetChannels(c.Request.Context())
		if err != nil {
			serverError(c, err)
			return
		}

		c.JSON(http.StatusOK, channels)
	}
}

// KarmaFeedHandler returns one page of the searchable activity feed.
func KarmaFeedHandler(feed *service.FeedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := parseUnixDate(c.Query("startDate"))
		end := parseUnixDate(c.Query("endDate"))
		channel := c.DefaultQuery("channel", "all")
		page := parseInt(c.Query("page"), 1)
		pageSize := parseInt(c.Query("itemsPerPage"), 0)
		search := c.Query("searchString")

		result, err := feed.GetFeed(c.Request.Context(), channel, start, end, page, pageSize, search)
		if err != nil {
			serverError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// UserProfileHandler returns one user's profile statistics and activity.
func UserProfileHandler(feed *service.FeedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Query("username")
		direction := models.Direction(c.DefaultQuery("fromTo", "all"))
		channel := c.DefaultQuery("channelProfile", "all")
		page := parseInt(c.Query("page"), 1)
		pageSize := parseInt(c.Query("itemsPerPage"), 0)
		search := c.Query("searchString")

		profile, err := feed.GetProfile(c.Request.Context(), username, direction, channel, page, pageSize, search)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			serverError(c, err)
			return
		}

		c.JSON(http.StatusOK, profile)
	}
}

func serverError(c *gin.Context, err error) {
	log.WithError(err).Error("Query failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// parseUnixDate interprets a query value as Unix epoch seconds, or nil when
// absent or malformed.
func parseUnixDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	seconds, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	t := time.Unix(seconds, 0)
	return &t
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
