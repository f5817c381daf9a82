package api

import (
	"github.com/gin-gonic/gin"

	"scorebot/bot"
	"scorebot/config"
	"scorebot/service"
)

// NewRouter assembles the HTTP surface: the Slack events webhook plus the
// read-only query endpoints consumed by the web leaderboard frontend.
func NewRouter(cfg *config.Config, b *bot.Bot, leaderboard *service.LeaderboardService, feed *service.FeedService) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.POST("/", EventsHandler(b))
	r.GET("/leaderboard", LeaderboardHandler(leaderboard))
	r.GET("/channels", ChannelsHandler(leaderboard))
	r.GET("/karmafeed", KarmaFeedHandler(feed))
	r.GET("/userprofile", UserProfileHandler(feed))

	return r
}
