package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"scorebot/api"
	"scorebot/bot"
	"scorebot/config"
	"scorebot/database"
	"scorebot/jobs"
	"scorebot/repository"
	"scorebot/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting scorebot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	channelRepo := repository.NewChannelRepository(db)
	scoreRepo := repository.NewScoreRepository(db)

	// Initialize Slack gateway
	gateway := bot.NewGateway(slack.New(cfg.SlackToken))
	if err := gateway.RefreshDirectory(ctx); err != nil {
		log.WithError(err).Warn("Initial user directory load failed; will retry on demand")
	}

	// Initialize services
	scoreService := service.NewScoreService(userRepo, channelRepo, scoreRepo, gateway, cfg)
	leaderboardService := service.NewLeaderboardService(scoreRepo, channelRepo, gateway)
	feedService := service.NewFeedService(userRepo, scoreRepo, cfg)

	// Initialize bot and HTTP surface
	scoreBot := bot.New(cfg, gateway, scoreService, leaderboardService)
	router := api.NewRouter(cfg, scoreBot, leaderboardService, feedService)

	// Start background jobs
	scheduler, err := jobs.NewScheduler(gateway, cfg.UserCacheRefresh)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Infof("Listening on :%s in %s mode", cfg.HTTPPort, cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	// Graceful shutdown
	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}

	log.Info("Shutdown completed")
	return nil
}
