// Package jobs runs the bot's background tasks on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"scorebot/bot"
)

// Scheduler periodically refreshes the cached Slack user directory, so bot
// classification and display names do not drift for longer than the
// configured interval.
type Scheduler struct {
	cron    *cron.Cron
	gateway bot.Gateway
}

// NewScheduler creates a scheduler refreshing the user directory at the
// given interval.
func NewScheduler(gateway bot.Gateway, refreshEvery time.Duration) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{cron: c, gateway: gateway}

	spec := fmt.Sprintf("@every %s", refreshEvery)
	if _, err := c.AddFunc(spec, s.refreshDirectory); err != nil {
		return nil, fmt.Errorf("failed to schedule directory refresh: %w", err)
	}

	return s, nil
}

func (s *Scheduler) refreshDirectory() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.gateway.RefreshDirectory(ctx); err != nil {
		log.WithError(err).Error("Scheduled user directory refresh failed")
	}
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info("Scheduler started")
}

// Stop stops the scheduler and waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("Scheduler stopped")
}
