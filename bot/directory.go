package bot

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

// unknownName is the display fallback when an identity cannot be resolved.
const unknownName = "(unknown)"

// userDirectory caches the workspace user list. The list is needed on every
// inbound vote to classify the target as a bot and to resolve display names,
// so it is fetched once and refreshed explicitly: on a cache miss, and
// periodically by the scheduler.
type userDirectory struct {
	client *slack.Client

	mu    sync.RWMutex
	users map[string]slack.User
}

func newUserDirectory(client *slack.Client) *userDirectory {
	return &userDirectory{client: client}
}

// Refresh replaces the cached user list with a fresh users.list fetch.
func (d *userDirectory) Refresh(ctx context.Context) error {
	users, err := d.client.GetUsersContext(ctx)
	if err != nil {
		return err
	}

	byID := make(map[string]slack.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	d.mu.Lock()
	d.users = byID
	d.mu.Unlock()

	log.WithField("users", len(byID)).Debug("Refreshed user directory")
	return nil
}

// lookup returns the cached user, refetching the list once on a miss so a
// brand-new workspace member is still found.
func (d *userDirectory) lookup(ctx context.Context, userID string) (slack.User, bool) {
	d.mu.RLock()
	loaded := d.users != nil
	user, ok := d.users[userID]
	d.mu.RUnlock()

	if ok {
		return user, true
	}

	if err := d.Refresh(ctx); err != nil {
		if !loaded {
			log.WithError(err).Warn("Failed to load user directory")
		}
		return slack.User{}, false
	}

	d.mu.RLock()
	user, ok = d.users[userID]
	d.mu.RUnlock()
	return user, ok
}

// DisplayName resolves a user ID to the user's real name, falling back to
// their username and finally to "(unknown)".
func (d *userDirectory) DisplayName(ctx context.Context, userID string) string {
	user, ok := d.lookup(ctx, userID)
	if !ok {
		return unknownName
	}
	if user.Profile.RealName != "" {
		return user.Profile.RealName
	}
	return user.Name
}

// IsBot reports whether the user ID belongs to a bot user. Unknown IDs are
// not treated as bots.
func (d *userDirectory) IsBot(ctx context.Context, userID string) bool {
	user, ok := d.lookup(ctx, userID)
	return ok && user.IsBot
}
