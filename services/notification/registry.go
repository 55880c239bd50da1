package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"vaxremind/models"

	"github.com/go-redis/redis/v8"
)

const liveNotificationPrefix = "notification:live:"

// LiveRegistry records the live notification for each tag in Redis.
// A SET on an existing tag replaces it, so a tag never has more than one live entry.
// Notifications that do not require interaction expire after ttl.
type LiveRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLiveRegistry(client *redis.Client, ttl time.Duration) *LiveRegistry {
	return &LiveRegistry{client: client, ttl: ttl}
}

func (r *LiveRegistry) Show(ctx context.Context, n models.DisplayedNotification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, liveNotificationPrefix+n.Tag, b, r.expiryFor(n)).Err(); err != nil {
		return fmt.Errorf("LiveRegistry.Show: %w", err)
	}
	return nil
}

// expiryFor keeps notifications that require interaction until they are closed.
func (r *LiveRegistry) expiryFor(n models.DisplayedNotification) time.Duration {
	if n.RequireInteraction {
		return 0
	}
	return r.ttl
}

func (r *LiveRegistry) Close(ctx context.Context, tag string) error {
	return r.client.Del(ctx, liveNotificationPrefix+tag).Err()
}

// Tags lists every live tag.
func (r *LiveRegistry) Tags(ctx context.Context) ([]string, error) {
	var tags []string
	iter := r.client.Scan(ctx, 0, liveNotificationPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		tags = append(tags, strings.TrimPrefix(iter.Val(), liveNotificationPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("LiveRegistry.Tags: %w", err)
	}
	sort.Strings(tags)
	return tags, nil
}
