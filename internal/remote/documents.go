package remote

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Options configure the Redis connection backing the user documents.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect opens a client and verifies it answers PING.
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		MaxRetries:   2,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

// Documents stores each user's hidden coin ids as a Redis set. Adding to a
// set is a merge by construction, so concurrent writers from several devices
// never lose each other's ids.
type Documents struct {
	client *redis.Client
	logger *logrus.Entry
}

func NewDocuments(client *redis.Client, logger *logrus.Entry) *Documents {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Documents{
		client: client,
		logger: logger.WithField("component", "remote"),
	}
}

func (d *Documents) keyForUser(userID string) string {
	return fmt.Sprintf("coinboard:users:%s:excludedIds", userID)
}

func (d *Documents) channelForUser(userID string) string {
	return d.keyForUser(userID) + ":changed"
}

// MergeExcluded adds ids to the user's document and notifies watchers.
func (d *Documents) MergeExcluded(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	members := make([]any, 0, len(ids))
	for _, id := range ids {
		members = append(members, id)
	}

	pipe := d.client.TxPipeline()
	pipe.SAdd(ctx, d.keyForUser(userID), members...)
	pipe.Publish(ctx, d.channelForUser(userID), "merge")
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("merge excluded ids for %s: %w", userID, err)
	}
	return nil
}

// LoadExcluded returns the user's ids, sorted.
func (d *Documents) LoadExcluded(ctx context.Context, userID string) ([]string, error) {
	ids, err := d.client.SMembers(ctx, d.keyForUser(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load excluded ids for %s: %w", userID, err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (d *Documents) ClearExcluded(ctx context.Context, userID string) error {
	pipe := d.client.TxPipeline()
	pipe.Del(ctx, d.keyForUser(userID))
	pipe.Publish(ctx, d.channelForUser(userID), "clear")
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("clear excluded ids for %s: %w", userID, err)
	}
	return nil
}

// Watch delivers the user's full id list once immediately and again after
// every change notification, until ctx is done. The channel is closed when
// the watch ends.
func (d *Documents) Watch(ctx context.Context, userID string) (<-chan []string, error) {
	sub := d.client.Subscribe(ctx, d.channelForUser(userID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", d.channelForUser(userID), err)
	}

	out := make(chan []string, 1)
	go func() {
		defer close(out)
		defer sub.Close()

		send := func() bool {
			ids, err := d.LoadExcluded(ctx, userID)
			if err != nil {
				if ctx.Err() != nil {
					return false
				}
				d.logger.WithError(err).Warn("reading remote document after change failed")
				return true
			}
			select {
			case out <- ids:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send() {
			return
		}
		notifications := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-notifications:
				if !ok {
					return
				}
				if !send() {
					return
				}
			}
		}
	}()
	return out, nil
}
