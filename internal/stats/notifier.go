package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

const UpdatesChannel = "stats-updates"

type StatsUpdate struct {
	UserID string   `json:"userId"`
	Stats  StatsMap `json:"stats"`
}

// Notifier announces that a user's stats changed.
type Notifier interface {
	PublishStats(ctx context.Context, update StatsUpdate) error
}

// DeliverFunc hands an update to the connections held by this instance.
type DeliverFunc func(update StatsUpdate)

// LocalNotifier delivers updates in-process. Used when no redis is configured.
type LocalNotifier struct {
	deliver DeliverFunc
}

func NewLocalNotifier(deliver DeliverFunc) *LocalNotifier {
	return &LocalNotifier{deliver: deliver}
}

func (n *LocalNotifier) PublishStats(_ context.Context, update StatsUpdate) error {
	n.deliver(update)
	return nil
}

// RedisNotifier fans updates out to every instance through redis pub/sub.
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
	deliver DeliverFunc
}

func NewRedisNotifier(rdb *redis.Client, deliver DeliverFunc) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, channel: UpdatesChannel, deliver: deliver}
}

func (n *RedisNotifier) PublishStats(ctx context.Context, update StatsUpdate) error {
	payload, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("error encoding stats update: %w", err)
	}
	return n.rdb.Publish(ctx, n.channel, payload).Err()
}

// Subscribe starts forwarding published updates to the local deliver func
// until ctx is cancelled.
func (n *RedisNotifier) Subscribe(ctx context.Context) error {
	sub := n.rdb.Subscribe(ctx, n.channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return fmt.Errorf("error subscribing to %s: %w", n.channel, err)
	}

	log.Printf("Subscribed to %s channel", n.channel)
	ch := sub.Channel()
	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				n.handleMessage(msg.Payload)
			}
		}
	}()
	return nil
}

func (n *RedisNotifier) handleMessage(payload string) {
	var update StatsUpdate
	if err := json.Unmarshal([]byte(payload), &update); err != nil {
		log.Println("Error decoding stats update:", err)
		return
	}
	n.deliver(update)
}
