package notifier

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisNotifier pushes deliveries onto a redis list drained by the chat bot.
type RedisNotifier struct {
	client *redis.Client
	queue  string
}

// NewRedisNotifier returns RedisNotifier pushing to queue.
func NewRedisNotifier(client *redis.Client, queue string) *RedisNotifier {
	return &RedisNotifier{client: client, queue: queue}
}

// Notify appends the message to the queue.
func (n *RedisNotifier) Notify(ctx context.Context, msg Message) error {
	data, err := msg.Marshal()
	if err != nil {
		return err
	}

	if err := n.client.RPush(ctx, n.queue, data).Err(); err != nil {
		return fmt.Errorf("redis rpush: %w", err)
	}

	return nil
}

// Close closes the redis client.
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
