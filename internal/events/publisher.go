package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Publisher hands invite-created events to the notification channel.
// Publication is fire-and-forget relative to the HTTP caller: the invite
// is already durable when Publish runs, and a publish failure must not
// fail the caller-visible operation.
type Publisher interface {
	PublishInviteCreated(ctx context.Context, event InviteCreated) error
}

// RedisPublisher appends events to a Redis stream
type RedisPublisher struct {
	client *redis.Client
	stream string
}

// NewRedisPublisher creates a publisher writing to the given stream
func NewRedisPublisher(client *redis.Client, stream string) *RedisPublisher {
	return &RedisPublisher{client: client, stream: stream}
}

// PublishInviteCreated appends one event to the stream
func (p *RedisPublisher) PublishInviteCreated(ctx context.Context, event InviteCreated) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{"payload": payload},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// NewRedisClient connects to Redis at the given address
func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}
