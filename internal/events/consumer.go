package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Handler processes one invite-created event. A handler error is logged
// and the event is still acknowledged: delivery here is best-effort,
// never retried.
type Handler func(ctx context.Context, event InviteCreated) error

// Consumer reads invite-created events from a Redis stream as part of a
// consumer group, so multiple notifier instances share the backlog
// instead of each receiving every event.
type Consumer struct {
	client   *redis.Client
	stream   string
	group    string
	consumer string
	handler  Handler
}

// NewConsumer creates a consumer with a unique per-instance name
func NewConsumer(client *redis.Client, stream, group string, handler Handler) *Consumer {
	return &Consumer{
		client:   client,
		stream:   stream,
		group:    group,
		consumer: "notifier-" + uuid.New().String(),
		handler:  handler,
	}
}

// Run blocks reading events until the context is canceled
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.ensureGroup(ctx); err != nil {
		return err
	}

	log.Printf("Consuming stream %s as %s in group %s", c.stream, c.consumer, c.group)

	for {
		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.group,
			Consumer: c.consumer,
			Streams:  []string{c.stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()
		if errors.Is(err, context.Canceled) {
			return ctx.Err()
		}
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("Failed to read from stream: %v", err)
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				c.handleMessage(ctx, message)
			}
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, message redis.XMessage) {
	// Ack regardless of handler outcome: a failed notification is
	// logged, not redelivered
	defer func() {
		if err := c.client.XAck(ctx, c.stream, c.group, message.ID).Err(); err != nil {
			log.Printf("Failed to ack message %s: %v", message.ID, err)
		}
	}()

	event, err := decodeMessage(message)
	if err != nil {
		log.Printf("Discarding malformed message %s: %v", message.ID, err)
		return
	}

	if err := c.handler(ctx, event); err != nil {
		log.Printf("Failed to handle invite-created event for %s: %v", event.InviteeEmail, err)
	}
}

func (c *Consumer) ensureGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.group, "$").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

func decodeMessage(message redis.XMessage) (InviteCreated, error) {
	var event InviteCreated

	raw, ok := message.Values["payload"]
	if !ok {
		return event, errors.New("message has no payload field")
	}

	payload, ok := raw.(string)
	if !ok {
		return event, fmt.Errorf("payload has unexpected type %T", raw)
	}

	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return event, fmt.Errorf("failed to decode payload: %w", err)
	}
	return event, nil
}
