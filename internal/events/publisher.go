package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ignitefit/class-booking/internal/model"
	"github.com/redis/go-redis/v9"
)

// Publisher hands booking events to whatever records them.
type Publisher interface {
	Publish(ctx context.Context, events ...model.BookingEvent) error
}

// RedisPublisher appends events as JSON to a Redis list consumed by the audit worker.
type RedisPublisher struct {
	rdb   redis.Cmdable
	queue string
}

// NewRedisPublisher creates a RedisPublisher pushing onto queue.
func NewRedisPublisher(rdb redis.Cmdable, queue string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, queue: queue}
}

// Publish RPUSHes all events in a single round trip.
func (p *RedisPublisher) Publish(ctx context.Context, events ...model.BookingEvent) error {
	if len(events) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(events))
	for _, e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", e.ID, err)
		}
		values = append(values, data)
	}

	if err := p.rdb.RPush(ctx, p.queue, values...).Err(); err != nil {
		return fmt.Errorf("push to %s: %w", p.queue, err)
	}
	return nil
}

// NopPublisher drops every event. Used when no Redis is configured.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, ...model.BookingEvent) error { return nil }
