package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultStream is the stream reminder events are appended to.
const DefaultStream = "lendbook:reminders"

// EventReminderDue is the event type of a reminder message.
const EventReminderDue = "reminder.due"

// Event is the envelope written to the stream.
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// ReminderEvent is the payload of an EventReminderDue event.
type ReminderEvent struct {
	AccountID string `json:"accountId"`
	Message   string `json:"message"`
}

// StreamAdder is the subset of the redis client the dispatcher uses.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisDispatcher appends one event per message to a Redis stream, for a
// separate consumer to deliver.
type RedisDispatcher struct {
	client StreamAdder
	stream string
	now    func() time.Time
}

// NewRedisDispatcher creates a RedisDispatcher writing to stream
// (DefaultStream when empty).
func NewRedisDispatcher(client StreamAdder, stream string) *RedisDispatcher {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisDispatcher{client: client, stream: stream, now: time.Now}
}

// NewRedisClient connects to addr and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

func (d *RedisDispatcher) Dispatch(ctx context.Context, accountID string, messages []string) error {
	for _, msg := range messages {
		event := Event{
			Type:      EventReminderDue,
			Timestamp: d.now().UTC(),
			Data:      ReminderEvent{AccountID: accountID, Message: msg},
		}

		eventJSON, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}

		args := &redis.XAddArgs{
			Stream: d.stream,
			Values: map[string]any{"event": eventJSON},
		}
		if _, err := d.client.XAdd(ctx, args).Result(); err != nil {
			return fmt.Errorf("failed to publish reminder: %w", err)
		}
	}
	return nil
}
