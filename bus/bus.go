// Package bus relays messages between the API process and the background
// worker over Redis pub/sub. The two contexts share no memory; an
// acknowledgment in one must tear down the alarm session in the other.
package bus

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const Channel = "classchime:bus"

const (
	TypeReminderAcknowledged = "REMINDER_ACKNOWLEDGED"
	TypeCheckReminders       = "CHECK_REMINDERS"
)

type Message struct {
	Type       string `json:"type" mapstructure:"type"`
	ReminderID string `json:"reminder_id,omitempty" mapstructure:"reminder_id"`
}

func Publish(ctx context.Context, rdb *redis.Client, msg Message) error {
	payload, err := json.Marshal(msg)

	if err != nil {
		return fmt.Errorf("error marshalling bus message: %w", err)
	}

	err = rdb.Publish(ctx, Channel, payload).Err()

	if err != nil {
		return fmt.Errorf("error publishing bus message: %w", err)
	}

	return nil
}

// Decode parses a raw payload into a Message, tolerating unknown fields so
// the two binaries don't have to be upgraded in lockstep.
func Decode(payload string) (Message, error) {
	var raw map[string]any

	err := json.Unmarshal([]byte(payload), &raw)

	if err != nil {
		return Message{}, fmt.Errorf("error unmarshalling bus message: %w", err)
	}

	var msg Message

	err = mapstructure.Decode(raw, &msg)

	if err != nil {
		return Message{}, fmt.Errorf("error decoding bus message: %w", err)
	}

	if msg.Type == "" {
		return Message{}, fmt.Errorf("bus message missing type")
	}

	return msg, nil
}

// Listen subscribes to the bus channel and invokes handler for every decoded
// message until ctx is done. Malformed messages are logged and skipped.
func Listen(ctx context.Context, rdb *redis.Client, logger *zap.SugaredLogger, handler func(Message)) {
	sub := rdb.Subscribe(ctx, Channel)
	defer sub.Close()

	ch := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}

			msg, err := Decode(m.Payload)

			if err != nil {
				logger.Error("Dropping malformed bus message", zap.Error(err), zap.String("payload", m.Payload))
				continue
			}

			handler(msg)
		}
	}
}
