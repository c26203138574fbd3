package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Channel names for account events.
const (
	channelPrefix         = "events:"
	ChannelUserRegistered = channelPrefix + "user.registered"
)

// Event is the envelope every published message is wrapped in.
type Event struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp int64  `json:"timestamp"`
}

type Publisher struct {
	client *redis.Client
	now    func() time.Time
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client, now: time.Now}
}

func (p *Publisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}

// PublishJSON wraps v in an Event named after channel and publishes it.
func (p *Publisher) PublishJSON(ctx context.Context, channel string, v any) error {
	event := Event{
		Type:      strings.TrimPrefix(channel, channelPrefix),
		Payload:   v,
		Timestamp: p.now().Unix(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return p.Publish(ctx, channel, payload)
}
