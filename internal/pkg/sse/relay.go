package sse

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/go-redis/redis/v8"
)

// RelayChannel is the redis channel events travel on between API instances.
const RelayChannel = "salon:events"

type relayMessage struct {
	Topics []string        `json:"topics"`
	Name   string          `json:"name"`
	Data   json.RawMessage `json:"data"`
}

// RedisPublisher sends events through redis so every instance's hub receives them.
type RedisPublisher struct {
	client *redis.Client
	local  *Hub
}

func NewRedisPublisher(client *redis.Client, local *Hub) *RedisPublisher {
	return &RedisPublisher{client: client, local: local}
}

// PublishToMany falls back to the local hub when redis is unreachable.
func (p *RedisPublisher) PublishToMany(topics []string, event Event) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		slog.Error("Failed to encode event", "event", event.Name, "error", err)
		return
	}
	payload, err := json.Marshal(relayMessage{Topics: topics, Name: event.Name, Data: data})
	if err != nil {
		slog.Error("Failed to encode relay message", "event", event.Name, "error", err)
		return
	}

	if err := p.client.Publish(context.Background(), RelayChannel, payload).Err(); err != nil {
		slog.Warn("Redis publish failed, delivering locally", "event", event.Name, "error", err)
		p.local.PublishToMany(topics, event)
	}
}

// Relay forwards redis messages into hub until ctx is done.
func Relay(ctx context.Context, client *redis.Client, hub *Hub) {
	sub := client.Subscribe(ctx, RelayChannel)
	defer sub.Close()

	ch := sub.Channel()
	slog.Info("Event relay started", "channel", RelayChannel)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Event relay stopped")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var m relayMessage
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				slog.Warn("Dropping malformed relay message", "error", err)
				continue
			}
			hub.PublishToMany(m.Topics, Event{Name: m.Name, Data: m.Data})
		}
	}
}
