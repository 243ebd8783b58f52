// Package redispub carries order-change signals between app instances over
// Redis pub/sub. The payload is only a nudge: subscribers re-read the
// authoritative store instead of trusting message contents.
package redispub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "orders:"

func channelFor(courierID string) string {
	return channelPrefix + courierID
}

// changeNotification is the wire envelope published on a courier's channel.
type changeNotification struct {
	CourierID string `json:"courier_id"`
	ChangedAt int64  `json:"changed_at"`
}

// Publisher implements ports.FeedPublisher over Redis pub/sub.
type Publisher struct {
	client *redis.Client
}

// NewPublisher creates a publisher over an established Redis client.
func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client}
}

// OrdersChanged signals that the courier's order collection changed.
func (p *Publisher) OrdersChanged(ctx context.Context, courierID string) error {
	payload, err := json.Marshal(changeNotification{
		CourierID: courierID,
		ChangedAt: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := p.client.Publish(ctx, channelFor(courierID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}
