package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// StreamPublisher appends events to a Redis Stream so external indexers can
// consume the audit trail with consumer groups.
type StreamPublisher struct {
	client *redis.Client
	stream string
}

func NewStreamPublisher(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{client: client, stream: StreamKey}
}

func (p *StreamPublisher) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"type":    string(e.Type),
			"payload": payload,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to append event to stream %s: %w", p.stream, err)
	}
	return nil
}
