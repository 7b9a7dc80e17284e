package httpserver

import (
	"context"

	"github.com/Skotchmaster/book_service/internal/logging"
)

const (
	TopicUserEvents   = "user_events"
	TopicBookEvents   = "book_events"
	TopicReviewEvents = "review_events"
)

// EventPublisher is what handlers need from the kafka producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// publishEvent is best effort: a broker outage must not fail the request.
func publishEvent(ctx context.Context, p EventPublisher, topic, typ, key string, payload any) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(ctx, topic, key, event{Type: typ, Payload: payload}); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", topic, "type", typ, "error", err)
	}
}
