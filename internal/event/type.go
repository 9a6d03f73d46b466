package event

import (
	"context"
	"time"

	"parametric-service/internal/models"

	"github.com/google/uuid"
)

// Event is one entry in the audit log. Every state-changing operation emits
// one or more events carrying the identifiers and amounts involved.
type Event struct {
	ID        uuid.UUID        `json:"id"`
	Type      models.EventType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	PolicyID  *int64           `json:"policy_id,omitempty"`
	HolderID  string           `json:"holder_id,omitempty"`
	Amount    *int64           `json:"amount,omitempty"`
	Details   map[string]any   `json:"details,omitempty"`
}

// Publisher delivers events to a sink. External sinks are best-effort; the
// in-process log is the authoritative ordered record.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NotificationEventPushModel matches the payload consumed by the push
// notification service: { lstUserIds?: string[], title, body, data? }.
type NotificationEventPushModel struct {
	LstUserIds []string       `json:"lstUserIds,omitempty"`
	Title      string         `json:"title"`
	Body       string         `json:"body"`
	Data       map[string]any `json:"data,omitempty"`
}

const PushNotiQueue string = "push_noti_events"

const StreamKey string = "insurance_events"
