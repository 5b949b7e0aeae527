package events

import (
	"time"

	"github.com/spec-kit/airport-dashboard/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated              EventType = "user_created"
	EventUserDeleted              EventType = "user_deleted"
	EventNotificationSent         EventType = "notification_sent"
	EventNotificationAcknowledged EventType = "notification_acknowledged"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	UserID         string      `json:"user_id"`
	Email          string      `json:"email"`
	Role           domain.Role `json:"role"`
	AirportCode    string      `json:"airport_code,omitempty"`
	WorkAssignment string      `json:"work_assignment,omitempty"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// NotificationSentPayload payload.
type NotificationSentPayload struct {
	NotificationID string                      `json:"notification_id"`
	RecipientID    string                      `json:"recipient_id"`
	AirportCode    string                      `json:"airport_code,omitempty"`
	Priority       domain.NotificationPriority `json:"priority"`
}

// NotificationAcknowledgedPayload payload.
type NotificationAcknowledgedPayload struct {
	NotificationID string `json:"notification_id"`
}
