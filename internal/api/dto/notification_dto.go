package dto

import (
	"time"

	"github.com/spec-kit/airport-dashboard/internal/domain"
)

// SendNotificationRequest payload for manager/admin notification sends.
type SendNotificationRequest struct {
	StaffID       string `json:"staff_id"`
	Message       string `json:"message"`
	Priority      string `json:"priority"`
	AttachmentURL string `json:"attachment_url"`
}

// NotificationResponse is the serialized staff notification. Timestamps are
// ISO-8601 strings or null.
type NotificationResponse struct {
	ID             string  `json:"id"`
	SenderID       string  `json:"sender_id"`
	RecipientID    string  `json:"recipient_id"`
	AirportCode    *string `json:"airport_code"`
	Message        string  `json:"message"`
	Priority       string  `json:"priority"`
	Status         string  `json:"status"`
	AttachmentURL  *string `json:"attachment_url"`
	CreatedAt      *string `json:"created_at"`
	AcknowledgedAt *string `json:"acknowledged_at"`
}

// NewNotificationResponse serializes one notification.
func NewNotificationResponse(n domain.StaffNotification) NotificationResponse {
	return NotificationResponse{
		ID:             n.ID,
		SenderID:       n.SenderID,
		RecipientID:    n.RecipientID,
		AirportCode:    n.AirportCode,
		Message:        n.Message,
		Priority:       string(n.Priority),
		Status:         string(n.Status),
		AttachmentURL:  n.AttachmentURL,
		CreatedAt:      isoTime(&n.CreatedAt),
		AcknowledgedAt: isoTime(n.AcknowledgedAt),
	}
}

// NewNotificationResponses serializes a list of notifications.
func NewNotificationResponses(notifications []domain.StaffNotification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, NewNotificationResponse(n))
	}
	return out
}

func isoTime(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}
