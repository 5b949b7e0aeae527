package domain

import (
	"strings"
	"time"
)

// NotificationPriority orders staff notifications for display.
type NotificationPriority string

const (
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

// NormalizePriority lowers and validates a priority token; anything
// unrecognized coerces to normal rather than failing the send.
func NormalizePriority(raw string) NotificationPriority {
	switch NotificationPriority(strings.ToLower(strings.TrimSpace(raw))) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityUrgent:
		return PriorityUrgent
	default:
		return PriorityNormal
	}
}

// NotificationStatus tracks the acknowledgement lifecycle.
type NotificationStatus string

const (
	NotificationPending      NotificationStatus = "pending"
	NotificationAcknowledged NotificationStatus = "acknowledged"
)

// StaffNotification is a directed message from a manager or admin to one
// staff member. It is mutated exactly once, pending to acknowledged, by the
// recipient; there is no delete path.
type StaffNotification struct {
	ID             string
	SenderID       string
	RecipientID    string
	AirportCode    *string
	Message        string
	Priority       NotificationPriority
	Status         NotificationStatus
	AttachmentURL  *string
	CreatedAt      time.Time
	AcknowledgedAt *time.Time
}
