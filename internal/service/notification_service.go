package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/airport-dashboard/internal/domain"
	"github.com/spec-kit/airport-dashboard/internal/events"
	"github.com/spec-kit/airport-dashboard/internal/policy"
	"github.com/spec-kit/airport-dashboard/internal/repository"
	apperrors "github.com/spec-kit/airport-dashboard/pkg/util"
)

// NotificationService handles the staff notification lifecycle: managers and
// admins send, the recipient acknowledges, nothing is ever deleted.
type NotificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	dispatcher    events.Dispatcher
}

// NotificationDependencies encapsulates repo requirements.
type NotificationDependencies struct {
	NotificationRepo repository.NotificationRepository
	UserRepo         repository.UserRepository
	Dispatcher       events.Dispatcher
}

// NewNotificationService builds the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	return &NotificationService{
		notifications: deps.NotificationRepo,
		users:         deps.UserRepo,
		dispatcher:    deps.Dispatcher,
	}
}

// SendInput carries a notification send request.
type SendInput struct {
	StaffID       string
	Message       string
	Priority      string
	AttachmentURL string
}

// Send creates a notification for one staff member. The airport code
// defaults to the recipient's, falling back to the sender's when the
// recipient has none.
func (s *NotificationService) Send(ctx context.Context, actor domain.Identity, input SendInput) (*domain.StaffNotification, error) {
	staffID := strings.TrimSpace(input.StaffID)
	message := strings.TrimSpace(input.Message)
	if staffID == "" || message == "" {
		return nil, apperrors.NewValidationError("Staff member and message are required.")
	}

	recipient, err := s.users.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff member")
		}
		return nil, apperrors.NewStorageError(err)
	}

	if err := policy.CanSendNotification(actor, recipient); err != nil {
		return nil, err
	}

	airportCode := actor.AirportCode
	if recipient.AirportCode != nil && *recipient.AirportCode != "" {
		airportCode = *recipient.AirportCode
	}

	notification := &domain.StaffNotification{
		ID:            uuid.NewString(),
		SenderID:      actor.ID,
		RecipientID:   recipient.ID,
		AirportCode:   optional(airportCode),
		Message:       message,
		Priority:      domain.NormalizePriority(input.Priority),
		Status:        domain.NotificationPending,
		AttachmentURL: optional(input.AttachmentURL),
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventNotificationSent,
			ActorID:   actor.ID,
			Timestamp: time.Now().UTC(),
			Payload: events.NotificationSentPayload{
				NotificationID: notification.ID,
				RecipientID:    notification.RecipientID,
				AirportCode:    airportCode,
				Priority:       notification.Priority,
			},
		})
	}
	return notification, nil
}

// Inbox bundles a staff member's received and, for senders, sent messages.
type Inbox struct {
	Notifications []domain.StaffNotification
	Sent          []domain.StaffNotification
}

// ListFor returns the actor's notifications. onlyPending filters to
// unacknowledged messages; includeSent adds the sent list for managers and
// admins.
func (s *NotificationService) ListFor(ctx context.Context, actor domain.Identity, onlyPending, includeSent bool) (*Inbox, error) {
	if !actor.Role.IsOperational() {
		return nil, apperrors.NewForbidden("Unauthorized")
	}

	received, err := s.notifications.ListByRecipient(ctx, actor.ID, onlyPending)
	if err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	inbox := &Inbox{Notifications: received}
	if includeSent && (actor.Role == domain.RoleManager || actor.Role == domain.RoleAdmin) {
		sent, err := s.notifications.ListBySender(ctx, actor.ID)
		if err != nil {
			return nil, apperrors.NewStorageError(err)
		}
		inbox.Sent = sent
	}
	return inbox, nil
}

// Acknowledge marks a notification acknowledged by its recipient. The first
// acknowledgement wins; repeats succeed without touching the timestamp.
func (s *NotificationService) Acknowledge(ctx context.Context, actor domain.Identity, notificationID string) error {
	notification, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("notification")
		}
		return apperrors.NewStorageError(err)
	}

	if err := policy.CanAcknowledge(actor, notification); err != nil {
		return err
	}

	changed, err := s.notifications.Acknowledge(ctx, notificationID, time.Now().UTC())
	if err != nil {
		return apperrors.NewStorageError(err)
	}

	if changed && s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventNotificationAcknowledged,
			ActorID:   actor.ID,
			Timestamp: time.Now().UTC(),
			Payload:   events.NotificationAcknowledgedPayload{NotificationID: notificationID},
		})
	}
	return nil
}
