package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/airport-dashboard/internal/events"
)

// AuditService records identity and notification lifecycle events in the
// server log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to the lifecycle events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserCreated, a.handle)
	a.dispatcher.Subscribe(events.EventUserDeleted, a.handle)
	a.dispatcher.Subscribe(events.EventNotificationSent, a.handle)
	a.dispatcher.Subscribe(events.EventNotificationAcknowledged, a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event", string(event.Type)),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	return nil
}
