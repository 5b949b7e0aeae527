package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/airport-dashboard/internal/api/dto"
	"github.com/spec-kit/airport-dashboard/internal/service"
	apperrors "github.com/spec-kit/airport-dashboard/pkg/util"
)

// NotificationsHandler exposes the staff notification lifecycle.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// Create handles POST /api/staff-notifications.
func (h *NotificationsHandler) Create(c *fiber.Ctx) error {
	id := identityOrNil(c)
	if id == nil {
		return apperrors.NewForbidden("Unauthorized")
	}

	var req dto.SendNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	notification, err := h.notifications.Send(c.Context(), *id, service.SendInput{
		StaffID:       req.StaffID,
		Message:       req.Message,
		Priority:      req.Priority,
		AttachmentURL: req.AttachmentURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"notification": dto.NewNotificationResponse(*notification),
	})
}

// List handles GET /api/staff/notifications. ?status=unread filters to
// pending; ?sent=true adds the sent list for managers and admins.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	id := identityOrNil(c)
	if id == nil {
		return apperrors.NewForbidden("Unauthorized")
	}

	inbox, err := h.notifications.ListFor(c.Context(), *id,
		c.Query("status") == "unread",
		c.Query("sent") == "true",
	)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"notifications":      dto.NewNotificationResponses(inbox.Notifications),
		"sent_notifications": dto.NewNotificationResponses(inbox.Sent),
	})
}

// Acknowledge handles POST /api/staff-notifications/:id/ack.
func (h *NotificationsHandler) Acknowledge(c *fiber.Ctx) error {
	id := identityOrNil(c)
	if id == nil {
		return apperrors.NewForbidden("Unauthorized")
	}

	if err := h.notifications.Acknowledge(c.Context(), *id, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
