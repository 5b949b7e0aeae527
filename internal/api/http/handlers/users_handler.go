package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/airport-dashboard/internal/api/dto"
	"github.com/spec-kit/airport-dashboard/internal/domain"
	"github.com/spec-kit/airport-dashboard/internal/policy"
	"github.com/spec-kit/airport-dashboard/internal/service"
	apperrors "github.com/spec-kit/airport-dashboard/pkg/util"
)

// UsersHandler exposes the user management surface for admins and managers.
type UsersHandler struct {
	identity *service.IdentityService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(identity *service.IdentityService) *UsersHandler {
	return &UsersHandler{identity: identity}
}

// List handles GET /manage-users: admins see every account, managers only
// the staff at their airport.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	id := identityOrNil(c)
	if decision := policy.CanManageUsers(id, c.Path()); decision.Denied() {
		return redirectDenied(c, decision)
	}

	users, err := h.identity.VisibleUsers(c.Context(), *id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"page":     "manage_users",
		"users":    dto.NewUserResponses(users),
		"airports": domain.Airports,
	})
}

// Manage handles POST /manage-users with a create or delete action.
func (h *UsersHandler) Manage(c *fiber.Ctx) error {
	id := identityOrNil(c)
	if decision := policy.CanManageUsers(id, c.Path()); decision.Denied() {
		return redirectDenied(c, decision)
	}

	var form dto.ManageUsersForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	switch form.Action {
	case "create":
		user, err := h.identity.CreateUser(c.Context(), *id, service.CreateUserInput{
			Email:          form.Email,
			FullName:       form.FullName,
			Role:           form.Role,
			Password:       form.Password,
			AirportCode:    form.AirportCode,
			WorkAssignment: form.WorkAssignment,
		})
		if err != nil {
			return err
		}
		return c.Status(http.StatusCreated).JSON(fiber.Map{
			"success": true,
			"user":    dto.NewUserResponse(*user),
		})
	case "delete":
		if form.UserID == "" {
			return apperrors.NewValidationError("user_id is required")
		}
		if err := h.identity.DeleteUser(c.Context(), *id, form.UserID); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true})
	default:
		return apperrors.NewValidationError("unknown action")
	}
}
