package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/airport-dashboard/internal/api/dto"
	"github.com/spec-kit/airport-dashboard/internal/auth"
	"github.com/spec-kit/airport-dashboard/internal/domain"
	"github.com/spec-kit/airport-dashboard/internal/policy"
	"github.com/spec-kit/airport-dashboard/internal/service"
	apperrors "github.com/spec-kit/airport-dashboard/pkg/util"
)

// AuthHandler exposes signup, login and logout.
type AuthHandler struct {
	identity *service.IdentityService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(identity *service.IdentityService) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// SignupPage handles GET /signup.
func (h *AuthHandler) SignupPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "signup"})
}

// Signup handles POST /signup. Always creates a passenger account.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	user, token, exp, err := h.identity.Signup(c.Context(), req.FullName, req.Email, req.Password, req.Organization)
	if err != nil {
		return err
	}

	auth.SetSessionCookie(c, token, exp)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"user":     dto.NewUserResponse(*user),
		"redirect": "/passenger",
	})
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "login", "next": c.Query("next")})
}

// Login handles POST /login. On success the session cookie is set and the
// caller is pointed at their role's landing page, or the requested next
// path.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	next := req.Next
	if next == "" {
		next = c.Query("next")
	}

	user, token, exp, err := h.identity.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	auth.SetSessionCookie(c, token, exp)
	return c.JSON(fiber.Map{
		"user":     dto.NewUserResponse(*user),
		"redirect": policy.LoginRedirect(user.Role, next),
	})
}

// Logout handles GET /logout: clears the session identity and role hint.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	auth.ClearSessionCookie(c)
	return c.Redirect("/login", http.StatusFound)
}

// identityOrNil is shared by page handlers.
func identityOrNil(c *fiber.Ctx) *domain.Identity {
	return auth.IdentityFromContext(c)
}
