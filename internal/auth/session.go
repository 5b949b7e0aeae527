package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/airport-dashboard/internal/domain"
	"github.com/spec-kit/airport-dashboard/internal/repository"
)

const (
	identityKey   = "session_identity"
	SessionCookie = "session"
)

// SessionGate resolves the calling identity once per request. It never fails
// the request itself: an invalid token or an identifier that no longer
// resolves clears the session and the request proceeds unauthenticated.
type SessionGate struct {
	tokens *TokenManager
	users  repository.UserRepository
	logger *zap.Logger
}

// NewSessionGate constructs the gate.
func NewSessionGate(tokens *TokenManager, users repository.UserRepository, logger *zap.Logger) *SessionGate {
	return &SessionGate{tokens: tokens, users: users, logger: logger}
}

// Handle materializes exactly one detached Identity snapshot per request and
// stores it in the request locals for policy checks downstream.
func (g *SessionGate) Handle(c *fiber.Ctx) error {
	tokenStr := g.sessionToken(c)
	if tokenStr == "" {
		return c.Next()
	}

	claims, err := g.tokens.ParseToken(tokenStr)
	if err != nil {
		g.clearSession(c)
		return c.Next()
	}

	user, err := g.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			g.logger.Error("failed to load session user", zap.Error(err))
		}
		g.clearSession(c)
		return c.Next()
	}

	identity := user.Snapshot()
	c.Locals(identityKey, &identity)
	return c.Next()
}

func (g *SessionGate) sessionToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(SessionCookie); cookie != "" {
		return cookie
	}
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

func (g *SessionGate) clearSession(c *fiber.Ctx) {
	ClearSessionCookie(c)
}

// IdentityFromContext retrieves the request's identity snapshot, if any.
func IdentityFromContext(c *fiber.Ctx) *domain.Identity {
	val := c.Locals(identityKey)
	if val == nil {
		return nil
	}
	identity, ok := val.(*domain.Identity)
	if !ok {
		return nil
	}
	return identity
}

// SetSessionCookie installs the signed session token.
func SetSessionCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearSessionCookie drops the session token and role hint.
func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
