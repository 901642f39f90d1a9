package middleware

import (
	"strings"
	"team-planning/internal/auth"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie holds the manager session token for browser pages.
const SessionCookie = "planning_session"

// ManagerAPI requires a valid session as a Bearer token or cookie and
// answers 401 JSON otherwise.
func ManagerAPI(m *auth.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := m.Verify(sessionToken(c))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Session manager invalide ou expirée"})
		}
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// ManagerPage redirects to the login page when the session is missing.
func ManagerPage(m *auth.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := m.Verify(sessionToken(c))
		if err != nil {
			return c.Redirect("/manager/login", fiber.StatusSeeOther)
		}
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

func sessionToken(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return c.Cookies(SessionCookie)
}
