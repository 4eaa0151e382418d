package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"nomia/internal/model"
	"nomia/internal/repository"
)

// UserLocalKey is the key under which the authenticated user is stored
// in Fiber's context locals.
const UserLocalKey = "user"

// sessionCookie is the fallback token source when no Authorization
// header is present.
const sessionCookie = "session"

// msgUnauthorized is the user-facing message for missing or invalid sessions.
const msgUnauthorized = "You must be logged in to access this resource"

// Authenticate resolves the request's session token to a user and
// stores it in context locals. Requests without a valid session get a
// 401 with a JSON error body.
func Authenticate(sessions repository.SessionRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			token = c.Cookies(sessionCookie)
		}
		if token == "" {
			return unauthorized(c)
		}

		user, err := sessions.FindUserByToken(c.UserContext(), token)
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(UserLocalKey, user)
		return c.Next()
	}
}

// UserFromCtx returns the authenticated user stored by Authenticate,
// or nil when the request is anonymous.
func UserFromCtx(c *fiber.Ctx) *model.User {
	u, _ := c.Locals(UserLocalKey).(*model.User)
	return u
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msgUnauthorized})
}
