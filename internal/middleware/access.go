package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"gudang/internal/config"
	"gudang/internal/services"
)

// TokenValidator verifies bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*services.Claims, error)
}

// Access enforces the configured access policy on the routes it wraps.
// Under allow_any every request passes through untouched.
func Access(policy string, tokens TokenValidator, log *slog.Logger) fiber.Handler {
	log = log.With(slog.String("component", "access_middleware"))

	return func(c *fiber.Ctx) error {
		switch policy {
		case config.PolicyAllowAny:
			return c.Next()
		case config.PolicyAuthenticatedOrReadOnly:
			if isSafeMethod(c.Method()) {
				return c.Next()
			}
		}
		return AuthRequired(tokens, log)(c)
	}
}

// AuthRequired rejects requests without a valid "Bearer <token>" header and
// stores the token claims in the request locals.
func AuthRequired(tokens TokenValidator, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "authentication credentials were not provided")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return unauthorized(c, "authorization header format must be 'Bearer <token>'")
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			log.WarnContext(c.UserContext(), "token rejected",
				slog.String("path", c.Path()), slog.Any("error", err))
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("username", claims.Username)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, detail string) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="api"`)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": detail})
}

func isSafeMethod(method string) bool {
	switch method {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return true
	}
	return false
}
