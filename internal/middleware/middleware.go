package middleware

import (
	"RecipeBook/domain"
	"RecipeBook/internal/api/presenters"
	"RecipeBook/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// token's username and role in the request locals.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, err)
		}
		username, role, err := jwtService.GetUsernameByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, err)
		}
		c.Locals("username", username)
		c.Locals("role", role)
		return c.Next()
	}
}

// OptionalAuthMiddleware resolves the username when a valid token is present
// and lets the request through anonymously otherwise. Browse endpoints use it
// to mark favourites for signed-in visitors.
func (m *middleware) OptionalAuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err == nil {
			if username, role, err := jwtService.GetUsernameByToken(token); err == nil {
				c.Locals("username", username)
				c.Locals("role", role)
			}
		}
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get("Authorization")
	if header == "" {
		return "", domain.ErrTokenNotFound
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", domain.ErrTokenInvalid
	}
	return strings.TrimPrefix(header, "Bearer "), nil
}
