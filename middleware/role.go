package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// AuthorizeRole returns a middleware that rejects requests whose token role
// does not match the required role. Must run after JWTMiddleware.
func AuthorizeRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("userId").(uint); !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized. Please log in.", nil)
		}

		role, ok := c.Locals("role").(string)
		if !ok || role == "" {
			return JsonResponse(c, fiber.StatusForbidden, false, "Access denied. Role not found.", nil)
		}

		if role != requiredRole {
			return JsonResponse(c, fiber.StatusForbidden, false, "Access denied. You do not have the required permissions.", nil)
		}

		return c.Next()
	}
}
