package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles allows the request through only when the role loaded by
// AuthMiddleware is in the allowed set.
func RequireRoles(errMessage string, allowed ...string) fiber.Handler {
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		if role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - No role in session")
		}
		if _, ok := allowedSet[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, errMessage)
		}
		return c.Next()
	}
}
