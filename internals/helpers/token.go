package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromToken reads the user id that AuthMiddleware stored in Locals.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("user_id").(string)
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - No user in session")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid user id")
	}
	return id, nil
}

// GetUserRoleFromToken reads the role loaded from the users table.
func GetUserRoleFromToken(c *fiber.Ctx) (string, error) {
	role, _ := c.Locals("user_role").(string)
	if role == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - No role in session")
	}
	return role, nil
}
