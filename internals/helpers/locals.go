// file: internals/helpers/locals.go
package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys set by the auth middleware. Keep these uniform across the app.
const (
	LocalsUserID   = "user_id"
	LocalsUserRole = "userRole"
)

// GetUserUUID returns the authenticated caller's id from locals.
func GetUserUUID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(LocalsUserID).(string)
	if !ok || raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: missing user id")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: malformed user id")
	}
	return id, nil
}

// GetUserRole returns the caller's role from locals.
func GetUserRole(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals(LocalsUserRole).(string)
	if !ok || role == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: missing role information")
	}
	return role, nil
}
