package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "collabsphere_backend/internals/helpers"
)

// OnlyRoles gates a route group to the given roles.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(string)
		if !ok {
			return helper.Error(c, fiber.StatusUnauthorized, helper.KindForbidden, "Unauthorized: missing role information")
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		if customMessage == "" {
			customMessage = "Forbidden: you are not authorized to access this resource"
		}
		return helper.Error(c, fiber.StatusForbidden, helper.KindForbidden, customMessage)
	}
}
