package middleware

import (
	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireRole returns a middleware that only lets through users whose stored
// role matches. The role is re-read from the database so a stale token cannot
// outlive a role change.
func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "Unauthorized: User ID not found",
				"data":    nil,
			})
		}

		var user models.User
		err := database.Database.Db.Where("id = ? AND is_active = ?", userID, true).First(&user).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"status":  false,
					"message": "User not found!",
					"data":    nil,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  false,
				"message": "Server error while checking role!",
				"data":    nil,
			})
		}

		if user.Role != requiredRole {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  false,
				"message": "You do not have permission to access this resource!",
				"data":    nil,
			})
		}

		c.Locals("role", user.Role)
		return c.Next()
	}
}
