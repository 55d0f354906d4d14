package userRoutes

import (
	courseController "lms/controllers/course"
	userController "lms/controllers/user"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	app.Get("/home", userController.Home)

	userGroup := app.Group("/user", middleware.JWTMiddleware)

	userGroup.Get("/dashboard", userController.Dashboard)
	userGroup.Get("/enrollments", courseController.GetUserEnrollments)
	userGroup.Get("/certificates", courseController.GetUserCertificates)
}
