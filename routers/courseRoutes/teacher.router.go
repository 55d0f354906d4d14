package courseRoutes

import (
	teacherController "lms/controllers/teacher"
	"lms/middleware"
	"lms/models"
	teacherValidator "lms/validators/teacher"

	"github.com/gofiber/fiber/v2"
)

func SetupTeacherRoutes(app *fiber.App) {
	teacherGroup := app.Group("/teacher", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher))

	teacherGroup.Get("/courses", teacherController.GetTeacherCourses)
	teacherGroup.Post("/course", teacherValidator.CreateCourse(), teacherController.CreateCourse)
	teacherGroup.Put("/course/:id", teacherValidator.UpdateCourse(), teacherController.UpdateCourse)

	teacherGroup.Get("/course/:id/lessons", teacherValidator.CourseID(), teacherController.GetCourseLessons)
	teacherGroup.Post("/course/:id/lesson", teacherValidator.CreateLesson(), teacherController.CreateLesson)
	teacherGroup.Put("/course/:course_id/lesson/:lesson_id", teacherValidator.UpdateLesson(), teacherController.UpdateLesson)
	teacherGroup.Patch("/course/:course_id/lesson/:lesson_id/active", teacherValidator.LessonActive(), teacherController.SetLessonActive)

	teacherGroup.Get("/course/:id/materials", teacherValidator.CourseID(), teacherController.GetCourseMaterials)
	teacherGroup.Post("/course/:id/material", teacherValidator.CreateMaterial(), teacherController.CreateMaterial)
	teacherGroup.Post("/upload", teacherController.UploadFile)

	teacherGroup.Get("/categories", teacherController.GetCategories)
	teacherGroup.Post("/category", teacherValidator.CreateCategory(), teacherController.CreateCategory)

	teacherGroup.Get("/course/:id/students", teacherValidator.CourseID(), teacherController.GetCourseStudents)

	teacherGroup.Get("/certificates/pending", teacherController.GetPendingCertificateRequests)
	teacherGroup.Post("/certificate/:request_id/approve", teacherValidator.RequestID(), teacherController.ApproveCertificate)
	teacherGroup.Post("/certificate/:request_id/reject", teacherValidator.RequestID(), teacherController.RejectCertificate)
}
