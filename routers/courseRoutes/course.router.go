package courseRoutes

import (
	courseController "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	courseGroup.Get("/list", courseValidator.CourseList(), middleware.JWTMiddleware, courseController.GetAllCourses)
	courseGroup.Get("/:course_id/lesson/:lesson_id", courseValidator.CourseLessonIDs(), middleware.JWTMiddleware, courseController.GetLessonDetail)
	courseGroup.Post("/lesson/watch", courseValidator.LessonWatch(), middleware.JWTMiddleware, courseController.RecordLessonWatch)
	courseGroup.Get("/:course_id/progress", courseValidator.CourseIDParam(), middleware.JWTMiddleware, courseController.GetCourseProgress)
	courseGroup.Get("/:course_id/questions", courseValidator.CourseIDParam(), middleware.JWTMiddleware, courseController.GetCourseQuestions)
	courseGroup.Post("/question", courseValidator.CreateQuestion(), middleware.JWTMiddleware, courseController.CreateQuestion)
	courseGroup.Post("/:course_id/certificate/request", courseValidator.CourseIDParam(), middleware.JWTMiddleware, courseController.RequestCertificate)
	courseGroup.Post("/:id/enroll", courseValidator.CourseID(), middleware.JWTMiddleware, courseController.EnrollInCourse)
	courseGroup.Get("/:id", courseValidator.CourseID(), middleware.JWTMiddleware, courseController.GetCourseDetails)
}
