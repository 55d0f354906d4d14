package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services/progress"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the current user in an active course
func EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	tracker := progress.NewTracker(database.Database.Db)
	enrollment, err := tracker.Enroll(userID, uint(courseID))
	switch err {
	case nil:
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
	case progress.ErrCourseNotFound:
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not active!", nil)
	case progress.ErrAlreadyEnrolled:
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}
}

// GetUserEnrollments lists the current user's enrollments with course info
func GetUserEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	type EnrollmentWithCourse struct {
		models.Enrollment
		CourseTitle    string  `json:"course_title"`
		CourseBanner   string  `json:"course_banner"`
		CourseDuration float64 `json:"course_duration"`
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.Where("student_id = ?", userID).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, enrollment := range enrollments {
		var course models.Course
		database.Database.Db.Where("id = ?", enrollment.CourseID).First(&course)
		result[i] = EnrollmentWithCourse{
			Enrollment:     enrollment,
			CourseTitle:    course.Title,
			CourseBanner:   course.BannerURL,
			CourseDuration: course.Duration,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}
