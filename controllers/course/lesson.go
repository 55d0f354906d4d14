package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services/progress"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// GetLessonDetail returns one lesson for an enrolled student, with the
// student's ledger row (created lazily on first view), navigation to the
// previous/next lesson and the lesson's questions
func GetLessonDetail(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lesson models.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_active = ?", lessonID, courseID, true).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	tracker := progress.NewTracker(database.Database.Db)

	enrollment, err := tracker.EnrollmentFor(userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You need to enroll in this course to access lessons.", nil)
	}

	// First view creates the ledger row
	lessonProgress, _, err := tracker.EnsureRecord(userID, uint(lessonID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load lesson progress!", nil)
	}

	// All active lessons in course order, for navigation
	var allLessons []models.Lesson
	database.Database.Db.Where("course_id = ? AND is_active = ?", courseID, true).
		Order("order_index asc, created_at asc").Find(&allLessons)

	var previousLesson, nextLesson *models.Lesson
	for i := range allLessons {
		if allLessons[i].ID == lesson.ID {
			if i > 0 {
				previousLesson = &allLessons[i-1]
			}
			if i < len(allLessons)-1 {
				nextLesson = &allLessons[i+1]
			}
			break
		}
	}

	var questions []models.QuestionAnswer
	database.Database.Db.Where("lesson_id = ? AND is_active = ?", lessonID, true).
		Order("created_at desc").Find(&questions)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"course":          course,
		"lesson":          newLessonView(lesson),
		"lesson_progress": lessonProgress,
		"all_lessons":     allLessons,
		"previous_lesson": previousLesson,
		"next_lesson":     nextLesson,
		"questions":       questions,
		"enrollment":      enrollment,
	})
}

// RecordLessonWatch records a watch event for a lesson and recomputes the
// owning enrollment's progress on the same request path. Returns the updated
// percentage.
func RecordLessonWatch(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedWatch").(*courseValidator.WatchRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lesson models.Lesson
	if err := database.Database.Db.First(&lesson, reqData.LessonID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	tracker := progress.NewTracker(database.Database.Db)

	enrollment, err := tracker.EnrollmentFor(userID, lesson.CourseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course.", nil)
	}

	record, err := tracker.RecordWatch(userID, reqData.LessonID, reqData.WatchTimeSeconds, reqData.MarkComplete)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record lesson progress!", nil)
	}

	// The ledger write above is committed; derive the new course percentage
	percent, err := tracker.Recompute(enrollment)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson progress recorded!", fiber.Map{
		"lesson_progress": record,
		"progress":        percent,
		"is_completed":    enrollment.IsCompleted,
	})
}

// GetCourseProgress returns the persisted progress snapshot for the current
// user plus a per-lesson completion breakdown. It never recomputes.
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	tracker := progress.NewTracker(database.Database.Db)

	enrollment, err := tracker.EnrollmentFor(userID, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course.", nil)
	}

	var lessons []models.Lesson
	database.Database.Db.Where("course_id = ? AND is_active = ?", courseID, true).
		Order("order_index asc, created_at asc").Find(&lessons)

	type LessonCompletion struct {
		LessonID         uint   `json:"lesson_id"`
		Title            string `json:"title"`
		IsCompleted      bool   `json:"is_completed"`
		WatchTimeSeconds int    `json:"watch_time_seconds"`
	}

	breakdown := make([]LessonCompletion, len(lessons))
	for i, lesson := range lessons {
		breakdown[i] = LessonCompletion{LessonID: lesson.ID, Title: lesson.Title}

		var record models.LessonProgress
		if err := database.Database.Db.Where("student_id = ? AND lesson_id = ?", userID, lesson.ID).First(&record).Error; err == nil {
			breakdown[i].IsCompleted = record.IsCompleted
			breakdown[i].WatchTimeSeconds = record.WatchTimeSeconds
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"progress":             enrollment.Progress,
		"is_completed":         enrollment.IsCompleted,
		"is_certificate_ready": enrollment.IsCertificateReady,
		"lessons":              breakdown,
	})
}
