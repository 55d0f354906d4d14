package teacherController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services/progress"
	"lms/utils"
	teacherValidator "lms/validators/teacher"

	"github.com/gofiber/fiber/v2"
)

// GetCourseLessons lists all lessons of an owned course (active or not) with
// per-lesson completion stats
func GetCourseLessons(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	course, err := ownedCourse(courseID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lessons []models.Lesson
	if err := database.Database.Db.Where("course_id = ?", courseID).
		Order("order_index asc, created_at asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	var totalEnrolled int64
	database.Database.Db.Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).Count(&totalEnrolled)

	type LessonWithStats struct {
		models.Lesson
		CompletedCount int64   `json:"completed_count"`
		CompletionRate float64 `json:"completion_rate"`
	}

	result := make([]LessonWithStats, len(lessons))
	for i, lesson := range lessons {
		result[i] = LessonWithStats{Lesson: lesson}
		database.Database.Db.Model(&models.LessonProgress{}).
			Where("lesson_id = ? AND is_completed = ?", lesson.ID, true).
			Count(&result[i].CompletedCount)
		if totalEnrolled > 0 {
			result[i].CompletionRate = float64(result[i].CompletedCount) / float64(totalEnrolled) * 100
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", fiber.Map{
		"course":         course,
		"lessons":        result,
		"total_enrolled": totalEnrolled,
	})
}

// CreateLesson adds a lesson to an owned course. For YouTube lessons the
// oEmbed endpoint is consulted to fill in a missing description.
func CreateLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	reqData, ok := c.Locals("validatedLesson").(*teacherValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if _, err := ownedCourse(courseID, userID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	lesson := models.Lesson{
		CourseID:        uint(courseID),
		Title:           reqData.Title,
		Description:     reqData.Description,
		LessonType:      reqData.LessonType,
		OrderIndex:      reqData.OrderIndex,
		DurationMinutes: reqData.DurationMinutes,
		IsActive:        true,
	}

	switch reqData.LessonType {
	case models.LessonTypeYoutube:
		if utils.YoutubeVideoID(reqData.YoutubeURL) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unrecognizable YouTube URL!", nil)
		}
		lesson.YoutubeURL = reqData.YoutubeURL
		if lesson.Description == "" {
			// Best effort; the lesson is created either way
			if meta, err := utils.FetchYoutubeMetadata(reqData.YoutubeURL); err == nil {
				lesson.Description = meta.Title + " by " + meta.AuthorName
			}
		}
	case models.LessonTypeUpload:
		lesson.VideoURL = reqData.VideoURL
	case models.LessonTypeText:
		lesson.TextContent = reqData.TextContent
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// UpdateLesson replaces a lesson's content. Switching the lesson type clears
// the content fields of the previous type.
func UpdateLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)
	reqData, ok := c.Locals("validatedLesson").(*teacherValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if _, err := ownedCourse(courseID, userID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lesson models.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ?", lessonID, courseID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	updates := map[string]interface{}{
		"title":            reqData.Title,
		"description":      reqData.Description,
		"lesson_type":      reqData.LessonType,
		"order_index":      reqData.OrderIndex,
		"duration_minutes": reqData.DurationMinutes,
		"youtube_url":      "",
		"video_url":        "",
		"text_content":     "",
	}

	switch reqData.LessonType {
	case models.LessonTypeYoutube:
		if utils.YoutubeVideoID(reqData.YoutubeURL) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unrecognizable YouTube URL!", nil)
		}
		updates["youtube_url"] = reqData.YoutubeURL
	case models.LessonTypeUpload:
		updates["video_url"] = reqData.VideoURL
	case models.LessonTypeText:
		updates["text_content"] = reqData.TextContent
	}

	if err := database.Database.Db.Model(&lesson).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// SetLessonActive toggles a lesson's active flag. Because only active lessons
// count toward completion, every enrollment in the course is recomputed right
// here on the request path.
func SetLessonActive(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)
	isActive := c.Locals("lessonActive").(bool)

	if _, err := ownedCourse(courseID, userID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lesson models.Lesson
	if err := database.Database.Db.Where("id = ? AND course_id = ?", lessonID, courseID).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if lesson.IsActive != isActive {
		if err := database.Database.Db.Model(&lesson).Update("is_active", isActive).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
		}

		tracker := progress.NewTracker(database.Database.Db)
		var enrollments []models.Enrollment
		database.Database.Db.Where("course_id = ?", courseID).Find(&enrollments)
		for i := range enrollments {
			if _, err := tracker.Recompute(&enrollments[i]); err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to recompute course progress!", nil)
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}
