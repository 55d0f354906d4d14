package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services/progress"
	"lms/utils"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// LessonView is a lesson enriched with derived playback URLs
type LessonView struct {
	models.Lesson
	EmbedURL     string `json:"embed_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

func newLessonView(lesson models.Lesson) LessonView {
	view := LessonView{Lesson: lesson}
	if lesson.LessonType == models.LessonTypeYoutube {
		view.EmbedURL = utils.YoutubeEmbedURL(lesson.YoutubeURL)
		view.ThumbnailURL = utils.YoutubeThumbnailURL(lesson.YoutubeURL)
	}
	return view
}

// GetAllCourses lists active courses with search, filters, sorting and pagination
func GetAllCourses(c *fiber.Ctx) error {
	_, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedList").(*courseValidator.ListRequest)
	if !ok {
		reqData = &courseValidator.ListRequest{Page: 1, Limit: 12}
	}
	offset := (reqData.Page - 1) * reqData.Limit

	db := database.Database.Db.Model(&models.Course{}).Where("is_active = ?", true)

	// Search across title and description
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		db = db.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	// Category filter
	if category := c.QueryInt("category"); category > 0 {
		db = db.Where("category_id = ?", category)
	}

	// Price filter
	switch c.Query("price") {
	case "free":
		db = db.Where("price = 0")
	case "paid":
		db = db.Where("price > 0")
	}

	// Sort: newest, price_low, price_high, default popular (by enrollments)
	switch c.Query("sort", "popular") {
	case "newest":
		db = db.Order("created_at desc")
	case "price_low":
		db = db.Order("price asc")
	case "price_high":
		db = db.Order("price desc")
	default:
		db = db.Order("(SELECT COUNT(*) FROM enrollments WHERE enrollments.course_id = courses.id AND enrollments.deleted_at IS NULL) desc")
	}

	var total int64
	db.Count(&total)

	var courses []models.Course
	if err := db.Offset(offset).Limit(reqData.Limit).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	var categories []models.Category
	database.Database.Db.Where("is_active = ?", true).Find(&categories)

	response := map[string]interface{}{
		"courses":    courses,
		"categories": categories,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails returns one active course with its lessons, materials,
// enrollment state and related courses
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lessons []models.Lesson
	database.Database.Db.Where("course_id = ? AND is_active = ?", courseID, true).
		Order("order_index asc, created_at asc").Find(&lessons)

	lessonViews := make([]LessonView, len(lessons))
	for i, lesson := range lessons {
		lessonViews[i] = newLessonView(lesson)
	}

	var materials []models.Material
	database.Database.Db.Where("course_id = ? AND is_active = ?", courseID, true).
		Order("created_at asc").Find(&materials)

	// Enrollment state for the requesting user
	tracker := progress.NewTracker(database.Database.Db)
	enrollment, err := tracker.EnrollmentFor(userID, uint(courseID))
	isEnrolled := err == nil

	var totalEnrollments int64
	database.Database.Db.Model(&models.Enrollment{}).Where("course_id = ?", courseID).Count(&totalEnrollments)

	var relatedCourses []models.Course
	database.Database.Db.Where("category_id = ? AND is_active = ? AND id <> ?", course.CategoryID, true, course.ID).
		Limit(3).Find(&relatedCourses)

	response := fiber.Map{
		"course":            course,
		"lessons":           lessonViews,
		"materials":         materials,
		"is_enrolled":       isEnrolled,
		"total_enrollments": totalEnrollments,
		"related_courses":   relatedCourses,
	}
	if isEnrolled {
		response["enrollment"] = enrollment
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", response)
}
