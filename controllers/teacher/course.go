package teacherController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	teacherValidator "lms/validators/teacher"

	"github.com/gofiber/fiber/v2"
)

// ownedCourse loads a course only if the current user is its instructor.
// Ownership failures are reported as not-found so course IDs are not probeable.
func ownedCourse(courseID int, instructorID uint) (models.Course, error) {
	var course models.Course
	err := database.Database.Db.Where("id = ? AND instructor_id = ?", courseID, instructorID).First(&course).Error
	return course, err
}

// GetTeacherCourses lists the current instructor's courses with counts
func GetTeacherCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	type CourseWithCounts struct {
		models.Course
		TotalEnrollments int64 `json:"total_enrollments"`
		TotalLessons     int64 `json:"total_lessons"`
		CompletedCount   int64 `json:"completed_count"`
	}

	var courses []models.Course
	if err := database.Database.Db.Where("instructor_id = ?", userID).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	result := make([]CourseWithCounts, len(courses))
	for i, course := range courses {
		result[i] = CourseWithCounts{Course: course}
		database.Database.Db.Model(&models.Enrollment{}).
			Where("course_id = ?", course.ID).Count(&result[i].TotalEnrollments)
		database.Database.Db.Model(&models.Lesson{}).
			Where("course_id = ? AND is_active = ?", course.ID, true).Count(&result[i].TotalLessons)
		database.Database.Db.Model(&models.Enrollment{}).
			Where("course_id = ? AND is_completed = ?", course.ID, true).Count(&result[i].CompletedCount)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
		"total":   len(result),
	})
}

// CreateCourse creates a course owned by the current instructor
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*teacherValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var category models.Category
	if err := database.Database.Db.Where("id = ? AND is_active = ?", reqData.CategoryID, true).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		BannerURL:    reqData.BannerURL,
		Price:        reqData.Price,
		Duration:     reqData.Duration,
		CategoryID:   reqData.CategoryID,
		InstructorID: userID,
		IsActive:     true,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse applies a partial update to an owned course
func UpdateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	reqData, ok := c.Locals("validatedCourseUpdate").(*teacherValidator.CourseUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := ownedCourse(courseID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	updates := make(map[string]interface{})
	if reqData.Title != "" {
		updates["title"] = reqData.Title
	}
	if reqData.Description != "" {
		updates["description"] = reqData.Description
	}
	if reqData.BannerURL != "" {
		updates["banner_url"] = reqData.BannerURL
	}
	if reqData.CategoryID != 0 {
		var category models.Category
		if err := database.Database.Db.Where("id = ? AND is_active = ?", reqData.CategoryID, true).First(&category).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
		}
		updates["category_id"] = reqData.CategoryID
	}
	if reqData.Price != nil {
		updates["price"] = *reqData.Price
	}
	if reqData.Duration != nil {
		updates["duration"] = *reqData.Duration
	}
	if reqData.IsActive != nil {
		updates["is_active"] = *reqData.IsActive
	}

	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Nothing to update.", course)
	}

	if err := database.Database.Db.Model(&course).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}
