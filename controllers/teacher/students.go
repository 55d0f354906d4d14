package teacherController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// GetCourseStudents lists the enrollments of an owned course, joined with the
// student record, with an optional progress filter and name/email search
func GetCourseStudents(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	course, err := ownedCourse(courseID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit := 20
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Enrollment{}).
		Joins("JOIN users ON users.id = enrollments.student_id").
		Where("enrollments.course_id = ?", courseID)

	switch c.Query("progress") {
	case "not_started":
		db = db.Where("enrollments.progress = ?", 0)
	case "in_progress":
		db = db.Where("enrollments.progress > ? AND enrollments.is_completed = ?", 0, false)
	case "completed":
		db = db.Where("enrollments.is_completed = ?", true)
	}

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		db = db.Where("users.first_name LIKE ? OR users.last_name LIKE ? OR users.username LIKE ? OR users.email LIKE ?",
			like, like, like, like)
	}

	var total int64
	db.Count(&total)

	var enrollments []models.Enrollment
	if err := db.Order("enrollments.created_at desc").
		Offset(offset).Limit(limit).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	type StudentEnrollment struct {
		models.Enrollment
		StudentName     string `json:"student_name"`
		StudentUsername string `json:"student_username"`
		StudentEmail    string `json:"student_email"`
	}

	result := make([]StudentEnrollment, len(enrollments))
	for i, enrollment := range enrollments {
		result[i] = StudentEnrollment{Enrollment: enrollment}

		var student models.User
		if err := database.Database.Db.First(&student, enrollment.StudentID).Error; err == nil {
			result[i].StudentName = student.FirstName + " " + student.LastName
			result[i].StudentUsername = student.Username
			result[i].StudentEmail = student.Email
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", fiber.Map{
		"course":   course,
		"students": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
