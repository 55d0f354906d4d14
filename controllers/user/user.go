package userController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// Dashboard returns role-appropriate stats for the current user. Students see
// their learning summary, instructors see their teaching summary.
func Dashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if user.Role == models.RoleTeacher {
		return teacherDashboard(c, user)
	}
	return studentDashboard(c, user)
}

func studentDashboard(c *fiber.Ctx, user models.User) error {
	var enrollments []models.Enrollment
	database.Database.Db.Where("student_id = ?", user.ID).
		Order("created_at desc").Find(&enrollments)

	var completedCount, certificatesEarned int
	var totalHours float64

	type DashboardEnrollment struct {
		models.Enrollment
		CourseTitle  string `json:"course_title"`
		CourseBanner string `json:"course_banner"`
	}

	recent := make([]DashboardEnrollment, len(enrollments))
	for i, enrollment := range enrollments {
		if enrollment.IsCompleted {
			completedCount++
		}
		if enrollment.IsCertificateReady {
			certificatesEarned++
		}

		recent[i] = DashboardEnrollment{Enrollment: enrollment}
		var course models.Course
		if err := database.Database.Db.First(&course, enrollment.CourseID).Error; err == nil {
			recent[i].CourseTitle = course.Title
			recent[i].CourseBanner = course.BannerURL
			totalHours += course.Duration
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"role":                models.RoleStudent,
		"user":                user,
		"enrollments":         recent,
		"enrolled_count":      len(enrollments),
		"completed_count":     completedCount,
		"certificates_earned": certificatesEarned,
		"total_hours":         totalHours,
	})
}

func teacherDashboard(c *fiber.Ctx, user models.User) error {
	var courses []models.Course
	database.Database.Db.Where("instructor_id = ?", user.ID).
		Order("created_at desc").Find(&courses)

	var totalStudents int64
	var totalHours float64

	type DashboardCourse struct {
		models.Course
		TotalEnrollments int64 `json:"total_enrollments"`
	}

	result := make([]DashboardCourse, len(courses))
	for i, course := range courses {
		result[i] = DashboardCourse{Course: course}
		database.Database.Db.Model(&models.Enrollment{}).
			Where("course_id = ?", course.ID).Count(&result[i].TotalEnrollments)
		totalStudents += result[i].TotalEnrollments
		totalHours += course.Duration
	}

	var pendingRequests int64
	database.Database.Db.Model(&models.CertificateRequest{}).
		Joins("JOIN courses ON courses.id = certificate_requests.course_id").
		Where("courses.instructor_id = ? AND certificate_requests.status = ?", user.ID, models.CertRequestPending).
		Count(&pendingRequests)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"role":             models.RoleTeacher,
		"user":             user,
		"courses":          result,
		"course_count":     len(courses),
		"total_students":   totalStudents,
		"total_hours":      totalHours,
		"pending_requests": pendingRequests,
	})
}

// Home returns the public landing page stats. No authentication required.
func Home(c *fiber.Ctx) error {
	var activeCourses, activeCategories, studentCount, teacherCount int64

	database.Database.Db.Model(&models.Course{}).Where("is_active = ?", true).Count(&activeCourses)
	database.Database.Db.Model(&models.Category{}).Where("is_active = ?", true).Count(&activeCategories)
	database.Database.Db.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleStudent, true).Count(&studentCount)
	database.Database.Db.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleTeacher, true).Count(&teacherCount)

	var latestCourses []models.Course
	database.Database.Db.Where("is_active = ?", true).
		Order("created_at desc").Limit(6).Find(&latestCourses)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Home stats fetched successfully!", fiber.Map{
		"total_courses":    activeCourses,
		"total_categories": activeCategories,
		"total_students":   studentCount,
		"total_teachers":   teacherCount,
		"latest_courses":   latestCourses,
	})
}
