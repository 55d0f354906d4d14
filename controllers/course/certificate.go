package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services/progress"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestCertificate submits a certificate request for a completed course.
// Completion alone never makes a certificate; an instructor reviews the
// request and only approval flips the enrollment's certificate flag.
func RequestCertificate(c *fiber.Ctx) error {
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

	if !enrollment.IsCompleted {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please complete the course before requesting a certificate!", nil)
	}

	// Check for an existing request
	var existingRequest models.CertificateRequest
	if err := database.Database.Db.Where("student_id = ? AND course_id = ?", userID, courseID).
		Order("created_at desc").First(&existingRequest).Error; err == nil {
		if existingRequest.Status == models.CertRequestPending {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate request already pending!", nil)
		}
		if existingRequest.Status == models.CertRequestApproved {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already issued!", nil)
		}
	}

	request := models.CertificateRequest{
		StudentID:    userID,
		CourseID:     uint(courseID),
		EnrollmentID: enrollment.ID,
		Status:       models.CertRequestPending,
		RequestedAt:  time.Now(),
	}

	if err := database.Database.Db.Create(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit certificate request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate request submitted successfully!", request)
}

// GetUserCertificates lists issued certificates for the current user
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	type CertificateWithCourse struct {
		models.Certificate
		CourseTitle string `json:"course_title"`
	}

	var certificates []models.Certificate
	if err := database.Database.Db.Where("student_id = ?", userID).
		Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	result := make([]CertificateWithCourse, len(certificates))
	for i, cert := range certificates {
		var course models.Course
		database.Database.Db.Where("id = ?", cert.CourseID).First(&course)
		result[i] = CertificateWithCourse{
			Certificate: cert,
			CourseTitle: course.Title,
		}
	}

	var pendingRequests int64
	database.Database.Db.Model(&models.CertificateRequest{}).
		Where("student_id = ? AND status = ?", userID, models.CertRequestPending).
		Count(&pendingRequests)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates":     result,
		"pending_requests": pendingRequests,
	})
}
