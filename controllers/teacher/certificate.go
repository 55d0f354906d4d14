package teacherController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	teacherValidator "lms/validators/teacher"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// pendingRequestForInstructor loads a certificate request only when the
// course it targets belongs to the current instructor
func pendingRequestForInstructor(requestID int, instructorID uint) (*models.CertificateRequest, error) {
	var request models.CertificateRequest
	err := database.Database.Db.
		Joins("JOIN courses ON courses.id = certificate_requests.course_id").
		Where("certificate_requests.id = ? AND courses.instructor_id = ?", requestID, instructorID).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetPendingCertificateRequests lists pending requests across the
// instructor's courses
func GetPendingCertificateRequests(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var requests []models.CertificateRequest
	if err := database.Database.Db.
		Joins("JOIN courses ON courses.id = certificate_requests.course_id").
		Where("courses.instructor_id = ? AND certificate_requests.status = ?", userID, models.CertRequestPending).
		Order("certificate_requests.requested_at asc").
		Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificate requests!", nil)
	}

	type RequestWithDetails struct {
		models.CertificateRequest
		StudentName string `json:"student_name"`
		CourseTitle string `json:"course_title"`
	}

	result := make([]RequestWithDetails, len(requests))
	for i, request := range requests {
		result[i] = RequestWithDetails{CertificateRequest: request}

		var student models.User
		if err := database.Database.Db.First(&student, request.StudentID).Error; err == nil {
			result[i].StudentName = student.FirstName + " " + student.LastName
		}
		var course models.Course
		if err := database.Database.Db.First(&course, request.CourseID).Error; err == nil {
			result[i].CourseTitle = course.Title
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate requests fetched successfully!", fiber.Map{
		"requests": result,
		"total":    len(result),
	})
}

// ApproveCertificate approves a pending request: it issues the certificate
// record and marks the enrollment certificate-ready. This is the only code
// path that sets is_certificate_ready.
func ApproveCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID := c.Locals("requestID").(int)

	request, err := pendingRequestForInstructor(requestID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	}

	if request.Status != models.CertRequestPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate request already reviewed!", nil)
	}

	now := time.Now()
	certificate := models.Certificate{
		StudentID:         request.StudentID,
		CourseID:          request.CourseID,
		CertificateNumber: "CERT-" + strings.ToUpper(uuid.NewString()[:13]),
		IssuedAt:          now,
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&certificate).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.CertificateRequest{}).Where("id = ?", request.ID).
			Updates(map[string]interface{}{
				"status":      models.CertRequestApproved,
				"reviewed_at": now,
				"reviewed_by": userID,
			}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Enrollment{}).Where("id = ?", request.EnrollmentID).
			Update("is_certificate_ready", true).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve certificate request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate issued successfully!", certificate)
}

// RejectCertificate rejects a pending request with an optional reason
func RejectCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID := c.Locals("requestID").(int)
	reqData, _ := c.Locals("validatedReject").(*teacherValidator.RejectRequest)

	request, err := pendingRequestForInstructor(requestID, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	}

	if request.Status != models.CertRequestPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate request already reviewed!", nil)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      models.CertRequestRejected,
		"reviewed_at": now,
		"reviewed_by": userID,
	}
	if reqData != nil && reqData.Reason != "" {
		updates["rejection_reason"] = reqData.Reason
	}

	if err := database.Database.Db.Model(&models.CertificateRequest{}).
		Where("id = ?", request.ID).Updates(updates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject certificate request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate request rejected.", nil)
}
