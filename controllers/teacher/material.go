package teacherController

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	teacherValidator "lms/validators/teacher"

	"github.com/gofiber/fiber/v2"
)

// GetCourseMaterials lists all materials of an owned course
func GetCourseMaterials(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	if _, err := ownedCourse(courseID, userID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var materials []models.Material
	if err := database.Database.Db.Where("course_id = ?", courseID).
		Order("created_at desc").Find(&materials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch materials!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully!", fiber.Map{
		"materials": materials,
		"total":     len(materials),
	})
}

// CreateMaterial attaches a study material to an owned course
func CreateMaterial(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	reqData, ok := c.Locals("validatedMaterial").(*teacherValidator.MaterialRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if _, err := ownedCourse(courseID, userID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	material := models.Material{
		CourseID:    uint(courseID),
		Title:       reqData.Title,
		Description: reqData.Description,
		FileType:    reqData.FileType,
		FileURL:     reqData.FileURL,
		IsActive:    true,
	}

	if err := database.Database.Db.Create(&material).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create material!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Material created successfully!", material)
}

// UploadFile stores a multipart file (banner, video or material) and returns
// its public URL for use in a later create/update call
func UploadFile(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file provided!", nil)
	}

	savedPath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "File uploaded successfully!", fiber.Map{
		"file_url": utils.GetFileURL(savedPath),
	})
}
