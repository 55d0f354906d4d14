package teacherController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	teacherValidator "lms/validators/teacher"

	"github.com/gofiber/fiber/v2"
)

// GetCategories lists active categories with per-category course counts
func GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.Where("is_active = ?", true).
		Order("title asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	type CategoryWithCount struct {
		models.Category
		CourseCount int64 `json:"course_count"`
	}

	result := make([]CategoryWithCount, len(categories))
	for i, category := range categories {
		result[i] = CategoryWithCount{Category: category}
		database.Database.Db.Model(&models.Course{}).
			Where("category_id = ? AND is_active = ?", category.ID, true).
			Count(&result[i].CourseCount)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", result)
}

// CreateCategory creates a course category
func CreateCategory(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCategory").(*teacherValidator.CategoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var existing models.Category
	if err := database.Database.Db.Where("title = ?", reqData.Title).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category already exists!", nil)
	}

	category := models.Category{
		Title:    reqData.Title,
		IsActive: true,
	}

	if err := database.Database.Db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}
