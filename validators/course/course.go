package courseValidator

import (
	"lms/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ListRequest carries validated pagination values
type ListRequest struct {
	Page  int
	Limit int
}

// parsePagination reads page/limit query params with sane bounds
func parsePagination(c *fiber.Ctx) ListRequest {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "12"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 12
	}
	return ListRequest{Page: page, Limit: limit}
}

// CourseList validates pagination for the public course listing
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := parsePagination(c)
		c.Locals("validatedList", &reqData)
		return c.Next()
	}
}

// CourseID validates the :id route param
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", id)
		return c.Next()
	}
}

// CourseLessonIDs validates the :course_id and :lesson_id route params
func CourseLessonIDs() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("course_id")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		lessonID, err := strconv.Atoi(strings.TrimSpace(c.Params("lesson_id")))
		if err != nil || lessonID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("lessonID", lessonID)
		return c.Next()
	}
}

// CourseIDParam validates the :course_id route param
func CourseIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("course_id")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}
