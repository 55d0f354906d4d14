package teacherValidator

import (
	"lms/middleware"
	"lms/models"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CourseRequest is the authoring payload for creating or updating a course
type CourseRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=255"`
	Description string  `json:"description" validate:"required,min=5"`
	CategoryID  uint    `json:"category_id" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Duration    float64 `json:"duration" validate:"gte=0"`
	BannerURL   string  `json:"banner_url"`
}

// CourseUpdateRequest allows partial updates; empty fields are left unchanged
type CourseUpdateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CategoryID  uint     `json:"category_id"`
	Price       *float64 `json:"price"`
	Duration    *float64 `json:"duration"`
	BannerURL   string   `json:"banner_url"`
	IsActive    *bool    `json:"is_active"`
}

// LessonRequest is the authoring payload for a lesson
type LessonRequest struct {
	Title           string `json:"title" validate:"required,min=3,max=255"`
	Description     string `json:"description"`
	LessonType      string `json:"lesson_type" validate:"required,oneof=YOUTUBE UPLOAD TEXT"`
	YoutubeURL      string `json:"youtube_url"`
	VideoURL        string `json:"video_url"`
	TextContent     string `json:"text_content"`
	OrderIndex      int    `json:"order" validate:"gte=0"`
	DurationMinutes int    `json:"duration_minutes" validate:"gte=0"`
}

// MaterialRequest is the authoring payload for a course material
type MaterialRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=255"`
	Description string `json:"description"`
	FileType    string `json:"file_type" validate:"required"`
	FileURL     string `json:"file_url" validate:"required"`
}

// CategoryRequest is the payload for creating a category
type CategoryRequest struct {
	Title string `json:"title" validate:"required,min=2,max=255"`
}

// RejectRequest carries an optional rejection reason
type RejectRequest struct {
	Reason string `json:"reason"`
}

func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		errors[strings.ToLower(fieldErr.Field())] = "Invalid value for " + fieldErr.Field() + "!"
	}
	return errors
}

func paramID(c *fiber.Ctx, name string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(c.Params(name)))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// checkLessonContent enforces the content field matching the lesson type
func checkLessonContent(reqData *LessonRequest, errors map[string]string) {
	switch reqData.LessonType {
	case models.LessonTypeYoutube:
		if strings.TrimSpace(reqData.YoutubeURL) == "" {
			errors["youtube_url"] = "YouTube URL is required for YouTube lessons!"
		}
	case models.LessonTypeUpload:
		if strings.TrimSpace(reqData.VideoURL) == "" {
			errors["video_url"] = "Video URL is required for uploaded video lessons!"
		}
	case models.LessonTypeText:
		if strings.TrimSpace(reqData.TextContent) == "" {
			errors["text_content"] = "Text content is required for text lessons!"
		}
	}
}

// CreateCourse validates course creation
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates course updates
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := paramID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(CourseUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		errors := make(map[string]string)
		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Description != "" && len(reqData.Description) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}
		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price must not be negative!"
		}
		if reqData.Duration != nil && *reqData.Duration < 0 {
			errors["duration"] = "Duration must not be negative!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseID validates the :id route param
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := paramID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// CreateLesson validates lesson creation under /:id
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := paramID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(LessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.LessonType = strings.ToUpper(strings.TrimSpace(reqData.LessonType))

		errors := make(map[string]string)
		if err := validate.Struct(reqData); err != nil {
			errors = validationErrors(err)
		}
		checkLessonContent(reqData, errors)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// UpdateLesson validates lesson updates under /:course_id/lesson/:lesson_id
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := paramID(c, "course_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		lessonID, ok := paramID(c, "lesson_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		reqData := new(LessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.LessonType = strings.ToUpper(strings.TrimSpace(reqData.LessonType))

		errors := make(map[string]string)
		if err := validate.Struct(reqData); err != nil {
			errors = validationErrors(err)
		}
		checkLessonContent(reqData, errors)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("lessonID", lessonID)
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// LessonActive validates the payload toggling a lesson's active flag
func LessonActive() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := paramID(c, "course_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}
		lessonID, ok := paramID(c, "lesson_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lesson ID!", nil)
		}

		reqData := new(struct {
			IsActive bool `json:"is_active"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("lessonID", lessonID)
		c.Locals("lessonActive", reqData.IsActive)
		return c.Next()
	}
}

// CreateMaterial validates material creation under /:id
func CreateMaterial() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := paramID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		reqData := new(MaterialRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedMaterial", reqData)
		return c.Next()
	}
}

// CreateCategory validates category creation
func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CategoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

// RequestID validates the :request_id route param, with an optional body
// carrying a rejection reason
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, ok := paramID(c, "request_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Request ID!", nil)
		}

		reqData := new(RejectRequest)
		// Body is optional for approvals
		_ = c.BodyParser(reqData)

		c.Locals("requestID", requestID)
		c.Locals("validatedReject", reqData)
		return c.Next()
	}
}
