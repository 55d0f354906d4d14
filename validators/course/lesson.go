package courseValidator

import (
	"lms/middleware"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// WatchRequest is a lesson watch event reported by the player
type WatchRequest struct {
	LessonID         uint `json:"lesson_id" validate:"required,gt=0"`
	WatchTimeSeconds int  `json:"watch_time_seconds" validate:"gte=0"`
	MarkComplete     bool `json:"mark_complete"`
}

// QuestionRequest is a new forum question on a lesson
type QuestionRequest struct {
	LessonID    uint   `json:"lesson_id" validate:"required,gt=0"`
	Description string `json:"description" validate:"required,min=5"`
}

// LessonWatch validates the watch event payload
func LessonWatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(WatchRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[strings.ToLower(fieldErr.Field())] = "Invalid value for " + fieldErr.Field() + "!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedWatch", reqData)
		return c.Next()
	}
}

// CreateQuestion validates a new question payload
func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(QuestionRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Description = strings.TrimSpace(reqData.Description)

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[strings.ToLower(fieldErr.Field())] = "Invalid value for " + fieldErr.Field() + "!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}
