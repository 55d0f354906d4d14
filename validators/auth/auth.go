package authValidator

import (
	"lms/middleware"
	"lms/models"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// SignupRequest is the validated signup payload
type SignupRequest struct {
	FirstName       string `json:"first_name" validate:"required,min=2,max=100"`
	LastName        string `json:"last_name" validate:"max=100"`
	Username        string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
	Role            string `json:"role" validate:"required"`
}

// LoginRequest is the validated login payload
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Signup validates the signup request
func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SignupRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.FirstName = strings.TrimSpace(reqData.FirstName)
		reqData.LastName = strings.TrimSpace(reqData.LastName)
		reqData.Username = strings.TrimSpace(reqData.Username)
		reqData.Email = strings.TrimSpace(reqData.Email)
		reqData.Role = strings.ToUpper(strings.TrimSpace(reqData.Role))

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[strings.ToLower(fieldErr.Field())] = "Invalid value for " + fieldErr.Field() + "!"
			}
		}

		if reqData.Password != reqData.PasswordConfirm {
			errors["password_confirm"] = "Passwords do not match!"
		}

		if reqData.Role != "" && !models.ValidRole(reqData.Role) {
			errors["role"] = "Role must be STUDENT or TEACHER!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}

// Login validates the login request
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Username = strings.TrimSpace(reqData.Username)

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[strings.ToLower(fieldErr.Field())] = "Invalid value for " + fieldErr.Field() + "!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}
