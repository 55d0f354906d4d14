package authController

import (
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	authValidator "lms/validators/auth"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Signup registers a new user with a student or teacher role
func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*authValidator.SignupRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if username already exists
	if err := db.Where("username = ?", reqData.Username).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username is already taken!", nil)
	}

	// Check if email already exists
	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		FirstName: reqData.FirstName,
		LastName:  reqData.LastName,
		Username:  reqData.Username,
		Email:     reqData.Email,
		Password:  string(hashedPassword),
		Role:      reqData.Role,
		IsActive:  true,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	token, err := middleware.GenerateJWT(newUser.ID, newUser.Username, newUser.Role, newUser.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	// Clean Response
	newUser.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", fiber.Map{
		"user":  newUser,
		"token": token,
	})
}

// Login authenticates a user by username and password
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	result := db.Where("username = ? AND is_active = ?", reqData.Username, true).First(&user)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid username or password!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid username or password!", nil)
	}

	now := time.Now()
	db.Model(&user).Update("last_login", now)

	token, err := middleware.GenerateJWT(user.ID, user.Username, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"user":  user,
		"token": token,
	})
}
