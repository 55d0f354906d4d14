package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// QuestionWithAuthor decorates a question with its author and lesson titles
type QuestionWithAuthor struct {
	models.QuestionAnswer
	AuthorName  string `json:"author_name"`
	LessonTitle string `json:"lesson_title"`
}

// GetCourseQuestions lists questions across a course's lessons with optional
// lesson filter, search and pagination
func GetCourseQuestions(c *fiber.Ctx) error {
	_, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit := 10
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.QuestionAnswer{}).
		Joins("JOIN lessons ON lessons.id = question_answers.lesson_id").
		Where("lessons.course_id = ? AND question_answers.is_active = ?", courseID, true)

	if lessonFilter := c.QueryInt("lesson"); lessonFilter > 0 {
		db = db.Where("question_answers.lesson_id = ?", lessonFilter)
	}

	if search := c.Query("search"); search != "" {
		db = db.Where("question_answers.description LIKE ?", "%"+search+"%")
	}

	var total int64
	db.Count(&total)

	var questions []models.QuestionAnswer
	if err := db.Order("question_answers.created_at desc").
		Offset(offset).Limit(limit).Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	result := make([]QuestionWithAuthor, len(questions))
	for i, question := range questions {
		result[i] = QuestionWithAuthor{QuestionAnswer: question}

		var author models.User
		if err := database.Database.Db.First(&author, question.UserID).Error; err == nil {
			result[i].AuthorName = author.FirstName + " " + author.LastName
		}
		var lesson models.Lesson
		if err := database.Database.Db.First(&lesson, question.LessonID).Error; err == nil {
			result[i].LessonTitle = lesson.Title
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", fiber.Map{
		"questions": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// CreateQuestion posts a new question on a lesson
func CreateQuestion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*courseValidator.QuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lesson models.Lesson
	if err := database.Database.Db.Where("id = ? AND is_active = ?", reqData.LessonID, true).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	question := models.QuestionAnswer{
		UserID:      userID,
		LessonID:    reqData.LessonID,
		Description: reqData.Description,
		IsActive:    true,
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to post question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question posted successfully!", question)
}
