package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseRoutes "lms/routers/courseRoutes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	config.AppConfig = &config.Config{
		Port:      "3000",
		JWTKey:    "test-secret",
		SaltRound: 4,
		UploadDir: t.TempDir(),
	}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupTeacherRoutes(app)
	return app
}

func seedCourseWithLessons(t *testing.T, lessonCount int) (student models.User, instructor models.User, course models.Course, lessons []models.Lesson) {
	t.Helper()
	db := database.Database.Db

	student = models.User{FirstName: "Asha", LastName: "Rao", Username: "asha", Email: "asha@example.com", Role: models.RoleStudent, IsActive: true}
	require.NoError(t, db.Create(&student).Error)

	instructor = models.User{FirstName: "Vik", LastName: "Shah", Username: "vik", Email: "vik@example.com", Role: models.RoleTeacher, IsActive: true}
	require.NoError(t, db.Create(&instructor).Error)

	category := models.Category{Title: "Engineering", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	course = models.Course{Title: "Distributed Systems", Description: "From logs to consensus", Price: 99, Duration: 12, CategoryID: category.ID, InstructorID: instructor.ID, IsActive: true}
	require.NoError(t, db.Create(&course).Error)

	for i := 0; i < lessonCount; i++ {
		lesson := models.Lesson{
			CourseID:    course.ID,
			Title:       fmt.Sprintf("Lesson %d", i+1),
			LessonType:  models.LessonTypeText,
			TextContent: "notes",
			OrderIndex:  i,
			IsActive:    true,
		}
		require.NoError(t, db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}
	return student, instructor, course, lessons
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestEnrollWatchProgressFlow(t *testing.T) {
	app := setupApp(t)
	student, instructor, course, lessons := seedCourseWithLessons(t, 2)

	studentToken, err := middleware.GenerateJWT(student.ID, student.Username, student.Role, student.Email)
	require.NoError(t, err)
	instructorToken, err := middleware.GenerateJWT(instructor.ID, instructor.Username, instructor.Role, instructor.Email)
	require.NoError(t, err)

	// Enroll, then verify the duplicate is rejected
	resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Complete the first of two lessons: 50%
	resp, env := doJSON(t, app, http.MethodPost, "/course/lesson/watch", studentToken, fiber.Map{
		"lesson_id":          lessons[0].ID,
		"watch_time_seconds": 120,
		"mark_complete":      true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var watchResult struct {
		Progress    int  `json:"progress"`
		IsCompleted bool `json:"is_completed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &watchResult))
	require.Equal(t, 50, watchResult.Progress)
	require.False(t, watchResult.IsCompleted)

	// The progress endpoint serves the persisted snapshot
	resp, env = doJSON(t, app, http.MethodGet, fmt.Sprintf("/course/%d/progress", course.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snapshot struct {
		Progress           int  `json:"progress"`
		IsCompleted        bool `json:"is_completed"`
		IsCertificateReady bool `json:"is_certificate_ready"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &snapshot))
	require.Equal(t, 50, snapshot.Progress)
	require.False(t, snapshot.IsCompleted)
	require.False(t, snapshot.IsCertificateReady)

	// Complete the second lesson: 100%, course completed
	resp, env = doJSON(t, app, http.MethodPost, "/course/lesson/watch", studentToken, fiber.Map{
		"lesson_id":          lessons[1].ID,
		"watch_time_seconds": 90,
		"mark_complete":      true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &watchResult))
	require.Equal(t, 100, watchResult.Progress)

	// Completion alone never flips the certificate flag
	resp, env = doJSON(t, app, http.MethodGet, fmt.Sprintf("/course/%d/progress", course.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &snapshot))
	require.Equal(t, 100, snapshot.Progress)
	require.True(t, snapshot.IsCompleted)
	require.False(t, snapshot.IsCertificateReady)

	// Request a certificate; the instructor approves it
	resp, env = doJSON(t, app, http.MethodPost, fmt.Sprintf("/course/%d/certificate/request", course.ID), studentToken, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var request models.CertificateRequest
	require.NoError(t, json.Unmarshal(env.Data, &request))

	resp, env = doJSON(t, app, http.MethodPost, fmt.Sprintf("/teacher/certificate/%d/approve", request.ID), instructorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var certificate models.Certificate
	require.NoError(t, json.Unmarshal(env.Data, &certificate))
	require.NotEmpty(t, certificate.CertificateNumber)

	// Only the approval path sets is_certificate_ready
	resp, env = doJSON(t, app, http.MethodGet, fmt.Sprintf("/course/%d/progress", course.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &snapshot))
	require.True(t, snapshot.IsCertificateReady)
}

func TestWatchRequiresEnrollment(t *testing.T) {
	app := setupApp(t)
	student, _, _, lessons := seedCourseWithLessons(t, 1)

	token, err := middleware.GenerateJWT(student.ID, student.Username, student.Role, student.Email)
	require.NoError(t, err)

	resp, _ := doJSON(t, app, http.MethodPost, "/course/lesson/watch", token, fiber.Map{
		"lesson_id":          lessons[0].ID,
		"watch_time_seconds": 30,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestTeacherRoutesRejectStudents(t *testing.T) {
	app := setupApp(t)
	student, _, _, _ := seedCourseWithLessons(t, 1)

	token, err := middleware.GenerateJWT(student.ID, student.Username, student.Role, student.Email)
	require.NoError(t, err)

	resp, _ := doJSON(t, app, http.MethodGet, "/teacher/courses", token, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCertificateRequestNeedsCompletion(t *testing.T) {
	app := setupApp(t)
	student, _, course, _ := seedCourseWithLessons(t, 2)

	token, err := middleware.GenerateJWT(student.ID, student.Username, student.Role, student.Email)
	require.NoError(t, err)

	resp, _ := doJSON(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/course/%d/certificate/request", course.ID), token, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
