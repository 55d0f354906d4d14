package progress

import (
	"fmt"
	"lms/database"
	"lms/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB) models.User {
	t.Helper()

	user := models.User{
		Username: "student1",
		Email:    "student1@example.com",
		Password: "hashed",
		Role:     models.RoleStudent,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, active bool, price float64) models.Course {
	t.Helper()

	category := models.Category{Title: "Programming", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	course := models.Course{
		Title:        "Go from scratch",
		Description:  "An introductory Go course",
		Price:        price,
		Duration:     12,
		CategoryID:   category.ID,
		InstructorID: 99,
		IsActive:     active,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func seedLessons(t *testing.T, db *gorm.DB, courseID uint, count int) []models.Lesson {
	t.Helper()

	lessons := make([]models.Lesson, count)
	for i := 0; i < count; i++ {
		lessons[i] = models.Lesson{
			CourseID:   courseID,
			Title:      "Lesson",
			LessonType: models.LessonTypeText,
			OrderIndex: i,
			IsActive:   true,
		}
		require.NoError(t, db.Create(&lessons[i]).Error)
	}
	return lessons
}

func TestEnrollCreatesSnapshot(t *testing.T) {
	db := setupDB(t)
	tracker := NewTracker(db)
	student := seedStudent(t, db)
	course := seedCourse(t, db, true, 49.99)

	enrollment, err := tracker.Enroll(student.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, enrollment.Progress)
	assert.False(t, enrollment.IsCompleted)
	assert.Equal(t, 49.99, enrollment.Price)

	// Later price changes must not alter the snapshot
	require.NoError(t, db.Model(&models.Course{}).Where("id = ?", course.ID).Update("price", 99.99).Error)

	var stored models.Enrollment
	require.NoError(t, db.First(&stored, enrollment.ID).Error)
	assert.Equal(t, 49.99, stored.Price)
}

func TestEnrollDuplicateReturnsConflict(t *testing.T) {
	db := setupDB(t)
	tracker := NewTracker(db)
	student := seedStudent(t, db)
	course := seedCourse(t, db, true, 0)

	_, err := tracker.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	_, err = tracker.Enroll(student.ID, course.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	var count int64
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnrollInactiveCourse(t *testing.T) {
	db := setupDB(t)
	tracker := NewTracker(db)
	student := seedStudent(t, db)
	course := seedCourse(t, db, false, 0)

	_, err := tracker.Enroll(student.ID, course.ID)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestRecordWatchUnknownLesson(t *testing.T) {
	db := setupDB(t)
	tracker := NewTracker(db)
	student := seedStudent(t, db)

	_, err := tracker.RecordWatch(student.ID, 12345, 10, true)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

func TestRecordWatchCompletionIsIdempotent(t *testing.T) {
	db := setupDB(t)
	tracker := NewTracker(db)
	student := seedStudent(t, db)
	course := seedCourse(t, db, true, 0)
	lessons := seedLessons(t, db, course.ID, 1)

	first, err := tracker.RecordWatch(student.ID, lessons[0].ID, 120, true)
	require.NoError(t, err)
	require.True(t, first.IsCompleted)
	require.NotNil(t, first.CompletedAt)
	firstCompletedAt := *first.CompletedAt

	time.Sleep(10 * time.Millisecond)

	second, err := tracker.RecordWatch(student.ID, lessons[0].ID, 120, true)
	require.NoError(t, err)
	assert.True(t, second.IsCompleted)
	require.NotNil(t, second.CompletedAt)
	assert.True(t, second.CompletedAt.Equal(firstCompletedAt), "completed_at must keep its first-completion value")

	var count int64
	require.NoError(t, db.Model(&models.LessonProgress{}).
		Where("student_id = ? AND lesson_id = ?", student.ID, lessons[0].ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRecordWatchProgression(t *testing.T) {
	db := setupDB(t)
	tracker := NewTracker(db)
	student := seedStudent(t, db)
	course := seedCourse(t, db, true, 0)
	lessons := seedLessons(t, db, course.ID, 1)
	lessonID := lessons[0].ID

	// Partial watch, not yet complete
	rec, err := tracker.RecordWatch(student.ID, lessonID, 30, false)
	require.NoError(t, err)
	assert.False(t, rec.IsCompleted)
	assert.Equal(t, 30, rec.WatchTimeSeconds)
	assert.Nil(t, rec.CompletedAt)

	// Later watch completes the lesson
	rec, err = tracker.RecordWatch(student.ID, lessonID, 300, true)
	require.NoError(t, err)
	assert.True(t, rec.IsCompleted)
	assert.Equal(t, 300, rec.WatchTimeSeconds)
	require.NotNil(t, rec.CompletedAt)

	// A stale replay must not regress the completed record
	rec, err = tracker.RecordWatch(student.ID, lessonID, 10, true)
	require.NoError(t, err)
	assert.True(t, rec.IsCompleted)
	assert.Equal(t, 300, rec.WatchTimeSeconds)
}

func TestEnsureRecordDoesNotResetProgress(t *testing.T) {
	db := setupDB(t)
	tracker := NewTracker(db)
	student := seedStudent(t, db)
	course := seedCourse(t, db, true, 0)
	lessons := seedLessons(t, db, course.ID, 1)

	rec, created, err := tracker.EnsureRecord(student.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, rec.IsCompleted)

	_, err = tracker.RecordWatch(student.ID, lessons[0].ID, 45, false)
	require.NoError(t, err)

	rec, created, err = tracker.EnsureRecord(student.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 45, rec.WatchTimeSeconds)
}

func TestRecomputeStepwise(t *testing.T) {
	db := setupDB(t)
	tracker := NewTracker(db)
	student := seedStudent(t, db)
	course := seedCourse(t, db, true, 0)
	lessons := seedLessons(t, db, course.ID, 4)

	enrollment, err := tracker.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	complete := func(i int) int {
		_, err := tracker.RecordWatch(student.ID, lessons[i].ID, 60, true)
		require.NoError(t, err)
		percent, err := tracker.Recompute(enrollment)
		require.NoError(t, err)
		return percent
	}

	assert.Equal(t, 25, complete(0))
	assert.Equal(t, 50, complete(1))
	assert.False(t, enrollment.IsCompleted)
	assert.Equal(t, 75, complete(2))
	assert.Equal(t, 100, complete(3))
	assert.True(t, enrollment.IsCompleted)

	var stored models.Enrollment
	require.NoError(t, db.First(&stored, enrollment.ID).Error)
	assert.Equal(t, 100, stored.Progress)
	assert.True(t, stored.IsCompleted)
	assert.False(t, stored.IsCertificateReady, "completion must not auto-flag certificate readiness")
}

func TestRecomputeTruncatesPercentage(t *testing.T) {
	db := setupDB(t)
	tracker := NewTracker(db)
	student := seedStudent(t, db)
	course := seedCourse(t, db, true, 0)
	lessons := seedLessons(t, db, course.ID, 3)

	enrollment, err := tracker.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	_, err = tracker.RecordWatch(student.ID, lessons[0].ID, 60, true)
	require.NoError(t, err)

	percent, err := tracker.Recompute(enrollment)
	require.NoError(t, err)
	assert.Equal(t, 33, percent) // floor(100/3), not rounded up
}

func TestRecomputeZeroActiveLessons(t *testing.T) {
	db := setupDB(t)
	tracker := NewTracker(db)
	student := seedStudent(t, db)
	course := seedCourse(t, db, true, 0)
	lessons := seedLessons(t, db, course.ID, 1)

	enrollment, err := tracker.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	_, err = tracker.RecordWatch(student.ID, lessons[0].ID, 60, true)
	require.NoError(t, err)

	// Deactivate the only lesson: the ledger row remains but counts for nothing
	require.NoError(t, db.Model(&models.Lesson{}).Where("id = ?", lessons[0].ID).Update("is_active", false).Error)

	percent, err := tracker.Recompute(enrollment)
	require.NoError(t, err)
	assert.Equal(t, 0, percent)
	assert.False(t, enrollment.IsCompleted)
}

func TestRecomputeUsesCurrentActiveSet(t *testing.T) {
	db := setupDB(t)
	tracker := NewTracker(db)
	student := seedStudent(t, db)
	course := seedCourse(t, db, true, 0)
	lessons := seedLessons(t, db, course.ID, 4)

	enrollment, err := tracker.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	_, err = tracker.RecordWatch(student.ID, lessons[0].ID, 60, true)
	require.NoError(t, err)
	_, err = tracker.RecordWatch(student.ID, lessons[1].ID, 60, true)
	require.NoError(t, err)

	percent, err := tracker.Recompute(enrollment)
	require.NoError(t, err)
	require.Equal(t, 50, percent)

	// Deactivating a completed lesson removes it from numerator and denominator
	require.NoError(t, db.Model(&models.Lesson{}).Where("id = ?", lessons[0].ID).Update("is_active", false).Error)

	percent, err = tracker.Recompute(enrollment)
	require.NoError(t, err)
	assert.Equal(t, 33, percent)
}

func TestRecomputeSkipsWriteWhenUnchanged(t *testing.T) {
	db := setupDB(t)
	tracker := NewTracker(db)
	student := seedStudent(t, db)
	course := seedCourse(t, db, true, 0)
	lessons := seedLessons(t, db, course.ID, 2)

	enrollment, err := tracker.Enroll(student.ID, course.ID)
	require.NoError(t, err)

	_, err = tracker.RecordWatch(student.ID, lessons[0].ID, 60, true)
	require.NoError(t, err)

	_, err = tracker.Recompute(enrollment)
	require.NoError(t, err)

	var before models.Enrollment
	require.NoError(t, db.First(&before, enrollment.ID).Error)

	time.Sleep(10 * time.Millisecond)

	percent, err := tracker.Recompute(enrollment)
	require.NoError(t, err)
	assert.Equal(t, 50, percent)

	var after models.Enrollment
	require.NoError(t, db.First(&after, enrollment.ID).Error)
	assert.True(t, after.UpdatedAt.Equal(before.UpdatedAt), "unchanged recompute must not touch the row")
}

func TestEnrollmentForUnknownPair(t *testing.T) {
	db := setupDB(t)
	tracker := NewTracker(db)

	_, err := tracker.EnrollmentFor(1, 2)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}
