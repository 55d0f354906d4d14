package progress

import (
	"errors"
	"lms/models"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sentinel errors, mapped to HTTP statuses at the controller boundary.
var (
	ErrCourseNotFound  = errors.New("course not found or not active")
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrNotEnrolled     = errors.New("not enrolled in this course")
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
)

// Tracker records per-lesson watch events and derives course-level completion
// state from them. It owns every write to LessonProgress and to the derived
// Enrollment.Progress/IsCompleted fields; nothing else mutates those.
type Tracker struct {
	db *gorm.DB
}

func NewTracker(db *gorm.DB) *Tracker {
	return &Tracker{db: db}
}

var (
	studentLessonKey = clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "lesson_id"}},
		DoNothing: true,
	}
	studentCourseKey = clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_id"}},
		DoNothing: true,
	}
)

// Enroll registers a student in an active course, snapshotting the course
// price at enrollment time. A duplicate attempt returns ErrAlreadyEnrolled;
// the unique (student_id, course_id) index closes the race between two
// concurrent enroll requests.
func (t *Tracker) Enroll(studentID, courseID uint) (*models.Enrollment, error) {
	var course models.Course
	if err := t.db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	enrollment := models.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
		Price:     course.Price,
	}

	res := t.db.Clauses(studentCourseKey).Create(&enrollment)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyEnrolled
	}

	return &enrollment, nil
}

// EnrollmentFor returns the enrollment for a (student, course) pair or
// ErrNotEnrolled. Presentation layers read the persisted Progress/IsCompleted
// snapshot from here instead of recomputing.
func (t *Tracker) EnrollmentFor(studentID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := t.db.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		return nil, err
	}
	return &enrollment, nil
}

// EnsureRecord lazily creates the ledger row for a (student, lesson) pair on
// first view, without touching watch time or completion on an existing row.
// Returns the row and whether it was created by this call.
func (t *Tracker) EnsureRecord(studentID, lessonID uint) (*models.LessonProgress, bool, error) {
	record := models.LessonProgress{StudentID: studentID, LessonID: lessonID}

	res := t.db.Clauses(studentLessonKey).Create(&record)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return &record, true, nil
	}

	var existing models.LessonProgress
	if err := t.db.Where("student_id = ? AND lesson_id = ?", studentID, lessonID).First(&existing).Error; err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

// RecordWatch records a watch event for a lesson. Semantics:
//   - no row yet: create it; CompletedAt is set now iff markComplete.
//   - row exists, already completed: leave it untouched. The first-completion
//     snapshot (watch time and CompletedAt) is never overwritten.
//   - row exists, not completed: update watch time to the latest report, and
//     if markComplete flip IsCompleted and stamp CompletedAt.
//
// The create is a unique-constraint upsert and the update is guarded on
// is_completed = false, so repeated or concurrent deliveries of the same
// event can neither duplicate the row nor regress a completion.
// Re-aggregation of the owning enrollment is the caller's job.
func (t *Tracker) RecordWatch(studentID, lessonID uint, watchSeconds int, markComplete bool) (*models.LessonProgress, error) {
	var lesson models.Lesson
	if err := t.db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}

	record := models.LessonProgress{
		StudentID:        studentID,
		LessonID:         lessonID,
		IsCompleted:      markComplete,
		WatchTimeSeconds: watchSeconds,
	}
	if markComplete {
		now := time.Now()
		record.CompletedAt = &now
	}

	res := t.db.Clauses(studentLessonKey).Create(&record)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected > 0 {
		return &record, nil
	}

	// Row already existed; the constraint swallowed the insert.
	var existing models.LessonProgress
	if err := t.db.Where("student_id = ? AND lesson_id = ?", studentID, lessonID).First(&existing).Error; err != nil {
		return nil, err
	}
	if existing.IsCompleted {
		return &existing, nil
	}

	updates := map[string]interface{}{"watch_time_seconds": watchSeconds}
	if markComplete {
		updates["is_completed"] = true
		updates["completed_at"] = time.Now()
	}

	if err := t.db.Model(&models.LessonProgress{}).
		Where("id = ? AND is_completed = ?", existing.ID, false).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := t.db.First(&existing, existing.ID).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// Recompute derives the completion percentage for one enrollment from the
// current ledger and persists it onto the enrollment record. The percentage
// is floor(100 * completed / total) over the course's currently active
// lessons; a course with no active lessons is always 0 and never completed.
// When nothing changed the enrollment row is left untouched.
func (t *Tracker) Recompute(enrollment *models.Enrollment) (int, error) {
	if enrollment == nil || enrollment.ID == 0 {
		return 0, ErrNotEnrolled
	}

	var total int64
	if err := t.db.Model(&models.Lesson{}).
		Where("course_id = ? AND is_active = ?", enrollment.CourseID, true).
		Count(&total).Error; err != nil {
		return 0, err
	}

	percent := 0
	if total > 0 {
		var completed int64
		if err := t.db.Model(&models.LessonProgress{}).
			Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
			Where("lesson_progresses.student_id = ? AND lessons.course_id = ? AND lessons.is_active = ? AND lessons.deleted_at IS NULL AND lesson_progresses.is_completed = ?",
				enrollment.StudentID, enrollment.CourseID, true, true).
			Count(&completed).Error; err != nil {
			return 0, err
		}
		percent = int(completed * 100 / total)
	}

	done := percent == 100

	if enrollment.Progress == percent && enrollment.IsCompleted == done {
		return percent, nil
	}

	if err := t.db.Model(enrollment).
		Updates(map[string]interface{}{"progress": percent, "is_completed": done}).Error; err != nil {
		return 0, err
	}
	enrollment.Progress = percent
	enrollment.IsCompleted = done

	return percent, nil
}
