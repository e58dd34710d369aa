package progress

import (
	"testing"
	"time"

	"lms/database"
	"lms/logger"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type fixture struct {
	course  courseModels.Course
	modules []courseModels.Module
	videos  []courseModels.Video
}

// seedCourse creates a published course with one published module per entry
// in moduleDurations, each holding published videos with those raw durations.
func seedCourse(t *testing.T, db *gorm.DB, durationMinutes int64, moduleDurations ...[]string) fixture {
	t.Helper()
	f := fixture{course: courseModels.Course{
		InstructorID:    99,
		Title:           "Go in Practice",
		Description:     "Hands-on Go",
		DurationMinutes: durationMinutes,
		IsPublished:     true,
	}}
	require.NoError(t, db.Create(&f.course).Error)

	for i, durations := range moduleDurations {
		m := courseModels.Module{CourseID: f.course.ID, Title: "Module", OrderNum: i + 1, IsPublished: true}
		require.NoError(t, db.Create(&m).Error)
		f.modules = append(f.modules, m)
		for j, d := range durations {
			v := courseModels.Video{
				ModuleID:    m.ID,
				Title:       "Lesson",
				DurationRaw: d,
				VideoURL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
				OrderNum:    j + 1,
				IsPublished: true,
			}
			require.NoError(t, db.Create(&v).Error)
			f.videos = append(f.videos, v)
		}
	}
	return f
}

func enroll(t *testing.T, db *gorm.DB, studentID, courseID uint) courseModels.Enrollment {
	t.Helper()
	e := courseModels.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		Status:     courseModels.EnrollmentActive,
		EnrolledAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&e).Error)
	return e
}

func newTestEngine(db *gorm.DB) *Engine {
	return NewEngine(db, Options{}, logger.Nop())
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
