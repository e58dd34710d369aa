package progress

import (
	"context"
	"errors"
	"testing"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseDetail_NotEnrolled(t *testing.T) {
	db := openTestDB(t)
	f := seedCourse(t, db, 30, []string{"1"})
	a := NewAssembler(db)

	_, err := a.CourseDetail(context.Background(), 3, f.course.ID)
	assert.True(t, errors.Is(err, ErrNotEnrolled))

	en := enroll(t, db, 4, f.course.ID)
	require.NoError(t, db.Model(&en).Update("status", courseModels.EnrollmentCancelled).Error)
	_, err = a.CourseDetail(context.Background(), 4, f.course.ID)
	assert.True(t, errors.Is(err, ErrNotEnrolled))

	assert.Zero(t, countRows(t, db, &courseModels.VideoProgress{}))
	assert.Equal(t, int64(1), countRows(t, db, &courseModels.Enrollment{}))
}

func TestCourseDetail_NestedView(t *testing.T) {
	db := openTestDB(t)
	f := seedCourse(t, db, 30, []string{"12:30", "45"}, []string{"", "00:30"})
	enroll(t, db, 1, f.course.ID)
	e := newTestEngine(db)
	complete(t, e, 1, f.videos[0].ID)
	heartbeat(t, e, 1, f.videos[2].ID)

	view, err := NewAssembler(db).CourseDetail(context.Background(), 1, f.course.ID)
	require.NoError(t, err)

	assert.Equal(t, f.course.ID, view.ID)
	assert.Equal(t, "Beginner", view.Difficulty)
	assert.Equal(t, 4, view.TotalVideos)
	assert.Equal(t, 1, view.CompletedVideos)
	assert.Equal(t, 25.0, view.Progress)
	// 750 + 2700 + 1800 (default) + 30 seconds
	assert.Equal(t, "1h 28m", view.TotalDuration)

	require.Len(t, view.Modules, 2)
	first := view.Modules[0]
	require.Len(t, first.Videos, 2)
	assert.True(t, first.Videos[0].IsWatched)
	assert.Equal(t, 750, first.Videos[0].DurationSeconds)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg", first.Videos[0].Thumbnail)
	assert.False(t, first.Videos[1].IsWatched)
	assert.Equal(t, 1, first.CompletedVideos)

	second := view.Modules[1]
	assert.False(t, second.Videos[0].IsWatched)
	assert.Equal(t, 5, second.Videos[0].WatchedSeconds)
	assert.Equal(t, 0, second.CompletedVideos)
	assert.Equal(t, 2, second.TotalVideos)
}

func TestCourseDetail_RejectsZeroIDs(t *testing.T) {
	db := openTestDB(t)
	_, err := NewAssembler(db).CourseDetail(context.Background(), 0, 1)
	assert.True(t, errors.Is(err, ErrValidation))
}
