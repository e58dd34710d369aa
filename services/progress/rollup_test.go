package progress

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func complete(t *testing.T, e *Engine, studentID, videoID uint) *Result {
	t.Helper()
	res, err := e.RecordWatchState(context.Background(), WatchStateEvent{StudentID: studentID, VideoID: videoID, WatchedSeconds: 60, IsCompleted: true})
	require.NoError(t, err)
	return res
}

func TestRollUp_FourVideosTwoModules(t *testing.T) {
	db := openTestDB(t)
	f := seedCourse(t, db, 30, []string{"1", "2"}, []string{"3", "4"})
	enroll(t, db, 5, f.course.ID)
	e := newTestEngine(db)

	completions := make(chan courseModels.Enrollment, 4)
	e.OnCourseCompleted(func(_ context.Context, en courseModels.Enrollment) { completions <- en })

	for _, v := range f.videos[:3] {
		complete(t, e, 5, v.ID)
	}

	var en courseModels.Enrollment
	require.NoError(t, db.Where("student_id = ? AND course_id = ?", 5, f.course.ID).First(&en).Error)
	assert.Equal(t, 75.0, en.Progress)
	assert.Equal(t, 3, en.CompletedVideos)
	assert.Equal(t, 4, en.TotalVideos)
	assert.Equal(t, courseModels.EnrollmentActive, en.Status)
	assert.Nil(t, en.CompletedAt)

	var modules []courseModels.ModuleProgress
	require.NoError(t, json.Unmarshal(en.ModuleProgress, &modules))
	require.Len(t, modules, 2)
	assert.Equal(t, courseModels.ModuleProgress{ModuleID: f.modules[0].ID, CompletedVideos: 2, TotalVideos: 2}, modules[0])
	assert.Equal(t, courseModels.ModuleProgress{ModuleID: f.modules[1].ID, CompletedVideos: 1, TotalVideos: 2}, modules[1])

	res := complete(t, e, 5, f.videos[3].ID)
	require.NotNil(t, res.Enrollment)
	assert.Equal(t, courseModels.EnrollmentCompleted, res.Enrollment.Status)

	require.NoError(t, db.Where("id = ?", en.ID).First(&en).Error)
	assert.Equal(t, 100.0, en.Progress)
	assert.Equal(t, courseModels.EnrollmentCompleted, en.Status)
	require.NotNil(t, en.CompletedAt)
	firstCompletedAt := *en.CompletedAt

	select {
	case got := <-completions:
		assert.Equal(t, en.ID, got.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("completion hook was not called")
	}

	// A second completion signal and an explicit recompute leave completed_at alone.
	complete(t, e, 5, f.videos[3].ID)
	_, err := e.Recompute(context.Background(), 5, f.course.ID)
	require.NoError(t, err)

	require.NoError(t, db.Where("id = ?", en.ID).First(&en).Error)
	require.NotNil(t, en.CompletedAt)
	assert.True(t, firstCompletedAt.Equal(*en.CompletedAt))

	select {
	case <-completions:
		t.Fatal("completion hook fired twice")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRollUp_IgnoresUnpublishedContent(t *testing.T) {
	db := openTestDB(t)
	f := seedCourse(t, db, 30, []string{"1", "2"}, []string{"3"})
	enroll(t, db, 6, f.course.ID)
	require.NoError(t, db.Model(&courseModels.Module{}).Where("id = ?", f.modules[1].ID).Update("is_published", false).Error)
	require.NoError(t, db.Model(&courseModels.Video{}).Where("id = ?", f.videos[1].ID).Update("is_published", false).Error)
	e := newTestEngine(db)

	res := complete(t, e, 6, f.videos[0].ID)
	require.NotNil(t, res.Enrollment)
	assert.Equal(t, 100.0, res.Enrollment.Progress)
	assert.Equal(t, 1, res.Enrollment.TotalVideos)
	assert.Equal(t, courseModels.EnrollmentCompleted, res.Enrollment.Status)
}

func TestRollUp_WithoutEnrollmentIsDiscarded(t *testing.T) {
	db := openTestDB(t)
	f := seedCourse(t, db, 30, []string{"1"})
	e := newTestEngine(db)

	res := complete(t, e, 8, f.videos[0].ID)
	assert.True(t, res.CompletedNow)
	assert.Nil(t, res.Enrollment)
	assert.Zero(t, countRows(t, db, &courseModels.Enrollment{}))

	out, err := e.Recompute(context.Background(), 8, f.course.ID)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestRollUp_RoundsToTwoPlaces(t *testing.T) {
	db := openTestDB(t)
	f := seedCourse(t, db, 30, []string{"1", "1", "1"})
	enroll(t, db, 9, f.course.ID)
	e := newTestEngine(db)

	res := complete(t, e, 9, f.videos[0].ID)
	require.NotNil(t, res.Enrollment)
	assert.Equal(t, 33.33, res.Enrollment.Progress)
}

func TestRollUp_SuspendedEnrollmentKeepsStatus(t *testing.T) {
	db := openTestDB(t)
	f := seedCourse(t, db, 30, []string{"1"})
	en := enroll(t, db, 10, f.course.ID)
	require.NoError(t, db.Model(&en).Update("status", courseModels.EnrollmentSuspended).Error)
	e := newTestEngine(db)

	res := complete(t, e, 10, f.videos[0].ID)
	require.NotNil(t, res.Enrollment)
	assert.Equal(t, 100.0, res.Enrollment.Progress)
	assert.Equal(t, courseModels.EnrollmentSuspended, res.Enrollment.Status)
	assert.Nil(t, res.Enrollment.CompletedAt)
}
