package progress

import (
	"context"
	"encoding/json"
	"time"

	courseModels "lms/models/course"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RollUp is the aggregate written onto an enrollment.
type RollUp struct {
	Enrollment      courseModels.Enrollment       `json:"enrollment"`
	Modules         []courseModels.ModuleProgress `json:"modules"`
	CompletedVideos int                           `json:"completed_videos"`
	TotalVideos     int                           `json:"total_videos"`
	CompletedNow    bool                          `json:"completed_now"` // status moved to COMPLETED in this call
}

// Aggregator recomputes enrollment progress from video completion facts.
// It is the only writer of Enrollment progress, status and completion time.
type Aggregator struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db, now: func() time.Time { return time.Now().UTC() }}
}

type moduleCount struct {
	ModuleID  uint
	Total     int
	Completed int
}

// Recompute recounts published videos and the student's completed ones for
// the course, then persists the result on the enrollment. It returns nil
// without error when the student has no enrollment in the course.
func (a *Aggregator) Recompute(ctx context.Context, tx *gorm.DB, studentID, courseID uint) (*RollUp, error) {
	if tx == nil {
		tx = a.db
	}
	db := tx.WithContext(ctx)

	var enrollment courseModels.Enrollment
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Limit(1).
		Find(&enrollment).Error
	if err != nil {
		return nil, storeErr(err, "lock enrollment")
	}
	if enrollment.ID == 0 {
		return nil, nil
	}

	counts, err := a.countByModule(ctx, db, studentID, courseID)
	if err != nil {
		return nil, err
	}

	out := &RollUp{Modules: make([]courseModels.ModuleProgress, 0, len(counts))}
	for _, c := range counts {
		out.TotalVideos += c.Total
		out.CompletedVideos += c.Completed
		out.Modules = append(out.Modules, courseModels.ModuleProgress{
			ModuleID:        c.ModuleID,
			CompletedVideos: c.Completed,
			TotalVideos:     c.Total,
		})
	}

	pct := 0.0
	if out.TotalVideos > 0 {
		pct = round(float64(out.CompletedVideos)/float64(out.TotalVideos)*100, 2)
	}

	modulesJSON, err := json.Marshal(out.Modules)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"progress":         pct,
		"completed_videos": out.CompletedVideos,
		"total_videos":     out.TotalVideos,
		"module_progress":  datatypes.JSON(modulesJSON),
	}
	enrollment.Progress = pct
	enrollment.CompletedVideos = out.CompletedVideos
	enrollment.TotalVideos = out.TotalVideos
	enrollment.ModuleProgress = datatypes.JSON(modulesJSON)

	// Only ACTIVE moves to COMPLETED; completed_at is stamped once.
	if pct >= 100 && enrollment.Status == courseModels.EnrollmentActive {
		updates["status"] = courseModels.EnrollmentCompleted
		enrollment.Status = courseModels.EnrollmentCompleted
		out.CompletedNow = true
	}
	if pct >= 100 && enrollment.CompletedAt == nil && enrollment.Status == courseModels.EnrollmentCompleted {
		now := a.now()
		updates["completed_at"] = now
		enrollment.CompletedAt = &now
	}

	if err := db.Model(&courseModels.Enrollment{}).
		Where("id = ?", enrollment.ID).
		Updates(updates).Error; err != nil {
		return nil, storeErr(err, "update enrollment progress")
	}

	out.Enrollment = enrollment
	return out, nil
}

// countByModule returns per-module published/completed video counts in
// module order. Modules without published videos are included with zeros.
func (a *Aggregator) countByModule(ctx context.Context, db *gorm.DB, studentID, courseID uint) ([]moduleCount, error) {
	var modules []courseModels.Module
	if err := db.WithContext(ctx).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("order_num asc, id asc").
		Find(&modules).Error; err != nil {
		return nil, storeErr(err, "list modules")
	}
	if len(modules) == 0 {
		return nil, nil
	}

	moduleIDs := make([]uint, len(modules))
	for i, m := range modules {
		moduleIDs[i] = m.ID
	}

	type row struct {
		ModuleID  uint
		Total     int
		Completed int
	}
	var rows []row
	if err := db.WithContext(ctx).
		Table("videos").
		Select("videos.module_id AS module_id, COUNT(videos.id) AS total, "+
			"COUNT(CASE WHEN video_progress.is_completed = ? THEN 1 END) AS completed", true).
		Joins("LEFT JOIN video_progress ON video_progress.video_id = videos.id AND video_progress.student_id = ? AND video_progress.deleted_at IS NULL", studentID).
		Where("videos.module_id IN ? AND videos.is_deleted = ? AND videos.is_published = ? AND videos.deleted_at IS NULL", moduleIDs, false, true).
		Group("videos.module_id").
		Scan(&rows).Error; err != nil {
		return nil, storeErr(err, "count videos")
	}

	byModule := make(map[uint]row, len(rows))
	for _, r := range rows {
		byModule[r.ModuleID] = r
	}
	out := make([]moduleCount, len(modules))
	for i, m := range modules {
		r := byModule[m.ID]
		out[i] = moduleCount{ModuleID: m.ID, Total: r.Total, Completed: r.Completed}
	}
	return out, nil
}
