package progress

import (
	"context"
	"time"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

type VideoView struct {
	ID              uint    `json:"id"`
	Title           string  `json:"title"`
	Duration        string  `json:"duration"`
	DurationSeconds int     `json:"duration_seconds"`
	OrderNum        int     `json:"order_num"`
	VideoURL        string  `json:"video_url"`
	Thumbnail       string  `json:"thumbnail"`
	IsWatched       bool    `json:"is_watched"`
	WatchedSeconds  int     `json:"watched_seconds"`
	WatchedAmount   float64 `json:"watched_amount"`
}

type ModuleView struct {
	ID              uint        `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	OrderNum        int         `json:"order_num"`
	CompletedVideos int         `json:"completed_videos"`
	TotalVideos     int         `json:"total_videos"`
	Videos          []VideoView `json:"videos"`
}

// CourseDetailView is the learner's course page.
type CourseDetailView struct {
	ID               uint         `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	InstructorID     uint         `json:"instructor_id"`
	TotalDuration    string       `json:"total_duration"`
	TotalVideos      int          `json:"total_videos"`
	CompletedVideos  int          `json:"completed_videos"`
	Difficulty       string       `json:"difficulty"`
	Progress         float64      `json:"progress"`
	EnrollmentStatus string       `json:"enrollment_status"`
	EnrolledAt       time.Time    `json:"enrolled_at"`
	Modules          []ModuleView `json:"modules"`
}

// Assembler builds CourseDetailView. It only reads.
type Assembler struct {
	db    *gorm.DB
	store *Store
	// DefaultDurationSeconds is used for videos whose duration cannot be parsed.
	DefaultDurationSeconds int
}

func NewAssembler(db *gorm.DB) *Assembler {
	return &Assembler{db: db, store: NewStore(db), DefaultDurationSeconds: DefaultDurationSeconds}
}

// CourseDetail requires an ACTIVE enrollment for (student, course).
func (a *Assembler) CourseDetail(ctx context.Context, studentID, courseID uint) (*CourseDetailView, error) {
	if studentID == 0 || courseID == 0 {
		return nil, validationf("student_id and course_id must be positive")
	}
	db := a.db.WithContext(ctx)

	var enrollment courseModels.Enrollment
	if err := db.Where("student_id = ? AND course_id = ? AND status = ?", studentID, courseID, courseModels.EnrollmentActive).
		Limit(1).
		Find(&enrollment).Error; err != nil {
		return nil, storeErr(err, "load enrollment")
	}
	if enrollment.ID == 0 {
		return nil, ErrNotEnrolled
	}

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return nil, storeErr(err, "load course")
	}

	var modules []courseModels.Module
	if err := db.Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("order_num asc, id asc").
		Find(&modules).Error; err != nil {
		return nil, storeErr(err, "list modules")
	}

	moduleIDs := make([]uint, len(modules))
	for i, m := range modules {
		moduleIDs[i] = m.ID
	}
	var videos []courseModels.Video
	if len(moduleIDs) > 0 {
		if err := db.Where("module_id IN ? AND is_deleted = ? AND is_published = ?", moduleIDs, false, true).
			Order("order_num asc, id asc").
			Find(&videos).Error; err != nil {
			return nil, storeErr(err, "list videos")
		}
	}

	videoIDs := make([]uint, len(videos))
	for i, v := range videos {
		videoIDs[i] = v.ID
	}
	progressByVideo, err := a.store.ListForVideos(ctx, nil, studentID, videoIDs)
	if err != nil {
		return nil, err
	}

	videosByModule := make(map[uint][]courseModels.Video, len(modules))
	for _, v := range videos {
		videosByModule[v.ModuleID] = append(videosByModule[v.ModuleID], v)
	}

	view := &CourseDetailView{
		ID:               course.ID,
		Title:            course.Title,
		Description:      course.Description,
		InstructorID:     course.InstructorID,
		Progress:         enrollment.Progress,
		EnrollmentStatus: enrollment.Status,
		EnrolledAt:       enrollment.EnrolledAt,
		Modules:          make([]ModuleView, 0, len(modules)),
	}

	totalSeconds := 0
	for _, m := range modules {
		mv := ModuleView{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			OrderNum:    m.OrderNum,
			Videos:      make([]VideoView, 0, len(videosByModule[m.ID])),
		}
		for _, v := range videosByModule[m.ID] {
			seconds := ParseDurationSecondsOr(v.DurationRaw, a.DefaultDurationSeconds)
			totalSeconds += seconds

			vv := VideoView{
				ID:              v.ID,
				Title:           v.Title,
				Duration:        v.DurationRaw,
				DurationSeconds: seconds,
				OrderNum:        v.OrderNum,
				VideoURL:        v.VideoURL,
				Thumbnail:       Thumbnail(v.VideoURL),
			}
			if p, ok := progressByVideo[v.ID]; ok {
				vv.IsWatched = p.IsCompleted
				vv.WatchedSeconds = p.WatchedSeconds
				vv.WatchedAmount = p.WatchedAmount
			}
			if vv.IsWatched {
				mv.CompletedVideos++
			}
			mv.TotalVideos++
			mv.Videos = append(mv.Videos, vv)
		}
		view.TotalVideos += mv.TotalVideos
		view.CompletedVideos += mv.CompletedVideos
		view.Modules = append(view.Modules, mv)
	}

	view.TotalDuration = FormatDuration(totalSeconds)
	view.Difficulty = Difficulty(view.TotalVideos)
	return view, nil
}
