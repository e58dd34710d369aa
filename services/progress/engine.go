package progress

import (
	"context"
	"database/sql"
	"math"
	"strconv"
	"time"

	"lms/logger"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

const (
	// DurationSourceCourse uses the owning course's DurationMinutes as the
	// nominal length of every video in it.
	DurationSourceCourse = "course"
	// DurationSourceVideo uses the video's own DurationRaw.
	DurationSourceVideo = "video"
)

// Options tunes the engine. Zero values fall back to the defaults.
type Options struct {
	IncrementSeconds       int    // server-side heartbeat step, default 5
	DefaultDurationSeconds int    // used when no usable duration is stored, default 1800
	DurationSource         string // DurationSourceCourse (default) or DurationSourceVideo
}

func (o Options) withDefaults() Options {
	if o.IncrementSeconds <= 0 {
		o.IncrementSeconds = 5
	}
	if o.DefaultDurationSeconds <= 0 {
		o.DefaultDurationSeconds = DefaultDurationSeconds
	}
	if o.DurationSource != DurationSourceVideo {
		o.DurationSource = DurationSourceCourse
	}
	return o
}

// HeartbeatEvent is the fractional-watch input shape.
type HeartbeatEvent struct {
	StudentID           uint
	VideoID             uint
	ElapsedDeltaSeconds int
}

// WatchStateEvent is the explicit input shape: the client reports the
// watched seconds and completion flag directly.
type WatchStateEvent struct {
	StudentID      uint
	VideoID        uint
	WatchedSeconds int
	IsCompleted    bool
}

// Result is what a progress write produced.
type Result struct {
	Progress     courseModels.VideoProgress `json:"progress"`
	Changed      bool                       `json:"changed"`
	CompletedNow bool                       `json:"completed_now"`
	Enrollment   *courseModels.Enrollment   `json:"enrollment,omitempty"`
}

// CompletionHook is called after commit when an enrollment has just become COMPLETED.
type CompletionHook func(ctx context.Context, enrollment courseModels.Enrollment)

// Engine applies progress events. Each event runs in one transaction that
// locks the (student, video) row, so concurrent events for a pair serialize
// in the database rather than in this process.
type Engine struct {
	db         *gorm.DB
	store      *Store
	aggregator *Aggregator
	opts       Options
	log        *logger.Logger
	onComplete CompletionHook
	now        func() time.Time
}

func NewEngine(db *gorm.DB, opts Options, baseLog *logger.Logger) *Engine {
	return &Engine{
		db:         db,
		store:      NewStore(db),
		aggregator: NewAggregator(db),
		opts:       opts.withDefaults(),
		log:        baseLog.With("service", "ProgressEngine"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// OnCourseCompleted registers the hook fired when a roll-up completes an enrollment.
func (e *Engine) OnCourseCompleted(hook CompletionHook) {
	e.onComplete = hook
}

func (e *Engine) Store() *Store { return e.store }

func (e *Engine) Aggregator() *Aggregator { return e.aggregator }

// RecordHeartbeat applies one fractional-watch event. The increment is the
// configured server-side step; the client's delta is only validated.
func (e *Engine) RecordHeartbeat(ctx context.Context, ev HeartbeatEvent) (*Result, error) {
	if ev.StudentID == 0 || ev.VideoID == 0 {
		return nil, validationf("student_id and video_id must be positive")
	}
	if ev.ElapsedDeltaSeconds < 0 {
		return nil, validationf("elapsed_delta_seconds must not be negative")
	}

	return e.apply(ctx, ev.StudentID, ev.VideoID, func(row courseModels.VideoProgress, total int, now time.Time) courseModels.VideoProgress {
		return advanceFractional(row, total, e.opts.IncrementSeconds, now)
	})
}

// RecordWatchState stores the client-reported state as given. A completed
// row is never reverted; the event is then a no-op.
func (e *Engine) RecordWatchState(ctx context.Context, ev WatchStateEvent) (*Result, error) {
	if ev.StudentID == 0 || ev.VideoID == 0 {
		return nil, validationf("student_id and video_id must be positive")
	}
	if ev.WatchedSeconds < 0 {
		return nil, validationf("watched_seconds must not be negative")
	}

	return e.apply(ctx, ev.StudentID, ev.VideoID, func(row courseModels.VideoProgress, total int, now time.Time) courseModels.VideoProgress {
		return applyExplicit(row, ev.WatchedSeconds, ev.IsCompleted, total, now)
	})
}

type transition func(row courseModels.VideoProgress, totalSeconds int, now time.Time) courseModels.VideoProgress

func (e *Engine) apply(ctx context.Context, studentID, videoID uint, next transition) (*Result, error) {
	var (
		res                 Result
		enrollmentCompleted bool
	)
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		video, course, err := e.loadVideo(ctx, tx, videoID)
		if err != nil {
			return err
		}
		total := e.nominalSeconds(video, course)

		current, err := e.store.LockForUpdate(ctx, tx, studentID, videoID)
		if err != nil {
			return err
		}
		if current.IsCompleted {
			res.Progress = *current
			return nil
		}

		updated := next(*current, total, e.now())
		saved, err := e.store.Upsert(ctx, tx, &updated)
		if err != nil {
			return err
		}
		res.Progress = *saved
		res.Changed = true

		if !saved.IsCompleted {
			return nil
		}
		res.CompletedNow = true
		rollup, err := e.aggregator.Recompute(ctx, tx, studentID, course.ID)
		if err != nil {
			return err
		}
		if rollup != nil {
			res.Enrollment = &rollup.Enrollment
			enrollmentCompleted = rollup.CompletedNow
		}
		return nil
	}, txOptionsFor(e.db.Dialector.Name())...)
	if err != nil {
		e.log.Warn("progress event failed", "student_id", studentID, "video_id", videoID, "error", err)
		return nil, err
	}

	if res.CompletedNow {
		e.log.Info("video completed", "student_id", studentID, "video_id", videoID)
	}
	if enrollmentCompleted && e.onComplete != nil {
		go e.onComplete(context.Background(), *res.Enrollment)
	}
	return &res, nil
}

// Recompute reruns the roll-up for (student, course) outside of a progress event.
func (e *Engine) Recompute(ctx context.Context, studentID, courseID uint) (*RollUp, error) {
	if studentID == 0 || courseID == 0 {
		return nil, validationf("student_id and course_id must be positive")
	}
	var out *RollUp
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = e.aggregator.Recompute(ctx, tx, studentID, courseID)
		return err
	}, txOptionsFor(e.db.Dialector.Name())...)
	if err != nil {
		return nil, err
	}
	if out != nil && out.CompletedNow && e.onComplete != nil {
		go e.onComplete(context.Background(), out.Enrollment)
	}
	return out, nil
}

// VideoProgress returns the stored row, or a zero NotStarted row when the
// student has not watched the video yet.
func (e *Engine) VideoProgress(ctx context.Context, studentID, videoID uint) (*courseModels.VideoProgress, error) {
	if studentID == 0 || videoID == 0 {
		return nil, validationf("student_id and video_id must be positive")
	}
	row, err := e.store.Get(ctx, nil, studentID, videoID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return &courseModels.VideoProgress{StudentID: studentID, VideoID: videoID, ProgressModel: courseModels.ProgressModelFractional}, nil
	}
	return row, nil
}

func (e *Engine) loadVideo(ctx context.Context, tx *gorm.DB, videoID uint) (*courseModels.Video, *courseModels.Course, error) {
	var video courseModels.Video
	if err := tx.WithContext(ctx).
		Where("id = ? AND is_deleted = ? AND is_published = ?", videoID, false, true).
		First(&video).Error; err != nil {
		return nil, nil, storeErr(err, "load video")
	}
	var module courseModels.Module
	if err := tx.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", video.ModuleID, false).
		First(&module).Error; err != nil {
		return nil, nil, storeErr(err, "load module")
	}
	var course courseModels.Course
	if err := tx.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", module.CourseID, false).
		First(&course).Error; err != nil {
		return nil, nil, storeErr(err, "load course")
	}
	return &video, &course, nil
}

// nominalSeconds resolves the denominator once per event from the single
// configured source.
func (e *Engine) nominalSeconds(video *courseModels.Video, course *courseModels.Course) int {
	var raw string
	switch e.opts.DurationSource {
	case DurationSourceVideo:
		raw = video.DurationRaw
	default:
		if course.DurationMinutes > 0 {
			raw = strconv.FormatInt(course.DurationMinutes, 10)
		}
	}
	total := ParseDurationSecondsOr(raw, e.opts.DefaultDurationSeconds)
	if total <= 0 {
		return e.opts.DefaultDurationSeconds
	}
	return total
}

// advanceFractional adds one step to an unfinished row, clamps at the total
// and flips completion when the total is reached.
func advanceFractional(row courseModels.VideoProgress, totalSeconds, step int, now time.Time) courseModels.VideoProgress {
	if row.IsCompleted {
		return row
	}
	watched := row.WatchedSeconds
	if watched < totalSeconds {
		watched += step
	}
	if watched >= totalSeconds {
		watched = totalSeconds
		row.IsCompleted = true
		row.CompletedAt = &now
	}
	row.WatchedSeconds = watched
	row.DurationSeconds = totalSeconds
	row.WatchedAmount = percentage(watched, totalSeconds)
	row.ProgressModel = courseModels.ProgressModelFractional
	return row
}

// applyExplicit stores the client-reported state. Watched seconds are clamped
// to the nominal length, and an unfinished row stays below 100%.
func applyExplicit(row courseModels.VideoProgress, watchedSeconds int, completed bool, totalSeconds int, now time.Time) courseModels.VideoProgress {
	if row.IsCompleted {
		return row
	}
	if totalSeconds > 0 && watchedSeconds > totalSeconds {
		watchedSeconds = totalSeconds
	}
	row.WatchedSeconds = watchedSeconds
	row.DurationSeconds = totalSeconds
	row.IsCompleted = completed
	row.ProgressModel = courseModels.ProgressModelExplicit
	if completed {
		row.WatchedAmount = 100
		row.CompletedAt = &now
	} else {
		row.WatchedAmount = math.Min(maxUnfinishedAmount, percentage(watchedSeconds, totalSeconds))
	}
	return row
}

// maxUnfinishedAmount is the highest percentage an uncompleted row can show.
const maxUnfinishedAmount = 99.999

// txOptionsFor returns the options for event and recompute transactions.
// The roll-up count must see completions committed while it waited on the
// enrollment lock, which MySQL's default REPEATABLE READ snapshot hides.
// SQLite transactions are already serializable and accept no level.
func txOptionsFor(dialect string) []*sql.TxOptions {
	if dialect == "sqlite" {
		return nil
	}
	return []*sql.TxOptions{{Isolation: sql.LevelReadCommitted}}
}

func percentage(watched, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Min(100, round(float64(watched)/float64(total)*100, 3))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
