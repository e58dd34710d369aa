package progress

import (
	"context"
	"time"

	courseModels "lms/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists VideoProgress rows. It never decides completion; it writes
// what the engine computed.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx == nil {
		tx = s.db
	}
	return tx.WithContext(ctx)
}

// LockForUpdate makes sure the (student, video) row exists and returns it
// holding a row lock for the rest of tx. The seed insert is a no-op when a
// concurrent writer created the row first.
func (s *Store) LockForUpdate(ctx context.Context, tx *gorm.DB, studentID, videoID uint) (*courseModels.VideoProgress, error) {
	seed := &courseModels.VideoProgress{
		StudentID:     studentID,
		VideoID:       videoID,
		ProgressModel: courseModels.ProgressModelFractional,
	}
	if err := s.conn(ctx, tx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "video_id"}},
			DoNothing: true,
		}).
		Create(seed).Error; err != nil {
		return nil, storeErr(err, "seed video progress")
	}

	var row courseModels.VideoProgress
	if err := s.conn(ctx, tx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_id = ? AND video_id = ?", studentID, videoID).
		First(&row).Error; err != nil {
		return nil, storeErr(err, "lock video progress")
	}
	return &row, nil
}

// Upsert writes the computed state keyed on (student_id, video_id) and
// refreshes updated_at.
func (s *Store) Upsert(ctx context.Context, tx *gorm.DB, row *courseModels.VideoProgress) (*courseModels.VideoProgress, error) {
	row.UpdatedAt = time.Now().UTC()
	// The conflict target is the (student, video) pair, not the primary key.
	id := row.ID
	row.ID = 0
	defer func() {
		if id != 0 {
			row.ID = id
		}
	}()
	if err := s.conn(ctx, tx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "video_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"watched_seconds", "duration_seconds", "watched_amount",
				"is_completed", "progress_model", "completed_at", "updated_at",
			}),
		}).
		Create(row).Error; err != nil {
		return nil, storeErr(err, "upsert video progress")
	}
	return row, nil
}

// Get returns the row for (student, video) or nil when none exists yet.
func (s *Store) Get(ctx context.Context, tx *gorm.DB, studentID, videoID uint) (*courseModels.VideoProgress, error) {
	var rows []courseModels.VideoProgress
	if err := s.conn(ctx, tx).
		Where("student_id = ? AND video_id = ?", studentID, videoID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, storeErr(err, "get video progress")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ListForVideos returns the student's rows for the given videos keyed by video id.
func (s *Store) ListForVideos(ctx context.Context, tx *gorm.DB, studentID uint, videoIDs []uint) (map[uint]courseModels.VideoProgress, error) {
	out := make(map[uint]courseModels.VideoProgress, len(videoIDs))
	if len(videoIDs) == 0 {
		return out, nil
	}
	var rows []courseModels.VideoProgress
	if err := s.conn(ctx, tx).
		Where("student_id = ? AND video_id IN ?", studentID, videoIDs).
		Find(&rows).Error; err != nil {
		return nil, storeErr(err, "list video progress")
	}
	for _, r := range rows {
		out[r.VideoID] = r
	}
	return out, nil
}
