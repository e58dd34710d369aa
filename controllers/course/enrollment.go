package controllers

import (
	"time"

	"lms/middleware"
	courseModels "lms/models/course"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnrollInCourse creates an ACTIVE enrollment. A CANCELLED enrollment is
// reactivated with its previous progress; any other existing one is a conflict.
func EnrollInCourse(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := db().Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	var (
		enrollment courseModels.Enrollment
		conflict   bool
	)
	err = db().Transaction(func(tx *gorm.DB) error {
		enrollment = courseModels.Enrollment{
			StudentID:  user.ID,
			CourseID:   course.ID,
			Status:     courseModels.EnrollmentActive,
			EnrolledAt: time.Now().UTC(),
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&enrollment)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		// The (student, course) pair already exists.
		enrollment = courseModels.Enrollment{}
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("student_id = ? AND course_id = ?", user.ID, course.ID).
			First(&enrollment).Error; err != nil {
			return err
		}
		if enrollment.Status != courseModels.EnrollmentCancelled {
			conflict = true
			return nil
		}
		enrollment.Status = courseModels.EnrollmentActive
		enrollment.EnrolledAt = time.Now().UTC()
		return tx.Model(&enrollment).Updates(map[string]interface{}{
			"status":      enrollment.Status,
			"enrolled_at": enrollment.EnrolledAt,
		}).Error
	})
	if err != nil {
		log.Error("enroll", "student_id", user.ID, "course_id", courseID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}
	if conflict {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	}

	// Content may have changed while the enrollment was cancelled.
	if rollup, err := engine.Recompute(c.UserContext(), user.ID, course.ID); err == nil && rollup != nil {
		enrollment = rollup.Enrollment
	} else if err != nil {
		log.Warn("initial roll-up failed", "enrollment_id", enrollment.ID, "error", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// GetEnrollments lists the caller's enrollments with course titles.
func GetEnrollments(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var rows []enrollmentRow
	if err := enrollmentQuery().Where("e.student_id = ?", user.ID).Order("e.enrolled_at desc").Scan(&rows).Error; err != nil {
		log.Error("list enrollments", "student_id", user.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": rows,
	})
}

// AdminGetCourseEnrollments lists enrollments of one course, paginated.
func AdminGetCourseEnrollments(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	courseID := c.Locals("courseID").(int)
	reqData, _ := c.Locals("validatedList").(*validators.PageRequest)
	page, limit, offset := validators.Pagination(reqData)

	var total int64
	if err := db().Model(&courseModels.Enrollment{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		log.Error("count enrollments", "course_id", courseID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	var rows []enrollmentRow
	if err := enrollmentQuery().Where("e.course_id = ?", courseID).
		Order("e.id asc").Offset(offset).Limit(limit).Scan(&rows).Error; err != nil {
		log.Error("list enrollments", "course_id", courseID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": rows,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

type enrollmentRow struct {
	ID              uint       `json:"id"`
	StudentID       uint       `json:"student_id"`
	CourseID        uint       `json:"course_id"`
	CourseTitle     string     `json:"course_title"`
	Status          string     `json:"status"`
	Progress        float64    `json:"progress"`
	CompletedVideos int        `json:"completed_videos"`
	TotalVideos     int        `json:"total_videos"`
	EnrolledAt      time.Time  `json:"enrolled_at"`
	CompletedAt     *time.Time `json:"completed_at"`
}

func enrollmentQuery() *gorm.DB {
	return db().Table("enrollments AS e").
		Select("e.id, e.student_id, e.course_id, c.title AS course_title, e.status, e.progress, " +
			"e.completed_videos, e.total_videos, e.enrolled_at, e.completed_at").
		Joins("JOIN courses AS c ON c.id = e.course_id").
		Where("e.deleted_at IS NULL")
}
