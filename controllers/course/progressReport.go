package controllers

import (
	"encoding/json"
	"math"
	"time"

	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

type moduleProgressView struct {
	ModuleID        uint    `json:"module_id"`
	ModuleName      string  `json:"module_name"`
	CompletedVideos int     `json:"completed_videos"`
	TotalVideos     int     `json:"total_videos"`
	Progress        float64 `json:"progress"`
}

type courseProgressView struct {
	CourseID        uint                 `json:"course_id"`
	CourseName      string               `json:"course_name"`
	Status          string               `json:"status"`
	Progress        float64              `json:"progress"`
	CompletedVideos int                  `json:"completed_videos"`
	TotalVideos     int                  `json:"total_videos"`
	EnrolledAt      time.Time            `json:"enrolled_at"`
	CompletedAt     *time.Time           `json:"completed_at"`
	Modules         []moduleProgressView `json:"modules"`
}

// courseProgress expands the stored roll-up of an enrollment with course and
// module titles.
func courseProgress(en courseModels.Enrollment) (courseProgressView, error) {
	view := courseProgressView{
		CourseID:        en.CourseID,
		Status:          en.Status,
		Progress:        en.Progress,
		CompletedVideos: en.CompletedVideos,
		TotalVideos:     en.TotalVideos,
		EnrolledAt:      en.EnrolledAt,
		CompletedAt:     en.CompletedAt,
		Modules:         []moduleProgressView{},
	}

	var course courseModels.Course
	if err := db().Select("id", "title").Where("id = ?", en.CourseID).First(&course).Error; err != nil {
		return view, err
	}
	view.CourseName = course.Title

	var breakdown []courseModels.ModuleProgress
	if len(en.ModuleProgress) > 0 {
		if err := json.Unmarshal(en.ModuleProgress, &breakdown); err != nil {
			return view, err
		}
	}
	if len(breakdown) == 0 {
		return view, nil
	}

	ids := make([]uint, len(breakdown))
	for i, m := range breakdown {
		ids[i] = m.ModuleID
	}
	var modules []courseModels.Module
	if err := db().Select("id", "title").Where("id IN ?", ids).Find(&modules).Error; err != nil {
		return view, err
	}
	titles := make(map[uint]string, len(modules))
	for _, m := range modules {
		titles[m.ID] = m.Title
	}

	for _, m := range breakdown {
		pct := 0.0
		if m.TotalVideos > 0 {
			pct = math.Round(float64(m.CompletedVideos)/float64(m.TotalVideos)*10000) / 100
		}
		view.Modules = append(view.Modules, moduleProgressView{
			ModuleID:        m.ModuleID,
			ModuleName:      titles[m.ModuleID],
			CompletedVideos: m.CompletedVideos,
			TotalVideos:     m.TotalVideos,
			Progress:        pct,
		})
	}
	return view, nil
}

// GetCourseProgress returns the caller's roll-up for one course.
func GetCourseProgress(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := db().Where("student_id = ? AND course_id = ?", user.ID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	view, err := courseProgress(enrollment)
	if err != nil {
		log.Error("course progress", "enrollment_id", enrollment.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", view)
}

// AdminGetStudentProgress returns every course roll-up of one student.
func AdminGetStudentProgress(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	targetUserID := c.Locals("targetUserID").(int)

	var student models.User
	if err := db().Where("id = ? AND is_deleted = ?", targetUserID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := db().Where("student_id = ?", student.ID).Order("enrolled_at desc").Find(&enrollments).Error; err != nil {
		log.Error("list enrollments", "student_id", student.ID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	progress := make([]courseProgressView, 0, len(enrollments))
	for _, en := range enrollments {
		view, err := courseProgress(en)
		if err != nil {
			log.Error("course progress", "enrollment_id", en.ID, "error", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
		progress = append(progress, view)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student progress fetched successfully!", fiber.Map{
		"student": fiber.Map{
			"id":    student.ID,
			"name":  student.Name,
			"email": student.Email,
		},
		"course_progress": progress,
	})
}

type completedStudent struct {
	UserID      uint       `json:"user_id"`
	UserName    string     `json:"user_name"`
	UserEmail   string     `json:"user_email"`
	Progress    float64    `json:"progress"`
	CompletedAt *time.Time `json:"completed_at"`
}

// AdminGetCompletedStudents lists students whose enrollment in the course is COMPLETED.
func AdminGetCompletedStudents(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	courseID := c.Locals("courseID").(int)
	reqData, _ := c.Locals("validatedList").(*validators.PageRequest)
	page, limit, offset := validators.Pagination(reqData)

	completed := db().Model(&courseModels.Enrollment{}).
		Where("course_id = ? AND status = ?", courseID, courseModels.EnrollmentCompleted)

	var total int64
	if err := completed.Count(&total).Error; err != nil {
		log.Error("count completed", "course_id", courseID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch completed students!", nil)
	}

	var rows []completedStudent
	if err := db().Table("enrollments AS e").
		Select("u.id AS user_id, u.name AS user_name, u.email AS user_email, e.progress, e.completed_at").
		Joins("JOIN users AS u ON u.id = e.student_id").
		Where("e.course_id = ? AND e.status = ? AND e.deleted_at IS NULL", courseID, courseModels.EnrollmentCompleted).
		Order("e.completed_at desc").Offset(offset).Limit(limit).
		Scan(&rows).Error; err != nil {
		log.Error("list completed", "course_id", courseID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch completed students!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Completed students fetched successfully!", fiber.Map{
		"completed_students": rows,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
