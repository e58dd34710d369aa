package controllers

import (
	"lms/middleware"
	courseModels "lms/models/course"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreateCourse(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	reqData, ok := c.Locals("validatedCourse").(*validators.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		InstructorID:    user.ID,
		Title:           reqData.Title,
		Description:     reqData.Description,
		DurationMinutes: reqData.DurationMinutes,
	}
	if err := db().Create(&course).Error; err != nil {
		log.Error("create course", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func UpdateCourse(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	reqData, ok := c.Locals("validatedCourseUpdate").(*validators.CourseUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := db().Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Title != "" {
		updates["title"] = reqData.Title
	}
	if reqData.Description != "" {
		updates["description"] = reqData.Description
	}
	if reqData.DurationMinutes != nil {
		updates["duration_minutes"] = *reqData.DurationMinutes
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := db().Model(&course).Updates(updates).Error; err != nil {
		log.Error("update course", "course_id", courseID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

func PublishCourse(c *fiber.Ctx) error {
	return setPublished(c, &courseModels.Course{}, "courseID", "Course")
}

// setPublished toggles is_published on the entity whose id the validator stored under localKey.
func setPublished(c *fiber.Ctx, model interface{}, localKey, label string) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	id := c.Locals(localKey).(int)
	publish := c.Locals("publishStatus").(bool)

	res := db().Model(model).Where("id = ? AND is_deleted = ?", id, false).Update("is_published", publish)
	if res.Error != nil {
		log.Error("publish", "entity", label, "id", id, "error", res.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update "+label+"!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, label+" not found!", nil)
	}

	msg := label + " unpublished successfully!"
	if publish {
		msg = label + " published successfully!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, msg, fiber.Map{"id": id, "is_published": publish})
}

// DeleteCourse soft deletes a course together with its modules and videos.
func DeleteCourse(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := db().Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	err := db().Transaction(func(tx *gorm.DB) error {
		moduleIDs := tx.Model(&courseModels.Module{}).Select("id").Where("course_id = ?", course.ID)
		if err := tx.Model(&courseModels.Video{}).Where("module_id IN (?)", moduleIDs).Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Module{}).Where("course_id = ?", course.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&course).Update("is_deleted", true).Error
	})
	if err != nil {
		log.Error("delete course", "course_id", courseID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// recomputeCourse refreshes the roll-up of every enrollment in the course
// after its content changed. Failures are logged per enrollment.
func recomputeCourse(c *fiber.Ctx, courseID uint) {
	var studentIDs []uint
	if err := db().Model(&courseModels.Enrollment{}).Where("course_id = ?", courseID).Pluck("student_id", &studentIDs).Error; err != nil {
		log.Error("list enrolled students", "course_id", courseID, "error", err)
		return
	}
	for _, studentID := range studentIDs {
		if _, err := engine.Recompute(c.UserContext(), studentID, courseID); err != nil {
			log.Warn("roll-up after content change failed", "course_id", courseID, "student_id", studentID, "error", err)
		}
	}
}
