package controllers

import (
	"lms/middleware"
	courseModels "lms/models/course"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreateModule(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	reqData, ok := c.Locals("validatedModule").(*validators.ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := db().Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	module := courseModels.Module{
		CourseID:    course.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderNum:    reqData.OrderNum,
	}
	if err := db().Create(&module).Error; err != nil {
		log.Error("create module", "course_id", courseID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

func PublishModule(c *fiber.Ctx) error {
	return setPublished(c, &courseModels.Module{}, "moduleID", "Module")
}

// DeleteModule soft deletes a module and its videos, then refreshes the
// course roll-ups.
func DeleteModule(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := db().Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	err := db().Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&courseModels.Video{}).Where("module_id = ?", module.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&module).Update("is_deleted", true).Error
	})
	if err != nil {
		log.Error("delete module", "module_id", moduleID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	recomputeCourse(c, module.CourseID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}
