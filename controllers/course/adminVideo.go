package controllers

import (
	"lms/middleware"
	courseModels "lms/models/course"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func CreateVideo(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	reqData, ok := c.Locals("validatedVideo").(*validators.VideoRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	moduleID := c.Locals("moduleID").(int)

	var module courseModels.Module
	if err := db().Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	video := courseModels.Video{
		ModuleID:    module.ID,
		Title:       reqData.Title,
		DurationRaw: reqData.Duration,
		VideoURL:    reqData.VideoURL,
		OrderNum:    reqData.OrderNum,
	}
	if err := db().Create(&video).Error; err != nil {
		log.Error("create video", "module_id", moduleID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create video!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Video created successfully!", video)
}

func UpdateVideo(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	reqData, ok := c.Locals("validatedVideoUpdate").(*validators.VideoUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	videoID := c.Locals("videoID").(int)

	var video courseModels.Video
	if err := db().Where("id = ? AND is_deleted = ?", videoID, false).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Title != "" {
		updates["title"] = reqData.Title
	}
	// Unfinished progress rows pick up the new duration on their next event.
	if reqData.Duration != "" {
		updates["duration_raw"] = reqData.Duration
	}
	if reqData.VideoURL != "" {
		updates["video_url"] = reqData.VideoURL
	}
	if reqData.OrderNum != nil {
		updates["order_num"] = *reqData.OrderNum
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	if err := db().Model(&video).Updates(updates).Error; err != nil {
		log.Error("update video", "video_id", videoID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update video!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video updated successfully!", video)
}

func PublishVideo(c *fiber.Ctx) error {
	return setPublished(c, &courseModels.Video{}, "videoID", "Video")
}

// DeleteVideo soft deletes a video and refreshes the course roll-ups.
// Progress rows for it are kept but no longer counted.
func DeleteVideo(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	videoID := c.Locals("videoID").(int)

	var video courseModels.Video
	if err := db().Where("id = ? AND is_deleted = ?", videoID, false).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}
	var module courseModels.Module
	if err := db().Select("id", "course_id").Where("id = ?", video.ModuleID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	if err := db().Model(&video).Update("is_deleted", true).Error; err != nil {
		log.Error("delete video", "video_id", videoID, "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete video!", nil)
	}

	recomputeCourse(c, module.CourseID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video deleted successfully!", nil)
}
