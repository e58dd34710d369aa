package controllers

import (
	"lms/middleware"
	"lms/services/progress"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// RecordHeartbeat applies one fractional-watch event for the caller.
func RecordHeartbeat(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData := c.Locals("validatedHeartbeat").(*validators.HeartbeatRequest)

	res, err := engine.RecordHeartbeat(c.UserContext(), progress.HeartbeatEvent{
		StudentID:           userID,
		VideoID:             uint(reqData.VideoID),
		ElapsedDeltaSeconds: reqData.ElapsedDeltaSeconds,
	})
	if err != nil {
		return progressError(c, err, "Failed to record progress!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recorded!", res)
}

// RecordWatchState stores client-reported watch state for the caller.
func RecordWatchState(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData := c.Locals("validatedWatchState").(*validators.WatchStateRequest)

	res, err := engine.RecordWatchState(c.UserContext(), progress.WatchStateEvent{
		StudentID:      userID,
		VideoID:        uint(reqData.VideoID),
		WatchedSeconds: reqData.WatchedSeconds,
		IsCompleted:    reqData.IsCompleted,
	})
	if err != nil {
		return progressError(c, err, "Failed to record progress!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recorded!", res)
}

func GetVideoProgress(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	videoID := c.Locals("videoID").(int)

	row, err := engine.VideoProgress(c.UserContext(), userID, uint(videoID))
	if err != nil {
		return progressError(c, err, "Failed to fetch progress!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", row)
}

// RecomputeCourseProgress reruns the roll-up for the caller's enrollment.
func RecomputeCourseProgress(c *fiber.Ctx) error {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(int)

	rollup, err := engine.Recompute(c.UserContext(), userID, uint(courseID))
	if err != nil {
		return progressError(c, err, "Failed to recompute progress!")
	}
	if rollup == nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recomputed!", rollup)
}
