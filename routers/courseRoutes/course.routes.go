package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course and progress routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course", middleware.JWTMiddleware)

	courseGroup.Get("/list", validators.List(), controllers.GetAllCourses)
	courseGroup.Get("/:id", validators.IDParam("id", "courseID", "Course ID"), controllers.GetCourseDetails)
	courseGroup.Post("/:id/enroll", validators.IDParam("id", "courseID", "Course ID"), controllers.EnrollInCourse)
	courseGroup.Get("/:id/progress", validators.IDParam("id", "courseID", "Course ID"), controllers.GetCourseProgress)
	courseGroup.Post("/:id/progress/recompute", validators.IDParam("id", "courseID", "Course ID"), controllers.RecomputeCourseProgress)

	userGroup := app.Group("/user", middleware.JWTMiddleware)
	userGroup.Get("/enrollments", controllers.GetEnrollments)

	// Progress events from the player
	progressGroup := app.Group("/progress", middleware.JWTMiddleware)
	progressGroup.Post("/heartbeat", validators.Heartbeat(), controllers.RecordHeartbeat)
	progressGroup.Post("/video", validators.WatchState(), controllers.RecordWatchState)
	progressGroup.Get("/video/:video_id", validators.IDParam("video_id", "videoID", "Video ID"), controllers.GetVideoProgress)
}
