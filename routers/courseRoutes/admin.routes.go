package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up catalog management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware)

	adminGroup.Post("/course/create", validators.CreateCourse(), controllers.CreateCourse)
	adminGroup.Put("/course/:id", validators.UpdateCourse(), controllers.UpdateCourse)
	adminGroup.Post("/course/:id/publish", validators.Publish("id", "courseID", "Course ID"), controllers.PublishCourse)
	adminGroup.Delete("/course/:id", validators.IDParam("id", "courseID", "Course ID"), controllers.DeleteCourse)
	adminGroup.Get("/course/:id/enrollments", validators.List(), validators.IDParam("id", "courseID", "Course ID"), controllers.AdminGetCourseEnrollments)
	adminGroup.Get("/course/:id/completed", validators.List(), validators.IDParam("id", "courseID", "Course ID"), controllers.AdminGetCompletedStudents)
	adminGroup.Get("/student/:user_id/progress", validators.IDParam("user_id", "targetUserID", "User ID"), controllers.AdminGetStudentProgress)

	adminGroup.Post("/course/:id/module", validators.CreateModule(), controllers.CreateModule)
	adminGroup.Post("/module/:id/publish", validators.Publish("id", "moduleID", "Module ID"), controllers.PublishModule)
	adminGroup.Delete("/module/:id", validators.IDParam("id", "moduleID", "Module ID"), controllers.DeleteModule)

	adminGroup.Post("/module/:id/video", validators.CreateVideo(), controllers.CreateVideo)
	adminGroup.Put("/video/:id", validators.UpdateVideo(), controllers.UpdateVideo)
	adminGroup.Post("/video/:id/publish", validators.Publish("id", "videoID", "Video ID"), controllers.PublishVideo)
	adminGroup.Delete("/video/:id", validators.IDParam("id", "videoID", "Video ID"), controllers.DeleteVideo)
}
