package controllers

import (
	"lms/middleware"
	courseModels "lms/models/course"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAllCourses lists published courses.
func GetAllCourses(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	reqData, _ := c.Locals("validatedList").(*validators.PageRequest)
	page, limit, offset := validators.Pagination(reqData)

	published := func() *gorm.DB {
		return db().Model(&courseModels.Course{}).Where("is_published = ? AND is_deleted = ?", true, false)
	}

	var total int64
	if err := published().Count(&total).Error; err != nil {
		log.Error("count courses", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	var courses []courseModels.Course
	if err := published().Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		log.Error("list courses", "error", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns the nested course view with the caller's progress.
func GetCourseDetails(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	courseID := c.Locals("courseID").(int)

	view, err := assembler.CourseDetail(c.UserContext(), user.ID, uint(courseID))
	if err != nil {
		return progressError(c, err, "Failed to fetch course details!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", view)
}
