package controllers

import (
	stderrors "errors"

	"lms/logger"
	"lms/middleware"
	"lms/models"
	"lms/services/progress"

	"github.com/gofiber/fiber/v2"
)

var (
	engine    *progress.Engine
	assembler *progress.Assembler
	log       = logger.Nop()
)

// Init wires the services used by the handlers in this package.
func Init(e *progress.Engine, a *progress.Assembler, l *logger.Logger) {
	engine = e
	assembler = a
	if l != nil {
		log = l.With("controller", "course")
	}
}

// progressError maps service errors onto HTTP statuses.
func progressError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case stderrors.Is(err, progress.ErrValidation):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	case stderrors.Is(err, progress.ErrNotEnrolled):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	case stderrors.Is(err, progress.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Not found!", nil)
	}
	log.Error(fallback, "error", err, "request_id", c.Locals("requestId"))
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, fallback, nil)
}

// currentUser loads the caller identified by the JWT middleware.
func currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	var user models.User
	if err := db().Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	return &user, nil
}
