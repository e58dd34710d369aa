package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type ModuleRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"max=2000"`
	OrderNum    int    `json:"order_num" validate:"gte=0"`
}

type VideoRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=200"`
	Duration string `json:"duration" validate:"required,duration"`
	VideoURL string `json:"video_url" validate:"omitempty,url"`
	OrderNum int    `json:"order_num" validate:"gte=0"`
}

type VideoUpdateRequest struct {
	Title    string `json:"title" validate:"omitempty,min=3,max=200"`
	Duration string `json:"duration" validate:"omitempty,duration"`
	VideoURL string `json:"video_url" validate:"omitempty,url"`
	OrderNum *int   `json:"order_num" validate:"omitempty,gte=0"`
}

func CreateModule() fiber.Handler {
	idParam := IDParam("id", "courseID", "Course ID")
	return func(c *fiber.Ctx) error {
		reqData := new(ModuleRequest)
		if ok, err := bindBody(c, reqData, fiber.StatusUnprocessableEntity); !ok {
			return err
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		c.Locals("validatedModule", reqData)
		return idParam(c)
	}
}

func CreateVideo() fiber.Handler {
	idParam := IDParam("id", "moduleID", "Module ID")
	return func(c *fiber.Ctx) error {
		reqData := new(VideoRequest)
		if ok, err := bindBody(c, reqData, fiber.StatusUnprocessableEntity); !ok {
			return err
		}
		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Duration = strings.TrimSpace(reqData.Duration)
		c.Locals("validatedVideo", reqData)
		return idParam(c)
	}
}

func UpdateVideo() fiber.Handler {
	idParam := IDParam("id", "videoID", "Video ID")
	return func(c *fiber.Ctx) error {
		reqData := new(VideoUpdateRequest)
		if ok, err := bindBody(c, reqData, fiber.StatusUnprocessableEntity); !ok {
			return err
		}
		reqData.Duration = strings.TrimSpace(reqData.Duration)
		c.Locals("validatedVideoUpdate", reqData)
		return idParam(c)
	}
}
