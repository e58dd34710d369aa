package courseValidator

import (
	"github.com/gofiber/fiber/v2"
)

// HeartbeatRequest is the fractional-watch event body.
type HeartbeatRequest struct {
	VideoID             int `json:"video_id" validate:"gt=0"`
	ElapsedDeltaSeconds int `json:"elapsed_delta_seconds" validate:"gte=0"`
}

// WatchStateRequest is the explicit event body.
type WatchStateRequest struct {
	VideoID        int  `json:"video_id" validate:"gt=0"`
	WatchedSeconds int  `json:"watched_seconds" validate:"gte=0"`
	IsCompleted    bool `json:"is_completed"`
}

// Progress endpoints answer invalid input with 400 so players can tell it apart from store failures.

func Heartbeat() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(HeartbeatRequest)
		if ok, err := bindBody(c, reqData, fiber.StatusBadRequest); !ok {
			return err
		}
		c.Locals("validatedHeartbeat", reqData)
		return c.Next()
	}
}

func WatchState() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(WatchStateRequest)
		if ok, err := bindBody(c, reqData, fiber.StatusBadRequest); !ok {
			return err
		}
		c.Locals("validatedWatchState", reqData)
		return c.Next()
	}
}
