package bookingValidator

import (
	"coachly/middleware"
	"coachly/models"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionRequest is the validated body of a member 1:1 request.
type SessionRequest struct {
	ScheduledAt time.Time
	Notes       string
}

// StatusRequest is the validated body of a status transition.
type StatusRequest struct {
	Status string
}

func RequestSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ScheduledAt string `json:"scheduledAt"`
			Notes       string `json:"notes"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		scheduledAt, err := time.Parse(time.RFC3339, reqData.ScheduledAt)
		if err != nil {
			errors["scheduledAt"] = "scheduledAt must be an ISO-8601 timestamp!"
		} else if scheduledAt.Before(time.Now()) {
			errors["scheduledAt"] = "scheduledAt must be in the future!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSession", &SessionRequest{
			ScheduledAt: scheduledAt.UTC(),
			Notes:       strings.TrimSpace(reqData.Notes),
		})
		return c.Next()
	}
}

func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		status := strings.ToUpper(strings.TrimSpace(reqData.Status))
		switch status {
		case models.BookingConfirmed, models.BookingCancelled, models.BookingCompleted:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be confirmed, cancelled or completed!",
			})
		}

		c.Locals("validatedStatus", &StatusRequest{Status: status})
		return c.Next()
	}
}
