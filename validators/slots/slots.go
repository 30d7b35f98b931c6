package slotValidator

import (
	"coachly/middleware"
	"coachly/models"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ClaimRequest is the validated body of a public claim call.
type ClaimRequest struct {
	SlotID      uint   `json:"slotId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Notes       string `json:"notes"`
	MeetingType string `json:"meetingType"`
}

// CreateSlotRequest is the validated body of a single slot add.
type CreateSlotRequest struct {
	ScheduledAt     time.Time
	DurationMinutes int
}

// BulkCreateRequest carries pre-built slot specs.
type BulkCreateRequest struct {
	Slots []CreateSlotRequest
}

// BatchCreateRequest is the compact range+filter form.
type BatchCreateRequest struct {
	FromDate        time.Time
	ToDate          time.Time
	DaysOfWeek      []time.Weekday
	TimesOfDay      []string
	DurationMinutes int
}

func ClaimSlot() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ClaimRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.SlotID == 0 {
			errors["slotId"] = "Slot ID is required!"
		}

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}

		email := strings.TrimSpace(reqData.Email)
		if email == "" {
			errors["email"] = "Email is required!"
		} else if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
			errors["email"] = "Email is not valid!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedClaim", reqData)
		return c.Next()
	}
}

func CreateSlot() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ScheduledAt     string `json:"scheduledAt"`
			DurationMinutes int    `json:"durationMinutes"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		scheduledAt, err := time.Parse(time.RFC3339, reqData.ScheduledAt)
		if err != nil {
			errors["scheduledAt"] = "scheduledAt must be an ISO-8601 timestamp!"
		}

		if reqData.DurationMinutes < 1 {
			errors["durationMinutes"] = "Duration must be at least 1 minute!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSlot", &CreateSlotRequest{
			ScheduledAt:     scheduledAt.UTC(),
			DurationMinutes: reqData.DurationMinutes,
		})
		return c.Next()
	}
}

func BulkCreateSlots() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Slots []struct {
				ScheduledAt     string `json:"scheduledAt"`
				DurationMinutes int    `json:"durationMinutes"`
			} `json:"slots"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Slots) == 0 {
			errors["slots"] = "At least one slot is required!"
		}

		bulk := &BulkCreateRequest{}
		for _, s := range reqData.Slots {
			scheduledAt, err := time.Parse(time.RFC3339, s.ScheduledAt)
			if err != nil {
				errors["slots"] = "Every slot needs an ISO-8601 scheduledAt!"
				break
			}
			if s.DurationMinutes < 1 {
				errors["slots"] = "Every slot needs a duration of at least 1 minute!"
				break
			}
			bulk.Slots = append(bulk.Slots, CreateSlotRequest{
				ScheduledAt:     scheduledAt.UTC(),
				DurationMinutes: s.DurationMinutes,
			})
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBulk", bulk)
		return c.Next()
	}
}

func BatchCreateSlots() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FromDate        string   `json:"fromDate"`
			ToDate          string   `json:"toDate"`
			DaysOfWeek      []int    `json:"daysOfWeek"`
			TimesOfDay      []string `json:"timesOfDay"`
			DurationMinutes int      `json:"durationMinutes"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		fromDate, err := time.Parse("2006-01-02", reqData.FromDate)
		if err != nil {
			errors["fromDate"] = "fromDate must be a YYYY-MM-DD date!"
		}

		toDate, err := time.Parse("2006-01-02", reqData.ToDate)
		if err != nil {
			errors["toDate"] = "toDate must be a YYYY-MM-DD date!"
		} else if errors["fromDate"] == "" && toDate.Before(fromDate) {
			errors["toDate"] = "toDate must not be before fromDate!"
		}

		if len(reqData.DaysOfWeek) == 0 {
			errors["daysOfWeek"] = "At least one weekday is required!"
		}
		days := make([]time.Weekday, 0, len(reqData.DaysOfWeek))
		for _, d := range reqData.DaysOfWeek {
			if d < 0 || d > 6 {
				errors["daysOfWeek"] = "Weekdays must be 0 (Sunday) through 6 (Saturday)!"
				break
			}
			days = append(days, time.Weekday(d))
		}

		if len(reqData.TimesOfDay) == 0 {
			errors["timesOfDay"] = "At least one time of day is required!"
		}
		for _, tod := range reqData.TimesOfDay {
			if _, err := time.Parse("15:04", tod); err != nil {
				errors["timesOfDay"] = "Times of day must be HH:MM!"
				break
			}
		}

		if reqData.DurationMinutes < 1 {
			errors["durationMinutes"] = "Duration must be at least 1 minute!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBatch", &BatchCreateRequest{
			FromDate:        fromDate,
			ToDate:          toDate,
			DaysOfWeek:      days,
			TimesOfDay:      reqData.TimesOfDay,
			DurationMinutes: reqData.DurationMinutes,
		})
		return c.Next()
	}
}

// SlotKind validates the optional ?kind= query filter.
func SlotKind() fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind := strings.ToUpper(c.Query("kind", models.SlotKindIntro))
		if kind != models.SlotKindIntro && kind != models.SlotKindCoaching {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"kind": "Kind must be intro or coaching!",
			})
		}
		c.Locals("slotKind", kind)
		return c.Next()
	}
}
