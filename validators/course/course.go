package courseValidator

import (
	"coachly/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CreateCourseRequest is the validated course-create body.
type CreateCourseRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	MinTierLevel int    `json:"minTierLevel"`
}

// CreateLessonRequest is the validated lesson-create body.
type CreateLessonRequest struct {
	Title           string `json:"title"`
	VideoURL        string `json:"videoUrl"`
	Position        int    `json:"position"`
	DurationMinutes int    `json:"durationMinutes"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		if reqData.MinTierLevel < 1 {
			errors["minTierLevel"] = "Minimum tier level must be at least 1!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateLessonRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if strings.TrimSpace(reqData.VideoURL) == "" {
			errors["videoUrl"] = "Video URL is required!"
		}
		if reqData.Position < 1 {
			errors["position"] = "Position must be at least 1!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}
