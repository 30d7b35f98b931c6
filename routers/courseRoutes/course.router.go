package courseRoutes

import (
	courseController "coachly/controllers/course"
	"coachly/middleware"
	courseValidator "coachly/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupCourseRoutes wires the member course library and its admin CRUD.
func SetupCourseRoutes(app *fiber.App, h *courseController.Handler, db *gorm.DB) {
	courseGroup := app.Group("/courses", middleware.JWTMiddleware)
	courseGroup.Get("/", h.ListCourses)
	courseGroup.Get("/:id", h.GetCourse)

	adminGroup := app.Group("/admin/courses", middleware.JWTMiddleware, middleware.RequireAdmin(db))
	adminGroup.Post("/", courseValidator.CreateCourse(), h.CreateCourse)
	adminGroup.Patch("/:id/publish", h.PublishCourse)
	adminGroup.Post("/:id/lessons", courseValidator.CreateLesson(), h.AddLesson)
	adminGroup.Delete("/:id", h.DeleteCourse)
}
