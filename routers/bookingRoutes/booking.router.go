package bookingRoutes

import (
	bookingController "coachly/controllers/booking"
	"coachly/middleware"
	bookingValidator "coachly/validators/booking"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupBookingRoutes wires the member 1:1 session flow.
func SetupBookingRoutes(app *fiber.App, h *bookingController.Handler, db *gorm.DB) {
	bookingGroup := app.Group("/bookings", middleware.JWTMiddleware)

	bookingGroup.Post("/", bookingValidator.RequestSession(), h.RequestSession)
	bookingGroup.Get("/", h.ListMyBookings)
	bookingGroup.Patch("/:id/status", bookingValidator.UpdateStatus(), h.UpdateStatus)

	adminGroup := app.Group("/admin/bookings", middleware.JWTMiddleware, middleware.RequireAdmin(db))
	adminGroup.Get("/", h.ListAllBookings)
}
