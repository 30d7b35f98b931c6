package planRoutes

import (
	planController "coachly/controllers/plans"
	"coachly/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPlanRoutes(app *fiber.App, h *planController.Handler, db *gorm.DB) {
	planGroup := app.Group("/plans")
	planGroup.Get("/", h.ListPlans)

	subGroup := app.Group("/subscription", middleware.JWTMiddleware)
	subGroup.Get("/", h.MySubscription)

	adminGroup := app.Group("/admin/subscriptions", middleware.JWTMiddleware, middleware.RequireAdmin(db))
	adminGroup.Post("/", h.GrantSubscription)
	adminGroup.Delete("/:id", h.RevokeSubscription)
}
