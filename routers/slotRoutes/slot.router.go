package slotRoutes

import (
	slotController "coachly/controllers/slots"
	"coachly/middleware"
	slotValidator "coachly/validators/slots"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupSlotRoutes wires the public availability surface and the admin
// slot manager.
func SetupSlotRoutes(app *fiber.App, h *slotController.Handler, db *gorm.DB) {
	// Public: browse open slots, claim one
	slotGroup := app.Group("/slots")
	slotGroup.Get("/", slotValidator.SlotKind(), h.ListOpenSlots)
	slotGroup.Post("/claim", slotValidator.ClaimSlot(), h.ClaimSlot)

	// Operator-only slot management
	adminGroup := app.Group("/admin/slots", middleware.JWTMiddleware, middleware.RequireAdmin(db))
	adminGroup.Get("/", slotValidator.SlotKind(), h.ListAllSlots)
	adminGroup.Post("/", slotValidator.SlotKind(), slotValidator.CreateSlot(), h.CreateSlot)
	adminGroup.Post("/bulk", slotValidator.SlotKind(), slotValidator.BulkCreateSlots(), h.BulkCreateSlots)
	adminGroup.Post("/batch", slotValidator.SlotKind(), slotValidator.BatchCreateSlots(), h.BatchCreateSlots)
	adminGroup.Delete("/:id", h.DeleteSlot)
}
