package slotController

import (
	"coachly/middleware"
	"coachly/models"
	"coachly/utils"
	slotValidator "coachly/validators/slots"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier delivers booking notifications. Satisfied by utils.EmailNotifier.
type Notifier interface {
	SlotBooked(booking models.SlotBooking, slot models.Slot)
}

// Handler serves the public availability surface and the admin slot manager.
type Handler struct {
	DB   *gorm.DB
	Mail Notifier
}

func NewHandler(db *gorm.DB, mail Notifier) *Handler {
	return &Handler{DB: db, Mail: mail}
}

// errSlotUnavailable is the single conflict signal for the claim flow:
// the conditional update matched no open row, so somebody else won.
var errSlotUnavailable = errors.New("slot no longer available")

// ListOpenSlots returns future, unbooked slots of the requested kind,
// ascending by time.
func (h *Handler) ListOpenSlots(c *fiber.Ctx) error {
	kind := c.Locals("slotKind").(string)

	var slots []models.Slot
	if err := h.DB.
		Where("kind = ? AND is_booked = false AND scheduled_at > ?", kind, time.Now()).
		Order("scheduled_at asc").
		Find(&slots).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch slots!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slots fetched!", slots)
}

// ClaimSlot books an open slot for a visitor. The booked flag flips via a
// single conditional update and the booking row is inserted in the same
// transaction, so at most one claim can ever win a slot and a booked slot
// always has its booking row.
func (h *Handler) ClaimSlot(c *fiber.Ctx) error {
	req := c.Locals("validatedClaim").(*slotValidator.ClaimRequest)

	var slot models.Slot
	var booking models.SlotBooking

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Slot{}).
			Where("id = ? AND is_booked = false", req.SlotID).
			Update("is_booked", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errSlotUnavailable
		}

		if err := tx.First(&slot, req.SlotID).Error; err != nil {
			return err
		}

		booking = models.SlotBooking{
			Reference:   uuid.NewString(),
			SlotID:      slot.ID,
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone,
			Notes:       req.Notes,
			MeetingType: req.MeetingType,
		}
		return tx.Create(&booking).Error
	})

	if err != nil {
		if errors.Is(err, errSlotUnavailable) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Slot is no longer available!", nil)
		}
		log.Printf("Error claiming slot %d: %v", req.SlotID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to book the slot!", nil)
	}

	// Data is committed; notifications are best-effort from here
	h.Mail.SlotBooked(booking, slot)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slot booked successfully!", fiber.Map{
		"reference":       booking.Reference,
		"scheduledAt":     slot.ScheduledAt,
		"durationMinutes": slot.DurationMinutes,
	})
}

// CreateSlot inserts one open slot. Overlapping times are allowed; only
// the slot row itself is protected against double booking.
func (h *Handler) CreateSlot(c *fiber.Ctx) error {
	kind := c.Locals("slotKind").(string)
	req := c.Locals("validatedSlot").(*slotValidator.CreateSlotRequest)

	slot := models.Slot{
		Kind:            kind,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
	}

	if err := h.DB.Create(&slot).Error; err != nil {
		log.Printf("Error creating slot: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create slot!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Slot created!", fiber.Map{"slot": slot})
}

// BulkCreateSlots inserts a pre-built list of slots.
func (h *Handler) BulkCreateSlots(c *fiber.Ctx) error {
	kind := c.Locals("slotKind").(string)
	req := c.Locals("validatedBulk").(*slotValidator.BulkCreateRequest)

	slots := make([]models.Slot, 0, len(req.Slots))
	for _, s := range req.Slots {
		slots = append(slots, models.Slot{
			Kind:            kind,
			ScheduledAt:     s.ScheduledAt,
			DurationMinutes: s.DurationMinutes,
		})
	}

	if err := h.DB.Create(&slots).Error; err != nil {
		log.Printf("Error creating slots: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create slots!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Slots created!", fiber.Map{
		"slots": slots,
		"count": len(slots),
	})
}

// BatchCreateSlots expands a date range + weekday/time filters into slots
// and inserts them all.
func (h *Handler) BatchCreateSlots(c *fiber.Ctx) error {
	kind := c.Locals("slotKind").(string)
	req := c.Locals("validatedBatch").(*slotValidator.BatchCreateRequest)

	specs, err := utils.ExpandSlotRange(req.FromDate, req.ToDate, req.DaysOfWeek, req.TimesOfDay, req.DurationMinutes)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}
	if len(specs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No matching days in range.", fiber.Map{
			"slots": []models.Slot{},
			"count": 0,
		})
	}

	slots := make([]models.Slot, 0, len(specs))
	for _, spec := range specs {
		slots = append(slots, models.Slot{
			Kind:            kind,
			ScheduledAt:     spec.ScheduledAt,
			DurationMinutes: spec.DurationMinutes,
		})
	}

	if err := h.DB.Create(&slots).Error; err != nil {
		log.Printf("Error creating slots: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create slots!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Slots created!", fiber.Map{
		"slots": slots,
		"count": len(slots),
	})
}

// SlotWithBooking pairs a slot with its booking, if any.
type SlotWithBooking struct {
	models.Slot
	Booking *models.SlotBooking `json:"booking"`
}

// ListAllSlots returns every slot of the kind with booking detail,
// ascending by time. Admin view.
func (h *Handler) ListAllSlots(c *fiber.Ctx) error {
	kind := c.Locals("slotKind").(string)

	var slots []models.Slot
	if err := h.DB.
		Where("kind = ?", kind).
		Order("scheduled_at asc").
		Find(&slots).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch slots!", nil)
	}

	slotIDs := make([]uint, 0, len(slots))
	for _, s := range slots {
		slotIDs = append(slotIDs, s.ID)
	}

	bookingsBySlot := make(map[uint]models.SlotBooking)
	if len(slotIDs) > 0 {
		var bookings []models.SlotBooking
		if err := h.DB.Where("slot_id IN ?", slotIDs).Find(&bookings).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch bookings!", nil)
		}
		for _, b := range bookings {
			bookingsBySlot[b.SlotID] = b
		}
	}

	response := make([]SlotWithBooking, 0, len(slots))
	for _, s := range slots {
		entry := SlotWithBooking{Slot: s}
		if b, ok := bookingsBySlot[s.ID]; ok {
			booking := b
			entry.Booking = &booking
		}
		response = append(response, entry)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slots fetched!", response)
}

// DeleteSlot removes an open slot. Deleting a booked slot is refused so a
// booking can never be left pointing at nothing.
func (h *Handler) DeleteSlot(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid slot id!", nil)
	}

	var slot models.Slot
	if err := h.DB.First(&slot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Slot not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch slot!", nil)
	}

	if slot.IsBooked {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Cannot delete a booked slot!", nil)
	}

	if err := h.DB.Delete(&slot).Error; err != nil {
		log.Printf("Error deleting slot %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete slot!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Slot deleted!", nil)
}
