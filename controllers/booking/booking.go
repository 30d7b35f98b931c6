package bookingController

import (
	"coachly/config"
	"coachly/middleware"
	"coachly/models"
	"coachly/utils"
	bookingValidator "coachly/validators/booking"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier delivers session lifecycle emails. Satisfied by utils.EmailNotifier.
type Notifier interface {
	SessionRequested(user models.User, booking models.MemberBooking)
	SessionConfirmed(user models.User, booking models.MemberBooking)
	SessionCancelled(user models.User, booking models.MemberBooking)
}

// RoomService provisions a private video room for a confirmed session.
// Satisfied by utils.RoomClient.
type RoomService interface {
	EnsureRoom(reference string) (string, error)
}

// Handler serves the member 1:1 session flow.
type Handler struct {
	DB    *gorm.DB
	Mail  Notifier
	Rooms RoomService
}

func NewHandler(db *gorm.DB, mail Notifier, rooms RoomService) *Handler {
	return &Handler{DB: db, Mail: mail, Rooms: rooms}
}

// allowedTransitions is the member booking state machine. COMPLETED and
// CANCELLED are terminal.
var allowedTransitions = map[string][]string{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCompleted, models.BookingCancelled},
}

func transitionAllowed(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// RequestSession creates a pending 1:1 booking for a member whose plan
// tier clears the configured threshold.
func (h *Handler) RequestSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := h.DB.Where("id = ? AND is_deleted = false", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Entitlement check: active subscription tier must clear the bar
	tier, err := utils.UserTierLevel(h.DB, userID)
	if err != nil {
		log.Printf("Error checking tier for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check your subscription!", nil)
	}
	if tier < config.AppConfig.BookingTierLevel {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Your plan does not include 1:1 sessions. Upgrade to book.", nil)
	}

	req := c.Locals("validatedSession").(*bookingValidator.SessionRequest)

	booking := models.MemberBooking{
		Reference:   uuid.NewString(),
		UserID:      userID,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
		Status:      models.BookingPending,
	}

	if err := h.DB.Create(&booking).Error; err != nil {
		log.Printf("Error creating member booking: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create booking!", nil)
	}

	h.Mail.SessionRequested(user, booking)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Session requested!", booking)
}

// ListMyBookings returns the caller's own bookings, newest first.
func (h *Handler) ListMyBookings(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var bookings []models.MemberBooking
	if err := h.DB.
		Where("user_id = ?", userID).
		Order("scheduled_at desc").
		Find(&bookings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch bookings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bookings fetched!", bookings)
}

// ListAllBookings returns every member booking. Admin view.
func (h *Handler) ListAllBookings(c *fiber.Ctx) error {
	status := c.Query("status")

	query := h.DB.Model(&models.MemberBooking{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.MemberBooking
	if err := query.Order("scheduled_at asc").Find(&bookings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch bookings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bookings fetched!", bookings)
}

// UpdateStatus advances a booking through the state machine. Confirming is
// operator-only and provisions the video room before the status flips;
// cancelling is allowed to the operator or the owning member.
func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var caller models.User
	if err := h.DB.Where("id = ? AND is_deleted = false", userID).First(&caller).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	isAdmin := caller.Role == "ADMIN"

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid booking id!", nil)
	}

	req := c.Locals("validatedStatus").(*bookingValidator.StatusRequest)

	var booking models.MemberBooking
	if err := h.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Booking not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch booking!", nil)
	}

	// Ownership gate: members may only cancel their own bookings. Every
	// other transition belongs to the operator.
	if !isAdmin {
		if booking.UserID != userID || req.Status != models.BookingCancelled {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not allowed to perform this action!", nil)
		}
	}

	if !transitionAllowed(booking.Status, req.Status) {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Booking cannot move to that status!", nil)
	}

	var owner models.User
	if err := h.DB.First(&owner, booking.UserID).Error; err != nil {
		log.Printf("Error fetching booking owner %d: %v", booking.UserID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update booking!", nil)
	}

	updates := map[string]interface{}{"status": req.Status}

	if req.Status == models.BookingConfirmed {
		// Provision the room before flipping the status so a failed
		// provider call never leaves a confirmed booking with no link
		roomURL, err := h.Rooms.EnsureRoom(booking.Reference)
		if err != nil {
			log.Printf("Error provisioning room for booking %d: %v", booking.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to set up the session room!", nil)
		}
		updates["room_url"] = roomURL
		booking.RoomURL = roomURL
	}

	if err := h.DB.Model(&booking).Updates(updates).Error; err != nil {
		log.Printf("Error updating booking %d: %v", booking.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update booking!", nil)
	}
	booking.Status = req.Status

	switch req.Status {
	case models.BookingConfirmed:
		h.Mail.SessionConfirmed(owner, booking)
	case models.BookingCancelled:
		h.Mail.SessionCancelled(owner, booking)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Booking updated!", booking)
}
