package planController

import (
	"coachly/middleware"
	"coachly/models"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handler serves subscription plans and admin-granted subscriptions.
// Payment processing itself happens off-platform; an admin grants the
// subscription once the processor reports success.
type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// ListPlans returns the purchasable plans, cheapest first.
func (h *Handler) ListPlans(c *fiber.Ctx) error {
	var plans []models.SubscriptionPlan
	if err := h.DB.
		Where("is_deleted = false").
		Order("tier_level asc").
		Find(&plans).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch plans!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plans fetched!", plans)
}

// MySubscription returns the caller's current subscription, if any.
func (h *Handler) MySubscription(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var sub models.Subscription
	err := h.DB.
		Where("user_id = ? AND status = ? AND is_deleted = false", userID, models.SubscriptionActive).
		Preload("Plan").
		Order("created_at desc").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "No active subscription.", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subscription!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription fetched!", sub)
}

// GrantSubscription activates a plan for a user. Admin action.
func (h *Handler) GrantSubscription(c *fiber.Ctx) error {
	reqData := new(struct {
		UserID       uint `json:"userId"`
		PlanID       uint `json:"planId"`
		DurationDays int  `json:"durationDays"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	errs := make(map[string]string)
	if reqData.UserID == 0 {
		errs["userId"] = "User ID is required!"
	}
	if reqData.PlanID == 0 {
		errs["planId"] = "Plan ID is required!"
	}
	if len(errs) > 0 {
		return middleware.ValidationErrorResponse(c, errs)
	}

	var user models.User
	if err := h.DB.Where("id = ? AND is_deleted = false", reqData.UserID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var plan models.SubscriptionPlan
	if err := h.DB.Where("id = ? AND is_deleted = false", reqData.PlanID).First(&plan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Plan not found!", nil)
	}

	sub := models.Subscription{
		UserID: reqData.UserID,
		PlanID: reqData.PlanID,
		Status: models.SubscriptionActive,
	}
	if reqData.DurationDays > 0 {
		expires := time.Now().AddDate(0, 0, reqData.DurationDays)
		sub.ExpiresAt = &expires
	}

	if err := h.DB.Create(&sub).Error; err != nil {
		log.Printf("Error creating subscription: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grant subscription!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subscription granted!", sub)
}

// RevokeSubscription cancels a user's subscription. Admin action.
func (h *Handler) RevokeSubscription(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subscription id!", nil)
	}

	var sub models.Subscription
	if err := h.DB.First(&sub, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subscription not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subscription!", nil)
	}

	if err := h.DB.Model(&sub).Update("status", models.SubscriptionCancelled).Error; err != nil {
		log.Printf("Error cancelling subscription %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel subscription!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription cancelled!", nil)
}
