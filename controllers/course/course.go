package courseController

import (
	"coachly/middleware"
	"coachly/models"
	"coachly/utils"
	courseValidator "coachly/validators/course"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Handler serves the course library.
type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// ListCourses returns published courses. Members see everything listed;
// lesson access is gated per course by tier.
func (h *Handler) ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := h.DB.
		Where("is_deleted = false AND status = ?", "PUBLISHED").
		Order("created_at asc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched!", courses)
}

// GetCourse returns a course with its lessons if the caller's tier clears
// the course's minimum.
func (h *Handler) GetCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var course models.Course
	if err := h.DB.Where("id = ? AND is_deleted = false AND status = ?", id, "PUBLISHED").First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	tier, err := utils.UserTierLevel(h.DB, userID)
	if err != nil {
		log.Printf("Error checking tier for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check your subscription!", nil)
	}
	if tier < course.MinTierLevel {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Your plan does not include this course. Upgrade to watch.", nil)
	}

	var lessons []models.Lesson
	if err := h.DB.
		Where("course_id = ? AND is_deleted = false", course.ID).
		Order("position asc").
		Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched!", fiber.Map{
		"course":  course,
		"lessons": lessons,
	})
}

// CreateCourse adds a draft course. Admin action.
func (h *Handler) CreateCourse(c *fiber.Ctx) error {
	req := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)

	course := models.Course{
		Title:        req.Title,
		Description:  req.Description,
		MinTierLevel: req.MinTierLevel,
		Status:       "DRAFT",
	}

	if err := h.DB.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created!", course)
}

// PublishCourse flips a draft course live. Admin action.
func (h *Handler) PublishCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var course models.Course
	if err := h.DB.Where("id = ? AND is_deleted = false", id).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	if err := h.DB.Model(&course).Update("status", "PUBLISHED").Error; err != nil {
		log.Printf("Error publishing course %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published!", nil)
}

// AddLesson appends a lesson to a course. Admin action.
func (h *Handler) AddLesson(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var course models.Course
	if err := h.DB.Where("id = ? AND is_deleted = false", id).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	req := c.Locals("validatedLesson").(*courseValidator.CreateLessonRequest)

	lesson := models.Lesson{
		CourseID:        course.ID,
		Title:           req.Title,
		VideoURL:        req.VideoURL,
		Position:        req.Position,
		DurationMinutes: req.DurationMinutes,
	}

	if err := h.DB.Create(&lesson).Error; err != nil {
		log.Printf("Error creating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson added!", lesson)
}

// DeleteCourse soft-deletes a course. Admin action.
func (h *Handler) DeleteCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	result := h.DB.Model(&models.Course{}).
		Where("id = ? AND is_deleted = false", id).
		Update("is_deleted", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted!", nil)
}
