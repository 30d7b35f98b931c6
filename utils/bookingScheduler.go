package utils

import (
	"coachly/models"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializeBookingScheduler sets up the daily housekeeping jobs
func InitializeBookingScheduler(db *gorm.DB) {
	log.Println("[BOOKING-SCHEDULER] Initializing booking scheduler...")

	c := cron.New()

	// Run daily at 1 AM
	c.AddFunc("0 1 * * *", func() {
		log.Println("[BOOKING-SCHEDULER] Running daily housekeeping...")
		CompletePastSessions(db)
		ExpireSubscriptions(db)
	})

	c.Start()
	log.Println("[BOOKING-SCHEDULER] Booking scheduler started - runs daily at 1 AM")
}

// CompletePastSessions moves confirmed member sessions whose time has
// passed into COMPLETED.
func CompletePastSessions(db *gorm.DB) {
	today := now.BeginningOfDay()

	result := db.Model(&models.MemberBooking{}).
		Where("status = ? AND scheduled_at < ?", models.BookingConfirmed, today).
		Updates(map[string]interface{}{"status": models.BookingCompleted})

	if result.Error != nil {
		log.Printf("[BOOKING-SCHEDULER] Error completing past sessions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[BOOKING-SCHEDULER] Marked %d past sessions as completed", result.RowsAffected)
	}
}

// ExpireSubscriptions marks lapsed subscriptions as EXPIRED
func ExpireSubscriptions(db *gorm.DB) {
	nowTime := time.Now()

	result := db.Model(&models.Subscription{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.SubscriptionActive, nowTime).
		Updates(map[string]interface{}{"status": models.SubscriptionExpired})

	if result.Error != nil {
		log.Printf("[BOOKING-SCHEDULER] Error expiring subscriptions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[BOOKING-SCHEDULER] Expired %d subscriptions", result.RowsAffected)
	}
}
