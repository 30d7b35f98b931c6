package utils

import (
	"coachly/models"
	"time"

	"gorm.io/gorm"
)

// UserTierLevel returns the highest tier level among the user's active,
// unexpired subscriptions. Zero means no entitlement at all.
func UserTierLevel(db *gorm.DB, userID uint) (int, error) {
	var level int
	err := db.Model(&models.Subscription{}).
		Select("subscription_plans.tier_level").
		Joins("JOIN subscription_plans ON subscription_plans.id = subscriptions.plan_id").
		Where("subscriptions.user_id = ? AND subscriptions.status = ? AND subscriptions.is_deleted = false", userID, models.SubscriptionActive).
		Where("subscriptions.expires_at IS NULL OR subscriptions.expires_at > ?", time.Now()).
		Order("subscription_plans.tier_level DESC").
		Limit(1).
		Scan(&level).Error
	if err != nil {
		return 0, err
	}
	return level, nil
}
