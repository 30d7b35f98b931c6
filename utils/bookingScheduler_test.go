package utils

import (
	"testing"
	"time"

	"coachly/database"
	"coachly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestCompletePastSessions(t *testing.T) {
	db := setupDB(t)

	past := models.MemberBooking{Reference: "ref-past", UserID: 1, ScheduledAt: time.Now().AddDate(0, 0, -2), Status: models.BookingConfirmed}
	future := models.MemberBooking{Reference: "ref-future", UserID: 1, ScheduledAt: time.Now().AddDate(0, 0, 2), Status: models.BookingConfirmed}
	pastPending := models.MemberBooking{Reference: "ref-pending", UserID: 1, ScheduledAt: time.Now().AddDate(0, 0, -2), Status: models.BookingPending}
	require.NoError(t, db.Create(&past).Error)
	require.NoError(t, db.Create(&future).Error)
	require.NoError(t, db.Create(&pastPending).Error)

	CompletePastSessions(db)

	var reloaded models.MemberBooking
	require.NoError(t, db.First(&reloaded, past.ID).Error)
	assert.Equal(t, models.BookingCompleted, reloaded.Status)

	reloaded = models.MemberBooking{}
	require.NoError(t, db.First(&reloaded, future.ID).Error)
	assert.Equal(t, models.BookingConfirmed, reloaded.Status)

	// Pending requests the coach never confirmed are not completed
	reloaded = models.MemberBooking{}
	require.NoError(t, db.First(&reloaded, pastPending.ID).Error)
	assert.Equal(t, models.BookingPending, reloaded.Status)
}

func TestExpireSubscriptions(t *testing.T) {
	db := setupDB(t)

	plan := models.SubscriptionPlan{Name: "Pro", TierLevel: 2}
	require.NoError(t, db.Create(&plan).Error)

	yesterday := time.Now().AddDate(0, 0, -1)
	nextMonth := time.Now().AddDate(0, 1, 0)

	lapsed := models.Subscription{UserID: 1, PlanID: plan.ID, Status: models.SubscriptionActive, ExpiresAt: &yesterday}
	current := models.Subscription{UserID: 2, PlanID: plan.ID, Status: models.SubscriptionActive, ExpiresAt: &nextMonth}
	openEnded := models.Subscription{UserID: 3, PlanID: plan.ID, Status: models.SubscriptionActive}
	require.NoError(t, db.Create(&lapsed).Error)
	require.NoError(t, db.Create(&current).Error)
	require.NoError(t, db.Create(&openEnded).Error)

	ExpireSubscriptions(db)

	var reloaded models.Subscription
	require.NoError(t, db.First(&reloaded, lapsed.ID).Error)
	assert.Equal(t, models.SubscriptionExpired, reloaded.Status)

	reloaded = models.Subscription{}
	require.NoError(t, db.First(&reloaded, current.ID).Error)
	assert.Equal(t, models.SubscriptionActive, reloaded.Status)

	reloaded = models.Subscription{}
	require.NoError(t, db.First(&reloaded, openEnded.ID).Error)
	assert.Equal(t, models.SubscriptionActive, reloaded.Status)

	// Lapsed subscriptions no longer count toward entitlement
	level, err := UserTierLevel(db, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, level)

	level, err = UserTierLevel(db, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, level)
}
