package slotController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"coachly/config"
	slotController "coachly/controllers/slots"
	"coachly/database"
	"coachly/middleware"
	"coachly/models"
	slotRoutes "coachly/routers/slotRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeNotifier struct {
	mu     sync.Mutex
	booked []models.SlotBooking
}

func (f *fakeNotifier) SlotBooked(booking models.SlotBooking, slot models.Slot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.booked = append(f.booked, booking)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.booked)
}

func setupTest(t *testing.T) (*fiber.App, *gorm.DB, *fakeNotifier) {
	t.Helper()
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	mail := &fakeNotifier{}
	app := fiber.New()
	slotRoutes.SetupSlotRoutes(app, slotController.NewHandler(db, mail), db)

	return app, db, mail
}

func adminToken(t *testing.T, db *gorm.DB) string {
	t.Helper()
	admin := models.User{Name: "Coach", Email: fmt.Sprintf("coach-%d@example.com", time.Now().UnixNano()), Role: "ADMIN", Password: "x"}
	require.NoError(t, db.Create(&admin).Error)
	token, err := middleware.GenerateJWT(admin.ID, admin.Name, admin.Role, admin.Email)
	require.NoError(t, err)
	return token
}

func jsonRequest(method, target string, body interface{}, token string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeResponse(t *testing.T, resp *http.Response) apiResponse {
	t.Helper()
	var out apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createOpenSlot(t *testing.T, db *gorm.DB, at time.Time) models.Slot {
	t.Helper()
	slot := models.Slot{Kind: models.SlotKindIntro, ScheduledAt: at, DurationMinutes: 30}
	require.NoError(t, db.Create(&slot).Error)
	return slot
}

func TestClaimSlot(t *testing.T) {
	app, db, mail := setupTest(t)
	slot := createOpenSlot(t, db, time.Now().Add(48*time.Hour))

	resp, err := app.Test(jsonRequest(http.MethodPost, "/slots/claim", fiber.Map{
		"slotId": slot.ID,
		"name":   "Ada Lovelace",
		"email":  "ada@example.com",
		"phone":  "+4470000000",
	}, ""), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Slot
	require.NoError(t, db.First(&updated, slot.ID).Error)
	assert.True(t, updated.IsBooked)

	var bookings []models.SlotBooking
	require.NoError(t, db.Where("slot_id = ?", slot.ID).Find(&bookings).Error)
	require.Len(t, bookings, 1)
	assert.Equal(t, "ada@example.com", bookings[0].Email)
	assert.NotEmpty(t, bookings[0].Reference)

	assert.Equal(t, 1, mail.count())
}

func TestClaimSlotAlreadyBooked(t *testing.T) {
	app, db, _ := setupTest(t)
	slot := createOpenSlot(t, db, time.Now().Add(48*time.Hour))

	first, err := app.Test(jsonRequest(http.MethodPost, "/slots/claim", fiber.Map{
		"slotId": slot.ID, "name": "First", "email": "first@example.com",
	}, ""), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, first.StatusCode)

	second, err := app.Test(jsonRequest(http.MethodPost, "/slots/claim", fiber.Map{
		"slotId": slot.ID, "name": "Second", "email": "second@example.com",
	}, ""), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, second.StatusCode)

	var count int64
	db.Model(&models.SlotBooking{}).Where("slot_id = ?", slot.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestClaimSlotMissing(t *testing.T) {
	app, db, _ := setupTest(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/slots/claim", fiber.Map{
		"slotId": 9999, "name": "Ghost", "email": "ghost@example.com",
	}, ""), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var count int64
	db.Model(&models.SlotBooking{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestClaimSlotMissingEmail(t *testing.T) {
	app, db, _ := setupTest(t)
	slot := createOpenSlot(t, db, time.Now().Add(48*time.Hour))

	resp, err := app.Test(jsonRequest(http.MethodPost, "/slots/claim", fiber.Map{
		"slotId": slot.ID, "name": "No Email",
	}, ""), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Nothing was written
	var updated models.Slot
	require.NoError(t, db.First(&updated, slot.ID).Error)
	assert.False(t, updated.IsBooked)

	var count int64
	db.Model(&models.SlotBooking{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestClaimSlotConcurrent(t *testing.T) {
	app, db, _ := setupTest(t)
	slot := createOpenSlot(t, db, time.Now().Add(48*time.Hour))

	const attempts = 10
	statuses := make(chan int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := app.Test(jsonRequest(http.MethodPost, "/slots/claim", fiber.Map{
				"slotId": slot.ID,
				"name":   fmt.Sprintf("Racer %d", i),
				"email":  fmt.Sprintf("racer%d@example.com", i),
			}, ""), -1)
			if err != nil {
				statuses <- 0
				return
			}
			statuses <- resp.StatusCode
		}(i)
	}
	wg.Wait()
	close(statuses)

	wins := 0
	for code := range statuses {
		if code == http.StatusOK {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one claim may win")

	var count int64
	db.Model(&models.SlotBooking{}).Where("slot_id = ?", slot.ID).Count(&count)
	assert.EqualValues(t, 1, count, "exactly one booking row may reference the slot")
}

func TestListOpenSlots(t *testing.T) {
	app, db, _ := setupTest(t)

	later := createOpenSlot(t, db, time.Now().Add(72*time.Hour))
	sooner := createOpenSlot(t, db, time.Now().Add(24*time.Hour))

	// Booked and past slots must not appear
	booked := createOpenSlot(t, db, time.Now().Add(96*time.Hour))
	require.NoError(t, db.Model(&booked).Update("is_booked", true).Error)
	createOpenSlot(t, db, time.Now().Add(-24*time.Hour))

	fetch := func() []models.Slot {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/slots", nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var slots []models.Slot
		require.NoError(t, json.Unmarshal(decodeResponse(t, resp).Data, &slots))
		return slots
	}

	slots := fetch()
	require.Len(t, slots, 2)
	assert.Equal(t, sooner.ID, slots[0].ID)
	assert.Equal(t, later.ID, slots[1].ID)

	// Idempotent read: same result, same order
	again := fetch()
	require.Len(t, again, 2)
	assert.Equal(t, slots[0].ID, again[0].ID)
	assert.Equal(t, slots[1].ID, again[1].ID)
}

func TestBatchCreateSlots(t *testing.T) {
	app, db, _ := setupTest(t)
	token := adminToken(t, db)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/admin/slots/batch?kind=coaching", fiber.Map{
		"fromDate":        "2024-06-03",
		"toDate":          "2024-06-09",
		"daysOfWeek":      []int{1, 3, 5}, // Mon, Wed, Fri
		"timesOfDay":      []string{"10:00", "14:00"},
		"durationMinutes": 60,
	}, token), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var data struct {
		Slots []models.Slot `json:"slots"`
		Count int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(decodeResponse(t, resp).Data, &data))
	assert.Equal(t, 6, data.Count)
	require.Len(t, data.Slots, 6)

	for i := 1; i < len(data.Slots); i++ {
		assert.True(t, data.Slots[i-1].ScheduledAt.Before(data.Slots[i].ScheduledAt))
	}

	var count int64
	db.Model(&models.Slot{}).Where("kind = ?", models.SlotKindCoaching).Count(&count)
	assert.EqualValues(t, 6, count)
}

func TestCreateSlotRequiresAdmin(t *testing.T) {
	app, db, _ := setupTest(t)

	member := models.User{Name: "Member", Email: "member-slots@example.com", Role: "USER", Password: "x"}
	require.NoError(t, db.Create(&member).Error)
	token, err := middleware.GenerateJWT(member.ID, member.Name, member.Role, member.Email)
	require.NoError(t, err)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/admin/slots", fiber.Map{
		"scheduledAt":     time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"durationMinutes": 30,
	}, token), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDeleteSlot(t *testing.T) {
	app, db, _ := setupTest(t)
	token := adminToken(t, db)

	open := createOpenSlot(t, db, time.Now().Add(24*time.Hour))

	resp, err := app.Test(jsonRequest(http.MethodDelete, fmt.Sprintf("/admin/slots/%d", open.ID), nil, token), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.Slot{}).Where("id = ?", open.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestDeleteBookedSlotRefused(t *testing.T) {
	app, db, _ := setupTest(t)
	token := adminToken(t, db)

	slot := createOpenSlot(t, db, time.Now().Add(24*time.Hour))
	require.NoError(t, db.Model(&slot).Update("is_booked", true).Error)
	require.NoError(t, db.Create(&models.SlotBooking{Reference: "ref-1", SlotID: slot.ID, Name: "Taken", Email: "taken@example.com"}).Error)

	resp, err := app.Test(jsonRequest(http.MethodDelete, fmt.Sprintf("/admin/slots/%d", slot.ID), nil, token), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var count int64
	db.Model(&models.Slot{}).Where("id = ?", slot.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestListAllSlotsWithBookings(t *testing.T) {
	app, db, _ := setupTest(t)
	token := adminToken(t, db)

	open := createOpenSlot(t, db, time.Now().Add(24*time.Hour))
	booked := createOpenSlot(t, db, time.Now().Add(48*time.Hour))
	require.NoError(t, db.Model(&booked).Update("is_booked", true).Error)
	require.NoError(t, db.Create(&models.SlotBooking{Reference: "ref-2", SlotID: booked.ID, Name: "Grace", Email: "grace@example.com"}).Error)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/admin/slots", nil, token), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []struct {
		models.Slot
		Booking *models.SlotBooking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(decodeResponse(t, resp).Data, &entries))
	require.Len(t, entries, 2)

	assert.Equal(t, open.ID, entries[0].ID)
	assert.Nil(t, entries[0].Booking)
	assert.Equal(t, booked.ID, entries[1].ID)
	require.NotNil(t, entries[1].Booking)
	assert.Equal(t, "grace@example.com", entries[1].Booking.Email)
}
