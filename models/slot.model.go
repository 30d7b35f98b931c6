package models

import (
	"time"

	"gorm.io/gorm"
)

// Slot kinds, one logical store per booking type
const (
	SlotKindIntro    = "INTRO"    // free intro calls
	SlotKindCoaching = "COACHING" // paid coaching sessions
)

// Slot is a publishable time window the coach offers for booking.
// IsBooked moves false -> true exactly once; slots are never un-booked,
// the coach deletes and recreates instead.
type Slot struct {
	gorm.Model
	Kind            string    `json:"kind" gorm:"index;not null;default:'INTRO'"`
	ScheduledAt     time.Time `json:"scheduledAt" gorm:"index;not null"`
	DurationMinutes int       `json:"durationMinutes" gorm:"not null"`
	IsBooked        bool      `json:"isBooked" gorm:"not null;default:false"`
}
