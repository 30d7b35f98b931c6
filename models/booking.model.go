package models

import (
	"time"

	"gorm.io/gorm"
)

// Member booking statuses
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCompleted = "COMPLETED"
	BookingCancelled = "CANCELLED"
)

// SlotBooking records who claimed a published slot (public lead-gen flow).
type SlotBooking struct {
	gorm.Model
	Reference   string `json:"reference" gorm:"uniqueIndex;not null"`
	SlotID      uint   `json:"slotId" gorm:"index;not null"`
	Name        string `json:"name" gorm:"not null"`
	Email       string `json:"email" gorm:"not null"`
	Phone       string `json:"phone"`
	Notes       string `json:"notes"`
	MeetingType string `json:"meetingType"`
	Slot        Slot   `json:"slot" gorm:"foreignKey:SlotID"`
}

// MemberBooking is a tier-gated 1:1 session request. The member proposes
// a time rather than claiming a published slot, so there is no claim
// contention here; the coach confirms or cancels.
type MemberBooking struct {
	gorm.Model
	Reference   string    `json:"reference" gorm:"uniqueIndex;not null"`
	UserID      uint      `json:"userId" gorm:"index;not null"`
	ScheduledAt time.Time `json:"scheduledAt" gorm:"not null"`
	Notes       string    `json:"notes"`
	Status      string    `json:"status" gorm:"index;default:'PENDING'"`
	RoomURL     string    `json:"roomUrl"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
}
