package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscription statuses
const (
	SubscriptionActive    = "ACTIVE"
	SubscriptionExpired   = "EXPIRED"
	SubscriptionCancelled = "CANCELLED"
)

// SubscriptionPlan is a purchasable membership tier. TierLevel is an
// integer ranking; higher levels unlock more of the platform.
type SubscriptionPlan struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	TierLevel   int    `json:"tierLevel" gorm:"not null;default:1"`
	PriceCents  int    `json:"priceCents" gorm:"not null;default:0"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}

type Subscription struct {
	gorm.Model
	UserID    uint             `json:"userId" gorm:"index;not null"`
	PlanID    uint             `json:"planId" gorm:"index;not null"`
	Status    string           `json:"status" gorm:"default:'ACTIVE'"`
	ExpiresAt *time.Time       `json:"expiresAt"`
	IsDeleted bool             `json:"-" gorm:"default:false"`
	Plan      SubscriptionPlan `json:"plan" gorm:"foreignKey:PlanID"`
}
