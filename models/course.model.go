package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description"`
	MinTierLevel int    `json:"minTierLevel" gorm:"not null;default:1"`
	Status       string `json:"status" gorm:"default:'DRAFT'"` // DRAFT, PUBLISHED
	IsDeleted    bool   `json:"-" gorm:"default:false"`
}

type Lesson struct {
	gorm.Model
	CourseID        uint   `json:"courseId" gorm:"index;not null"`
	Title           string `json:"title"`
	VideoURL        string `json:"videoUrl"`
	Position        int    `json:"position" gorm:"not null;default:1"`
	DurationMinutes int    `json:"durationMinutes"`
	IsDeleted       bool   `json:"-" gorm:"default:false"`
	Course          Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
