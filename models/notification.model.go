package models

import (
	"gorm.io/gorm"
)

const (
	NotificationCourse   = "course"
	NotificationWorkshop = "workshop"
	NotificationSignup   = "signup"
)

// Notification is an append-only event log entry surfaced on dashboards.
// UserId is nil for anonymous events (share-link signups).
type Notification struct {
	gorm.Model
	UserID      *uint  `json:"userId" gorm:"index"`
	Type        string `json:"type" gorm:"not null"` // course, workshop, signup
	Message     string `json:"message" gorm:"not null"`
	IsRead      bool   `json:"isRead" gorm:"default:false"`
	UserMessage string `json:"userMessage"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
