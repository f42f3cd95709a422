package models

import (
	"gorm.io/gorm"
)

// Register records an anonymous share-link workshop signup. Rows are created
// once and never updated.
type Register struct {
	gorm.Model
	WorkshopID  uint   `json:"workshopId" gorm:"not null;uniqueIndex:idx_workshop_email"`
	FullName    string `json:"fullName" gorm:"not null"`
	Email       string `json:"email" gorm:"not null;uniqueIndex:idx_workshop_email"`
	PhoneNumber string `json:"phoneNumber"`

	Workshop Workshop `json:"workshop,omitempty" gorm:"foreignKey:WorkshopID;constraint:OnDelete:CASCADE"`
}
