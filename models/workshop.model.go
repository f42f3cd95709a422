package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Facilitator is embedded into Workshop
type Facilitator struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Workshop struct {
	gorm.Model
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date" gorm:"not null"`
	Duration    string      `json:"duration" gorm:"not null"`
	Facilitator Facilitator `json:"facilitator" gorm:"embedded;embeddedPrefix:facilitator_"`
	Location    string      `json:"location" gorm:"not null"`
	Price       string      `json:"price" gorm:"default:'Free'"`

	WorkshopImage         string `json:"workshopImage" gorm:"default:'https://images.unsplash.com/photo-1552664730-d307ca884978?q=80&w=2070'"`
	WorkshopImagePublicId string `json:"workshopImagePublicId" gorm:"default:''"`

	// Denormalized list of registered user ids.
	Attendees datatypes.JSONSlice[uint] `json:"attendees"`

	// Public share-link identifier for anonymous registration.
	ShareId string `json:"shareId" gorm:"uniqueIndex;default:NULL"`
}

// HasAttendee reports whether the user id is present in the workshop's
// attendee list.
func (w *Workshop) HasAttendee(userID uint) bool {
	for _, id := range w.Attendees {
		if id == userID {
			return true
		}
	}
	return false
}
