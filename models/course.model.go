package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Instructor is embedded into Course
type Instructor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Course struct {
	gorm.Model
	Title       string     `json:"title" gorm:"unique;not null"`
	Description string     `json:"description" gorm:"not null"`
	Instructor  Instructor `json:"instructor" gorm:"embedded;embeddedPrefix:instructor_"`
	Duration    string     `json:"duration"`
	Price       string     `json:"price" gorm:"default:'Free'"`
	Date        time.Time  `json:"date"`

	CourseImage         string `json:"courseImage"`
	CourseImagePublicId string `json:"courseImagePublicId" gorm:"default:''"`

	// Denormalized mirror of the CourseRegistration ledger.
	EnrolledUsers datatypes.JSONSlice[uint] `json:"enrolledUsers"`
}

// HasEnrolledUser reports whether the user id is present in the course's
// denormalized enrolled-user list.
func (c *Course) HasEnrolledUser(userID uint) bool {
	for _, id := range c.EnrolledUsers {
		if id == userID {
			return true
		}
	}
	return false
}
