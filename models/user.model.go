package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	gorm.Model
	FirstName   string `json:"firstName" gorm:"not null"`
	LastName    string `json:"lastName" gorm:"not null"`
	Email       string `json:"email" gorm:"unique;not null"`
	Password    string `json:"-" gorm:"not null"`
	UserImage   string `json:"userImage" gorm:"default:'https://upload.wikimedia.org/wikipedia/commons/5/59/User-avatar.svg'"`
	Role        string `json:"role" gorm:"default:'user'"` // user, admin
	Gender      string `json:"gender" gorm:"default:'sex not specified'"`
	Location    string `json:"location" gorm:"default:'location not specified'"`
	PhoneNumber string `json:"phoneNumber" gorm:"default:'xxx-xxxx-xxxx'"`

	// Denormalized back-references, kept in sync by the enrollment flows.
	Courses   datatypes.JSONSlice[uint] `json:"courses"`
	Workshops datatypes.JSONSlice[uint] `json:"workshops"`

	HasChosenPath bool `json:"hasChosenPath" gorm:"default:false"`
}

// HasWorkshop reports whether the workshop id is present in the user's
// denormalized workshop list.
func (u *User) HasWorkshop(workshopID uint) bool {
	for _, id := range u.Workshops {
		if id == workshopID {
			return true
		}
	}
	return false
}

// HasCourse reports whether the course id is present in the user's
// denormalized course list.
func (u *User) HasCourse(courseID uint) bool {
	for _, id := range u.Courses {
		if id == courseID {
			return true
		}
	}
	return false
}
