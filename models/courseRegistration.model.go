package models

import (
	"gorm.io/gorm"
)

// CourseRegistration is the enrollment ledger: one row per (course, user) pair.
type CourseRegistration struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"not null;uniqueIndex:idx_course_user"`
	UserID      uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_course_user"`
	MessageBody string `json:"messageBody"`

	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	User   User   `json:"enrolledUser,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
