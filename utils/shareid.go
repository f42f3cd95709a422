package utils

import (
	"lms/models"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerateUniqueShareId produces a short identifier for public workshop
// share links, re-rolling on the rare collision with an existing workshop.
func GenerateUniqueShareId(db *gorm.DB, length int) (string, error) {
	for {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")[:length]

		var existing models.Workshop
		err := db.Where("share_id = ?", id).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
}
