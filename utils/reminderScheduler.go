package utils

import (
	"lms/database"
	"lms/models"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// InitializeReminderScheduler starts the daily workshop reminder job
func InitializeReminderScheduler() {
	log.Println("[REMINDER-SCHEDULER] Initializing workshop reminder scheduler...")

	c := cron.New()

	// Run daily at 8 AM
	c.AddFunc("0 8 * * *", func() {
		log.Println("[REMINDER-SCHEDULER] Running daily workshop reminder check...")
		SendWorkshopReminders()
	})

	c.Start()
	log.Println("[REMINDER-SCHEDULER] Workshop reminder scheduler started - runs daily at 8 AM")
}

// SendWorkshopReminders emails every attendee of workshops happening tomorrow
func SendWorkshopReminders() {
	db := database.Database.Db

	tomorrow := now.With(time.Now().AddDate(0, 0, 1))
	start := tomorrow.BeginningOfDay()
	end := tomorrow.EndOfDay()

	var workshops []models.Workshop
	if err := db.Where("date BETWEEN ? AND ?", start, end).Find(&workshops).Error; err != nil {
		log.Printf("[REMINDER-SCHEDULER] Error fetching tomorrow's workshops: %v", err)
		return
	}

	log.Printf("[REMINDER-SCHEDULER] Found %d workshops scheduled for tomorrow", len(workshops))

	for _, workshop := range workshops {
		if len(workshop.Attendees) == 0 {
			continue
		}

		var attendees []models.User
		if err := db.Where("id IN ?", []uint(workshop.Attendees)).Find(&attendees).Error; err != nil {
			log.Printf("[REMINDER-SCHEDULER] Error fetching attendees for workshop %d: %v", workshop.ID, err)
			continue
		}

		for _, attendee := range attendees {
			SendWorkshopReminderEmail(attendee.Email, attendee.FirstName, workshop.Title, workshop.Date, workshop.Location)
		}
		log.Printf("[REMINDER-SCHEDULER] Sent %d reminders for workshop %q", len(attendees), workshop.Title)
	}
}
