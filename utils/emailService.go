package utils

import (
	"fmt"
	"lms/config"
	"log"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends a single HTML email through SendGrid. Returns without
// sending when no API key is configured.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendGridApiKey == "" {
		log.Printf("Email disabled, skipping send to %s (%s)", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("Pathway Hub", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", getEmailTemplate(subject, htmlBody))

	client := sendgrid.NewSendClient(config.AppConfig.SendGridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid status %d", resp.StatusCode)
	}
	return nil
}

// HTML wrapper shared by every outgoing email
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3A4B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3A4B; line-height: 1.6; }
			.content h2 { color: #1B3A4B; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #56A3A6; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>PATHWAY HUB</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Pathway Hub. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---
// All triggers are fire-and-forget: a failed send is logged and never fails
// the request that raised it.

// SendWelcomeEmail greets a freshly registered user
func SendWelcomeEmail(email, firstName string) {
	subject := "Welcome to Pathway Hub"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Pathway Hub</strong>! Your account has been created.</p>
		<p>Browse our courses and upcoming workshops to choose your learning path.</p>
	`, firstName)

	go SendEmail(firstName, email, subject, body)
}

// SendCourseRegistrationEmail confirms a course enrollment
func SendCourseRegistrationEmail(email, firstName, courseTitle string) {
	subject := "Course Registration Confirmation"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have successfully registered for <strong>%s</strong>.</p>
		<div class="info-box">
			Head over to your dashboard to see all your registered courses.
		</div>
	`, firstName, courseTitle)

	go SendEmail(firstName, email, subject, body)
}

// SendWorkshopRegistrationEmail confirms a workshop registration
func SendWorkshopRegistrationEmail(email, firstName, title string, date time.Time, duration, location string) {
	subject := "Workshop Registration Confirmation"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have successfully registered for the workshop <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Date:</strong> %s<br>
			<strong>Duration:</strong> %s<br>
			<strong>Location:</strong> %s
		</div>
	`, firstName, title, date.Format("Monday, 02 Jan 2006 15:04"), duration, location)

	go SendEmail(firstName, email, subject, body)
}

// SendWorkshopReminderEmail reminds an attendee about tomorrow's workshop
func SendWorkshopReminderEmail(email, firstName, title string, date time.Time, location string) {
	subject := "Workshop Reminder: " + title
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder that <strong>%s</strong> takes place tomorrow.</p>
		<div class="info-box">
			<strong>Date:</strong> %s<br>
			<strong>Location:</strong> %s
		</div>
		<p>We look forward to seeing you there!</p>
	`, firstName, title, date.Format("Monday, 02 Jan 2006 15:04"), location)

	go SendEmail(firstName, email, subject, body)
}
