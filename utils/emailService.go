package utils

import (
	"coachly/config"
	"coachly/models"
	"fmt"
	"net/smtp"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := config.AppConfig.SMTPHost
	smtpPort := config.AppConfig.SMTPPort

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Coachly <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all notification emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A1A2E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A2E; line-height: 1.6; }
			.content h2 { color: #1A1A2E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #E9B44C; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #E9B44C; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>COACHLY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Coachly. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// EmailNotifier sends the platform's transactional emails over SMTP.
// All sends are fire-and-forget; booking state never waits on them.
type EmailNotifier struct{}

// SlotBooked notifies both the visitor and the coach about a claimed slot.
func (EmailNotifier) SlotBooked(booking models.SlotBooking, slot models.Slot) {
	when := slot.ScheduledAt.Format("Monday, January 2, 2006 at 15:04 MST")

	visitorSubject := "Your session is booked!"
	visitorBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your %s session is confirmed.</p>
		<div class="info-box">
			<strong>When:</strong> %s<br>
			<strong>Duration:</strong> %d minutes<br>
			<strong>Reference:</strong> %s
		</div>
		<p>You will receive a joining link closer to the session. If you need to reschedule, just reply to this email.</p>
	`, booking.Name, strings.ToLower(slot.Kind), when, slot.DurationMinutes, booking.Reference)

	go SendEmail([]string{booking.Email}, visitorSubject, getEmailTemplate("Booking Confirmed", visitorBody))

	coachSubject := "New booking: " + booking.Name
	coachBody := fmt.Sprintf(`
		<p>A new %s session was just booked.</p>
		<div class="info-box">
			<strong>Who:</strong> %s (%s)<br>
			<strong>Phone:</strong> %s<br>
			<strong>When:</strong> %s<br>
			<strong>Duration:</strong> %d minutes<br>
			<strong>Notes:</strong> %s
		</div>
	`, strings.ToLower(slot.Kind), booking.Name, booking.Email, booking.Phone, when, slot.DurationMinutes, booking.Notes)

	go SendEmail([]string{config.AppConfig.OperatorEmail}, coachSubject, getEmailTemplate("New Booking", coachBody))
}

// SessionRequested notifies member and coach about a new 1:1 request.
func (EmailNotifier) SessionRequested(user models.User, booking models.MemberBooking) {
	when := booking.ScheduledAt.Format("Monday, January 2, 2006 at 15:04 MST")

	memberSubject := "We received your session request"
	memberBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your 1:1 session request for <strong>%s</strong> is in. We will confirm it shortly.</p>
		<div class="info-box">
			<strong>Reference:</strong> %s<br>
			<strong>Status:</strong> Pending confirmation
		</div>
	`, user.Name, when, booking.Reference)

	go SendEmail([]string{user.Email}, memberSubject, getEmailTemplate("Request Received", memberBody))

	coachSubject := "New session request: " + user.Name
	coachBody := fmt.Sprintf(`
		<p>Member <strong>%s</strong> (%s) requested a 1:1 session.</p>
		<div class="info-box">
			<strong>When:</strong> %s<br>
			<strong>Notes:</strong> %s
		</div>
		<p>Confirm or cancel it from your dashboard.</p>
	`, user.Name, user.Email, when, booking.Notes)

	go SendEmail([]string{config.AppConfig.OperatorEmail}, coachSubject, getEmailTemplate("New Session Request", coachBody))
}

// SessionConfirmed emails the member their join link.
func (EmailNotifier) SessionConfirmed(user models.User, booking models.MemberBooking) {
	when := booking.ScheduledAt.Format("Monday, January 2, 2006 at 15:04 MST")

	subject := "Your session is confirmed"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your 1:1 session on <strong>%s</strong> is confirmed.</p>
		<a href="%s" class="btn">Join Session</a>
		<p>The link goes live a few minutes before your start time.</p>
	`, user.Name, when, booking.RoomURL)

	go SendEmail([]string{user.Email}, subject, getEmailTemplate("Session Confirmed", body))
}

// SessionCancelled tells the member their booking was cancelled.
func (EmailNotifier) SessionCancelled(user models.User, booking models.MemberBooking) {
	when := booking.ScheduledAt.Format("Monday, January 2, 2006 at 15:04 MST")

	subject := "Session cancelled"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your 1:1 session scheduled for <strong>%s</strong> has been cancelled.</p>
		<p>You can request a new time from your dashboard whenever suits you.</p>
	`, user.Name, when)

	go SendEmail([]string{user.Email}, subject, getEmailTemplate("Session Cancelled", body))
}
