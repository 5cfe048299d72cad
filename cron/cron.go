package cron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"crm-booking-service/availability"
	"crm-booking-service/db"
	"crm-booking-service/logger"
	"crm-booking-service/models"
	"crm-booking-service/redis"
	"crm-booking-service/utils"
)

// StartCronJobs schedules the reminder and housekeeping jobs.
func StartCronJobs() {
	c := cron.New()

	if _, err := c.AddFunc("*/5 * * * *", sendAppointmentReminders); err != nil {
		logger.L.Fatalw("failed to schedule reminder job", "error", err)
	}
	if _, err := c.AddFunc("10 0 * * *", cleanupPastExceptions); err != nil {
		logger.L.Fatalw("failed to schedule cleanup job", "error", err)
	}

	c.Start()
	logger.L.Info("cron jobs started")
}

// reminderWindow bounds the "starts in roughly one hour" lookup. Each edge
// carries its own date because late in the evening the window reaches past
// midnight into the next calendar day.
func reminderWindow(now time.Time) (startDate, startTime, endDate, endTime string) {
	start := now.Add(55 * time.Minute)
	end := now.Add(65 * time.Minute)
	return start.Format(availability.DateLayout), start.Format("15:04"),
		end.Format(availability.DateLayout), end.Format("15:04")
}

// sendAppointmentReminders emails clients whose confirmed appointment starts
// in roughly one hour.
func sendAppointmentReminders() {
	startDate, startTime, endDate, endTime := reminderWindow(time.Now())

	query := db.DB.Where("status = ? AND reminder_sent = ?", models.StatusConfirmed, false)
	if startDate == endDate {
		query = query.Where("date = ? AND start_time BETWEEN ? AND ?",
			startDate, startTime, endTime)
	} else {
		// window straddles midnight
		query = query.Where("(date = ? AND start_time >= ?) OR (date = ? AND start_time <= ?)",
			startDate, startTime, endDate, endTime)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		logger.L.Errorw("failed to fetch appointments for reminders", "error", err)
		return
	}

	for _, appointment := range appointments {
		if appointment.ClientEmail == "" {
			continue
		}
		if err := sendReminderEmail(&appointment); err != nil {
			logger.L.Warnw("failed to send reminder",
				"appointment_id", appointment.ID, "error", err)
			continue
		}
		db.DB.Model(&appointment).Update("reminder_sent", true)
		logger.L.Infow("sent reminder",
			"appointment_id", appointment.ID, "start_time", appointment.StartTime)
	}
}

// cleanupPastExceptions deactivates exceptions whose date has passed so the
// active-exception-per-date uniqueness check never trips over stale entries.
func cleanupPastExceptions() {
	today := time.Now().Format(availability.DateLayout)

	result := db.DB.Model(&models.AvailabilityException{}).
		Where("date < ? AND is_active = ?", today, true).
		Update("is_active", false)
	if result.Error != nil {
		logger.L.Errorw("failed to deactivate past exceptions", "error", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		logger.L.Infow("deactivated past exceptions", "count", result.RowsAffected)
	}

	redis.InvalidateSchedule()
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	subject := "Reminder: Upcoming Appointment"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
	`, appointment.ClientName, appointment.Date, appointment.StartTime, appointment.EndTime)

	return utils.SendEmail(appointment.ClientEmail, subject, body)
}
