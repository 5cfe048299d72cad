package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"crm-booking-service/availability"
	"crm-booking-service/db"
	"crm-booking-service/logger"
	"crm-booking-service/models"
	"crm-booking-service/redis"
	"crm-booking-service/utils"
)

// GetAllAppointments lists appointments, optionally filtered by ?date=
func GetAllAppointments(c *fiber.Ctx) error {
	query := db.DB.Order("date asc, start_time asc")
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetAppointment retrieves an appointment by ID
func GetAppointment(c *fiber.Ctx) error {
	var appointment models.Appointment
	if err := db.DB.First(&appointment, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// CreateAppointment books a slot. The engine's availability answer is
// advisory; the actual claim happens inside a transaction that re-checks the
// slot under a row lock, and the partial unique index on (date, start_time)
// is the final arbiter under concurrent writers.
func CreateAppointment(c *fiber.Ctx) error {
	var appointment models.Appointment
	if err := c.BodyParser(&appointment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(&appointment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment",
			Error:   err.Error(),
		})
	}
	day, err := time.ParseInLocation(availability.DateLayout, appointment.Date, time.Local)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date, expected YYYY-MM-DD",
			Error:   err.Error(),
		})
	}
	if _, ok := availability.ParseClock(appointment.StartTime); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid start_time, expected HH:MM",
		})
	}

	rules, err := loadRules()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load availability rules",
			Error:   err.Error(),
		})
	}
	exceptions, err := loadExceptions()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to load availability exceptions",
			Error:   err.Error(),
		})
	}

	resolved := availability.ResolveDay(day, rules, exceptions, bookedTimes(appointment.Date))
	if !resolved.IsAvailable {
		message := "Date is not available for booking"
		if resolved.Exception != nil && resolved.Exception.Reason != "" {
			message = fmt.Sprintf("Date is not available: %s", resolved.Exception.Reason)
		}
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{Message: message})
	}

	var slot *availability.TimeSlot
	for i := range resolved.TimeSlots {
		if resolved.TimeSlots[i].Time == appointment.StartTime {
			slot = &resolved.TimeSlots[i]
			break
		}
	}
	if slot == nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "start_time does not match a bookable slot for this date",
		})
	}
	if !slot.Available {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Time slot already booked",
		})
	}

	settings := loadSettings()
	if settings.MaxDailyAppointments > 0 {
		var count int64
		db.DB.Model(&models.Appointment{}).
			Where("date = ? AND status <> ?", appointment.Date, models.StatusCanceled).
			Count(&count)
		if count >= int64(settings.MaxDailyAppointments) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Daily appointment limit reached",
			})
		}
	}

	start, _ := availability.ParseClock(appointment.StartTime)
	appointment.EndTime = availability.FormatClock(start + resolved.Rule.SlotDuration)
	appointment.Status = models.StatusPending
	if settings.AutoConfirm {
		appointment.Status = models.StatusConfirmed
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// Re-check under a row lock so two bookings for the same slot
		// serialize at the database.
		var existing models.Appointment
		err := tx.Raw(`
			SELECT *
			FROM appointments
			WHERE date = ? AND start_time = ? AND status <> ? AND deleted_at IS NULL
			LIMIT 1
			FOR UPDATE
		`, appointment.Date, appointment.StartTime, models.StatusCanceled).
			Scan(&existing).Error
		if err != nil {
			return err
		}
		if existing.ID != 0 {
			return fmt.Errorf("time slot already booked")
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Time slot not available or failed to create appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateDay(appointment.Date)

	if appointment.ClientEmail != "" {
		go sendBookingEmail(appointment)
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// ConfirmAppointment moves a pending appointment to confirmed
func ConfirmAppointment(c *fiber.Ctx) error {
	var appointment models.Appointment
	if err := db.DB.First(&appointment, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if err := appointment.UpdateStatus(db.DB, models.StatusConfirmed); err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Cannot confirm appointment",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// CancelAppointment cancels an appointment and releases its slot
func CancelAppointment(c *fiber.Ctx) error {
	var appointment models.Appointment
	if err := db.DB.First(&appointment, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if err := appointment.UpdateStatus(db.DB, models.StatusCanceled); err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Cannot cancel appointment",
			Error:   err.Error(),
		})
	}
	redis.InvalidateDay(appointment.Date)
	return c.JSON(appointment)
}

// CompleteAppointment marks a confirmed appointment as completed
func CompleteAppointment(c *fiber.Ctx) error {
	var appointment models.Appointment
	if err := db.DB.First(&appointment, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}

	if err := appointment.UpdateStatus(db.DB, models.StatusCompleted); err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Cannot complete appointment",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

func sendBookingEmail(appointment models.Appointment) {
	subject := "Appointment Confirmation"
	status := "confirmed"
	if appointment.Status == models.StatusPending {
		subject = "Appointment Request Received"
		status = "pending confirmation"
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment on <strong>%s</strong> at <strong>%s</strong> is %s.</p>
		<p>If you need to reschedule or cancel, contact us as soon as possible.</p>
	`, appointment.ClientName, appointment.Date, appointment.StartTime, status)

	if err := utils.SendEmail(appointment.ClientEmail, subject, body); err != nil {
		logger.L.Warnw("failed to send booking email",
			"appointment_id", appointment.ID, "error", err)
	}
}
