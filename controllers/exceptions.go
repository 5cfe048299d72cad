package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"crm-booking-service/availability"
	"crm-booking-service/db"
	"crm-booking-service/models"
	"crm-booking-service/redis"
	"crm-booking-service/utils"
)

// activeExceptionExists reports whether another active exception already
// covers the date.
func activeExceptionExists(date, excludeID string) bool {
	var count int64
	db.DB.Model(&models.AvailabilityException{}).
		Where("date = ? AND is_active = ? AND id <> ?", date, true, excludeID).
		Count(&count)
	return count > 0
}

func checkException(exception *models.AvailabilityException) string {
	if _, err := time.Parse(availability.DateLayout, exception.Date); err != nil {
		return "date must be YYYY-MM-DD"
	}
	switch exception.Type {
	case models.ExceptionCustomHours:
		if !validWindow(exception.StartTime, exception.EndTime) {
			return "custom-hours exceptions need an HH:MM start_time before end_time"
		}
	case models.ExceptionUnavailable:
		// Times carry no meaning on a blocked day.
		exception.StartTime = ""
		exception.EndTime = ""
	}
	return ""
}

// GetAllExceptions retrieves the date-specific availability exceptions
func GetAllExceptions(c *fiber.Ctx) error {
	var exceptions []models.AvailabilityException
	if err := db.DB.Order("date asc").Find(&exceptions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch exceptions",
			Error:   err.Error(),
		})
	}
	return c.JSON(exceptions)
}

// GetException retrieves one exception by ID
func GetException(c *fiber.Ctx) error {
	var exception models.AvailabilityException
	if err := db.DB.First(&exception, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Exception not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(exception)
}

// CreateException creates a date-specific override
func CreateException(c *fiber.Ctx) error {
	exception := models.AvailabilityException{IsActive: true}
	if err := c.BodyParser(&exception); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(&exception); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid exception",
			Error:   err.Error(),
		})
	}
	if msg := checkException(&exception); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: msg})
	}
	if exception.IsActive && activeExceptionExists(exception.Date, exception.ID) {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "An active exception already exists for this date",
		})
	}

	if err := db.DB.Create(&exception).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create exception",
			Error:   err.Error(),
		})
	}
	redis.InvalidateDay(exception.Date)
	return c.Status(fiber.StatusCreated).JSON(exception)
}

// UpdateException merges partial fields into an existing exception. A missing
// ID is a silent no-op.
func UpdateException(c *fiber.Ctx) error {
	var exception models.AvailabilityException
	if err := db.DB.First(&exception, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch exception",
			Error:   err.Error(),
		})
	}
	previousDate := exception.Date

	if err := c.BodyParser(&exception); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	exception.ID = c.Params("id")
	if err := validate.Struct(&exception); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid exception",
			Error:   err.Error(),
		})
	}
	if msg := checkException(&exception); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: msg})
	}
	if exception.IsActive && activeExceptionExists(exception.Date, exception.ID) {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "An active exception already exists for this date",
		})
	}

	if err := db.DB.Save(&exception).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update exception",
			Error:   err.Error(),
		})
	}
	redis.InvalidateDay(previousDate)
	redis.InvalidateDay(exception.Date)
	return c.JSON(exception)
}

// DeleteException removes an exception by ID; deleting an unknown ID succeeds.
func DeleteException(c *fiber.Ctx) error {
	var exception models.AvailabilityException
	if err := db.DB.First(&exception, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch exception",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Delete(&exception).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete exception",
			Error:   err.Error(),
		})
	}
	redis.InvalidateDay(exception.Date)
	return c.SendStatus(fiber.StatusNoContent)
}
