package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"crm-booking-service/db"
	"crm-booking-service/models"
	"crm-booking-service/redis"
	"crm-booking-service/utils"
)

// GetSettings retrieves the booking policy singleton
func GetSettings(c *fiber.Ctx) error {
	return c.JSON(loadSettings())
}

// SaveSettings merges the posted fields onto the current settings and
// replaces the stored row wholesale.
func SaveSettings(c *fiber.Ctx) error {
	settings := loadSettings()
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	settings.ID = 1
	if err := validate.Struct(&settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid settings",
			Error:   err.Error(),
		})
	}

	if err := db.DB.Save(&settings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save settings",
			Error:   err.Error(),
		})
	}
	redis.InvalidateSchedule()
	return c.JSON(settings)
}

// ResetDefaults restores the seeded Mon-Fri rules, clears every exception and
// restores the default settings. Destructive and immediate; confirmation is
// the caller's responsibility.
func ResetDefaults(c *fiber.Ctx) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.AvailabilityRule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.AvailabilityException{}).Error; err != nil {
			return err
		}
		rules := models.DefaultRules()
		if err := tx.Create(&rules).Error; err != nil {
			return err
		}
		defaults := models.DefaultSettings()
		return tx.Save(&defaults).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to reset configuration",
			Error:   err.Error(),
		})
	}

	redis.InvalidateSchedule()

	rules, _ := loadRules()
	return c.JSON(fiber.Map{
		"rules":      rules,
		"exceptions": []models.AvailabilityException{},
		"settings":   loadSettings(),
	})
}
