package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"crm-booking-service/db"
	"crm-booking-service/models"
	"crm-booking-service/redis"
	"crm-booking-service/utils"
)

// activeRuleExists reports whether another active rule already covers the
// weekday. One active rule per weekday keeps day resolution unambiguous.
func activeRuleExists(dayOfWeek int, excludeID string) bool {
	var count int64
	db.DB.Model(&models.AvailabilityRule{}).
		Where("day_of_week = ? AND is_active = ? AND id <> ?", dayOfWeek, true, excludeID).
		Count(&count)
	return count > 0
}

// GetAllRules retrieves the weekly availability rules
func GetAllRules(c *fiber.Ctx) error {
	rules, err := loadRules()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch availability rules",
			Error:   err.Error(),
		})
	}
	return c.JSON(rules)
}

// GetRule retrieves one rule by ID
func GetRule(c *fiber.Ctx) error {
	var rule models.AvailabilityRule
	if err := db.DB.First(&rule, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Rule not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(rule)
}

// CreateRule creates a weekly availability rule
func CreateRule(c *fiber.Ctx) error {
	rule := models.AvailabilityRule{IsActive: true}
	if err := c.BodyParser(&rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(&rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid rule",
			Error:   err.Error(),
		})
	}
	if !validWindow(rule.StartTime, rule.EndTime) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "start_time must be an HH:MM time before end_time",
		})
	}
	if rule.IsActive && activeRuleExists(rule.DayOfWeek, rule.ID) {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "An active rule already exists for this day of week",
		})
	}

	if err := db.DB.Create(&rule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create rule",
			Error:   err.Error(),
		})
	}
	redis.InvalidateSchedule()
	return c.Status(fiber.StatusCreated).JSON(rule)
}

// UpdateRule merges partial fields into an existing rule. A missing ID is a
// silent no-op.
func UpdateRule(c *fiber.Ctx) error {
	var rule models.AvailabilityRule
	if err := db.DB.First(&rule, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch rule",
			Error:   err.Error(),
		})
	}

	if err := c.BodyParser(&rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	rule.ID = c.Params("id")
	if err := validate.Struct(&rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid rule",
			Error:   err.Error(),
		})
	}
	if !validWindow(rule.StartTime, rule.EndTime) {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "start_time must be an HH:MM time before end_time",
		})
	}
	if rule.IsActive && activeRuleExists(rule.DayOfWeek, rule.ID) {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "An active rule already exists for this day of week",
		})
	}

	if err := db.DB.Save(&rule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to update rule",
			Error:   err.Error(),
		})
	}
	redis.InvalidateSchedule()
	return c.JSON(rule)
}

// ToggleRule flips a rule's is_active flag
func ToggleRule(c *fiber.Ctx) error {
	var rule models.AvailabilityRule
	if err := db.DB.First(&rule, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch rule",
			Error:   err.Error(),
		})
	}

	rule.IsActive = !rule.IsActive
	if rule.IsActive && activeRuleExists(rule.DayOfWeek, rule.ID) {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "An active rule already exists for this day of week",
		})
	}

	if err := db.DB.Save(&rule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to toggle rule",
			Error:   err.Error(),
		})
	}
	redis.InvalidateSchedule()
	return c.JSON(rule)
}

// DeleteRule removes a rule by ID; deleting an unknown ID succeeds.
func DeleteRule(c *fiber.Ctx) error {
	if err := db.DB.Delete(&models.AvailabilityRule{}, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete rule",
			Error:   err.Error(),
		})
	}
	redis.InvalidateSchedule()
	return c.SendStatus(fiber.StatusNoContent)
}
