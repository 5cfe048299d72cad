package controllers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"crm-booking-service/db"
	"crm-booking-service/logger"
	"crm-booking-service/models"
	"crm-booking-service/redis"
	"crm-booking-service/utils"
)

// ConfigBundle is the export/import shape: the three configuration
// collections plus an export timestamp that import ignores.
type ConfigBundle struct {
	Rules      []models.AvailabilityRule      `json:"rules"`
	Exceptions []models.AvailabilityException `json:"exceptions"`
	Settings   models.AvailabilitySettings    `json:"settings"`
	ExportedAt time.Time                      `json:"exported_at"`
}

// importPayload distinguishes absent keys from empty collections: only the
// keys present in the input replace stored data.
type importPayload struct {
	Rules      *[]models.AvailabilityRule      `json:"rules"`
	Exceptions *[]models.AvailabilityException `json:"exceptions"`
	Settings   *models.AvailabilitySettings    `json:"settings"`
}

func parseImportPayload(body []byte) (importPayload, error) {
	var payload importPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return importPayload{}, err
	}
	return payload, nil
}

// checkBundle runs imported records through the same checks the CRUD surface
// applies, so a bundle cannot smuggle in a rule with an inverted window or a
// custom-hours exception without one.
func checkBundle(payload importPayload) error {
	if payload.Rules != nil {
		for i := range *payload.Rules {
			rule := &(*payload.Rules)[i]
			if err := validate.Struct(rule); err != nil {
				return fmt.Errorf("rule %q: %w", rule.ID, err)
			}
			if !validWindow(rule.StartTime, rule.EndTime) {
				return fmt.Errorf("rule %q: start_time must be an HH:MM time before end_time", rule.ID)
			}
		}
	}
	if payload.Exceptions != nil {
		for i := range *payload.Exceptions {
			exception := &(*payload.Exceptions)[i]
			if err := validate.Struct(exception); err != nil {
				return fmt.Errorf("exception %q: %w", exception.ID, err)
			}
			if msg := checkException(exception); msg != "" {
				return fmt.Errorf("exception %q: %s", exception.ID, msg)
			}
		}
	}
	if payload.Settings != nil {
		if err := validate.Struct(payload.Settings); err != nil {
			return fmt.Errorf("settings: %w", err)
		}
	}
	return nil
}

// ExportConfig serializes the full configuration bundle
func ExportConfig(c *fiber.Ctx) error {
	rules, err := loadRules()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to export configuration",
			Error:   err.Error(),
		})
	}
	exceptions, err := loadExceptions()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to export configuration",
			Error:   err.Error(),
		})
	}

	return c.JSON(ConfigBundle{
		Rules:      rules,
		Exceptions: exceptions,
		Settings:   loadSettings(),
		ExportedAt: time.Now(),
	})
}

// ImportConfig replaces whichever of rules/exceptions/settings are present in
// the posted bundle, leaving the others untouched. Malformed input is
// reported as success=false, never propagated.
func ImportConfig(c *fiber.Ctx) error {
	payload, err := parseImportPayload(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.StatusResponse{
			Success: false,
			Message: "Malformed configuration bundle",
		})
	}
	if err := checkBundle(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.StatusResponse{
			Success: false,
			Message: fmt.Sprintf("Invalid configuration bundle: %v", err),
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if payload.Rules != nil {
			if err := tx.Where("1 = 1").Delete(&models.AvailabilityRule{}).Error; err != nil {
				return err
			}
			if len(*payload.Rules) > 0 {
				if err := tx.Create(payload.Rules).Error; err != nil {
					return err
				}
			}
		}
		if payload.Exceptions != nil {
			if err := tx.Where("1 = 1").Delete(&models.AvailabilityException{}).Error; err != nil {
				return err
			}
			if len(*payload.Exceptions) > 0 {
				if err := tx.Create(payload.Exceptions).Error; err != nil {
					return err
				}
			}
		}
		if payload.Settings != nil {
			payload.Settings.ID = 1
			if err := tx.Save(payload.Settings).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.L.Errorw("configuration import failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(utils.StatusResponse{
			Success: false,
			Message: "Failed to apply configuration bundle",
		})
	}

	redis.InvalidateSchedule()
	return c.JSON(utils.StatusResponse{Success: true})
}
