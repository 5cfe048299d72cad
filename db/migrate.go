package db

import (
	"errors"

	"gorm.io/gorm"

	"crm-booking-service/logger"
	"crm-booking-service/models"
)

// Migrate runs AutoMigrate and seeds the default configuration.
func Migrate() {
	err := DB.AutoMigrate(
		&models.AvailabilityRule{},
		&models.AvailabilityException{},
		&models.AvailabilitySettings{},
		&models.Appointment{},
	)
	if err != nil {
		logger.L.Fatalw("failed to run migrations", "error", err)
	}

	// One live booking per slot; canceled and soft-deleted rows release it.
	err = DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_slot
		ON appointments (date, start_time)
		WHERE status <> 'canceled' AND deleted_at IS NULL`).Error
	if err != nil {
		logger.L.Fatalw("failed to create slot uniqueness index", "error", err)
	}

	SeedDefaults()
	logger.L.Info("migrations applied")
}

// SeedDefaults inserts the Mon-Fri default rules and the settings singleton
// when they are missing. Existing configuration is never touched.
func SeedDefaults() {
	var count int64
	DB.Model(&models.AvailabilityRule{}).Count(&count)
	if count == 0 {
		rules := models.DefaultRules()
		if err := DB.Create(&rules).Error; err != nil {
			logger.L.Errorw("failed to seed default rules", "error", err)
		} else {
			logger.L.Infow("seeded default availability rules", "count", len(rules))
		}
	}

	var settings models.AvailabilitySettings
	if errors.Is(DB.First(&settings, 1).Error, gorm.ErrRecordNotFound) {
		defaults := models.DefaultSettings()
		if err := DB.Create(&defaults).Error; err != nil {
			logger.L.Errorw("failed to seed default settings", "error", err)
		}
	}
}
