package controllers

import (
	"github.com/go-playground/validator/v10"

	"crm-booking-service/availability"
	"crm-booking-service/db"
	"crm-booking-service/models"
)

var validate = validator.New()

// validWindow checks an HH:MM window is well formed with start before end.
func validWindow(start, end string) bool {
	s, ok1 := availability.ParseClock(start)
	e, ok2 := availability.ParseClock(end)
	return ok1 && ok2 && s < e
}

// loadRules returns all rules ordered so that lookups resolve deterministically:
// per weekday, the most recently updated active rule wins.
func loadRules() ([]models.AvailabilityRule, error) {
	var rules []models.AvailabilityRule
	err := db.DB.Order("day_of_week asc, updated_at desc").Find(&rules).Error
	return rules, err
}

// loadExceptions returns all exceptions, most recently updated first.
func loadExceptions() ([]models.AvailabilityException, error) {
	var exceptions []models.AvailabilityException
	err := db.DB.Order("updated_at desc").Find(&exceptions).Error
	return exceptions, err
}

// loadSettings returns the settings singleton, falling back to the defaults
// when the row is missing.
func loadSettings() models.AvailabilitySettings {
	var settings models.AvailabilitySettings
	if err := db.DB.First(&settings, 1).Error; err != nil {
		return models.DefaultSettings()
	}
	return settings
}

// bookedTimes returns the start times already claimed for a date. Canceled
// appointments release their slot.
func bookedTimes(date string) []string {
	var times []string
	db.DB.Model(&models.Appointment{}).
		Where("date = ? AND status <> ?", date, models.StatusCanceled).
		Order("start_time asc").
		Pluck("start_time", &times)
	return times
}
