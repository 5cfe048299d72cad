package controllers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"crm-booking-service/availability"
	"crm-booking-service/redis"
	"crm-booking-service/utils"
)

// GetDaySchedule resolves the full availability picture for one date,
// including which slots are already taken.
func GetDaySchedule(c *fiber.Ctx) error {
	date := c.Params("date")
	day, err := time.ParseInLocation(availability.DateLayout, date, time.Local)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid date, expected YYYY-MM-DD",
			Error:   err.Error(),
		})
	}

	if cached, ok := redis.GetDay(date); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(cached)
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

	resolved := availability.ResolveDay(day, rules, exceptions, bookedTimes(date))

	if payload, err := json.Marshal(resolved); err == nil {
		redis.SetDay(date, payload)
	}
	return c.JSON(resolved)
}

// GetAvailableDates lists the bookable dates inside the advance booking
// window, starting from ?from= (default today).
func GetAvailableDates(c *fiber.Ctx) error {
	from := time.Now()
	if q := c.Query("from"); q != "" {
		parsed, err := time.ParseInLocation(availability.DateLayout, q, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid from date, expected YYYY-MM-DD",
				Error:   err.Error(),
			})
		}
		from = parsed
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

	dates := availability.AvailableDates(from, time.Now(), rules, exceptions, loadSettings())
	return c.JSON(fiber.Map{"dates": dates})
}

// GetNextSlot returns the first open slot inside the booking window, taking
// existing appointments into account.
func GetNextSlot(c *fiber.Ctx) error {
	from := time.Now()
	if q := c.Query("from"); q != "" {
		parsed, err := time.ParseInLocation(availability.DateLayout, q, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid from date, expected YYYY-MM-DD",
				Error:   err.Error(),
			})
		}
		from = parsed
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

	slot, found := availability.NextAvailableSlot(from, time.Now(), rules, exceptions, loadSettings(), bookedTimes)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "No available slots within the booking window",
		})
	}
	return c.JSON(slot)
}
