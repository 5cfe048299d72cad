package routes

import (
	"github.com/gofiber/fiber/v2"

	"crm-booking-service/controllers"
)

// SetupScheduleRoutes configures the read-only schedule surface consumed by
// the booking form and the calendar view.
func SetupScheduleRoutes(app *fiber.App) {
	schedule := app.Group("/schedule")
	schedule.Get("/day/:date", controllers.GetDaySchedule)
	schedule.Get("/dates", controllers.GetAvailableDates)
	schedule.Get("/next-slot", controllers.GetNextSlot)
}
