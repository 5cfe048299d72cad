package routes

import (
	"github.com/gofiber/fiber/v2"

	"crm-booking-service/controllers"
	"crm-booking-service/middleware"
)

// SetupAppointmentRoutes configures all appointment related routes. Booking
// is open to clients; management endpoints require a token.
func SetupAppointmentRoutes(app *fiber.App) {
	appointment := app.Group("/appointments")
	appointment.Post("/", controllers.CreateAppointment)
	appointment.Get("/", middleware.Protected(), controllers.GetAllAppointments)
	appointment.Get("/:id", middleware.Protected(), controllers.GetAppointment)
	appointment.Patch("/:id/confirm", middleware.Protected(), controllers.ConfirmAppointment)
	appointment.Patch("/:id/cancel", middleware.Protected(), controllers.CancelAppointment)
	appointment.Patch("/:id/complete", middleware.Protected(), controllers.CompleteAppointment)
}
