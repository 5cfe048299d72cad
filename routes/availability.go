package routes

import (
	"github.com/gofiber/fiber/v2"

	"crm-booking-service/controllers"
	"crm-booking-service/middleware"
)

// SetupAvailabilityRoutes configures the configuration surface: weekly rules,
// date exceptions, policy settings and the export/import bundle. Reads are
// open; writes need an admin token, and the destructive endpoints also need
// the admin key.
func SetupAvailabilityRoutes(app *fiber.App) {
	group := app.Group("/availability")

	rules := group.Group("/rules")
	rules.Get("/", controllers.GetAllRules)
	rules.Get("/:id", controllers.GetRule)
	rules.Post("/", middleware.Protected(), middleware.AdminOnly(), controllers.CreateRule)
	rules.Patch("/:id", middleware.Protected(), middleware.AdminOnly(), controllers.UpdateRule)
	rules.Patch("/:id/toggle", middleware.Protected(), middleware.AdminOnly(), controllers.ToggleRule)
	rules.Delete("/:id", middleware.Protected(), middleware.AdminOnly(), controllers.DeleteRule)

	exceptions := group.Group("/exceptions")
	exceptions.Get("/", controllers.GetAllExceptions)
	exceptions.Get("/:id", controllers.GetException)
	exceptions.Post("/", middleware.Protected(), middleware.AdminOnly(), controllers.CreateException)
	exceptions.Patch("/:id", middleware.Protected(), middleware.AdminOnly(), controllers.UpdateException)
	exceptions.Delete("/:id", middleware.Protected(), middleware.AdminOnly(), controllers.DeleteException)

	group.Get("/settings", controllers.GetSettings)
	group.Put("/settings", middleware.Protected(), middleware.AdminOnly(), controllers.SaveSettings)

	group.Get("/export", middleware.Protected(), middleware.AdminOnly(), controllers.ExportConfig)
	group.Post("/import", middleware.Protected(), middleware.AdminOnly(), middleware.RequireAdminKey(), controllers.ImportConfig)
	group.Post("/reset", middleware.Protected(), middleware.AdminOnly(), middleware.RequireAdminKey(), controllers.ResetDefaults)
}
