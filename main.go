package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"crm-booking-service/cron"
	"crm-booking-service/db"
	"crm-booking-service/logger"
	"crm-booking-service/redis"
	"crm-booking-service/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found, using environment variables directly")
	}

	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	db.Init()
	db.Migrate()
	redis.Init()
	cron.StartCronJobs()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.SetupAvailabilityRoutes(app)
	routes.SetupScheduleRoutes(app)
	routes.SetupAppointmentRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	logger.L.Infow("starting server", "port", port)
	if err := app.Listen(":" + port); err != nil {
		logger.L.Fatalw("server stopped", "error", err)
	}
}
