package db

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"crm-booking-service/logger"
)

var DB *gorm.DB

func GetDB() *gorm.DB {
	return DB
}

// Init establishes the DB connection without running migrations.
func Init() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.L.Fatal("DATABASE_URL is not set")
	}

	database, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		logger.L.Fatalw("failed to connect to database", "error", err)
	}

	DB = database
	logger.L.Info("database connection established")
}
