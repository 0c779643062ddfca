package db

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gamehub/models"
)

// Open connects to Postgres and migrates the schema. The handle is returned
// to the caller instead of living in a package global so every consumer gets
// it injected.
func Open() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost port=5432 user=postgres dbname=gamehub sslmode=disable"
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := conn.AutoMigrate(
		&models.Game{},
		&models.UserRating{},
		&models.CriticScore{},
		&models.UserProfile{},
	); err != nil {
		return nil, err
	}

	return conn, nil
}
