package config

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDatabase opens the postgres connection described by the
// environment. The handle is constructed once at startup and injected
// into every module; nothing holds a package-level connection.
func ConnectDatabase() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			envOr("DB_HOST", "localhost"),
			envOr("DB_USER", "postgres"),
			envOr("DB_PASSWORD", "postgres"),
			envOr("DB_NAME", "cancha"),
			envOr("DB_PORT", "5432"),
			envOr("DB_SSLMODE", "disable"),
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")
	return db, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
