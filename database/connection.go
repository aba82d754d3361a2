package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the database. With a POSTGRES_URL (e.g. a Neon connection
// string) it connects to Postgres; without one it falls back to a local
// sqlite file for development.
func Connect(postgresURL string) error {
	var err error

	if postgresURL != "" {
		log.Println("Connecting to PostgreSQL")
		DB, err = gorm.Open(postgres.Open(postgresURL), &gorm.Config{})
	} else {
		log.Println("POSTGRES_URL not set - using local sqlite database")
		DB, err = gorm.Open(sqlite.Open("botrelay.db"), &gorm.Config{})
	}

	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		return err
	}

	log.Println("✅ Database connected successfully!")
	return nil
}
