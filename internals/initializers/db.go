package initializers

import (
	"log"

	"github.com/praful-vivanshinfotech/thinkexam-api/internals/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Global DB variable to be used across the application
var DB *gorm.DB

func ConnectToDb() {
	var err error
	dsn := config.GetEnv("DB_URL")

	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to DB")
	}
}
